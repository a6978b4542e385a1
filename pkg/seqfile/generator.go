package seqfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

var ErrExhausted = errors.New("no free sequenced name")

const defaultMaxAttempts = 10

type Option func(*Generator)

func WithDigits(digits int) Option {
	return func(g *Generator) { g.digits = digits }
}

func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// WithMaxAttempts bounds how often Create retries when another writer
// claimed the name first.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) { g.maxAttempts = n }
}

// Generator hands out sequenced file names in one directory.
type Generator struct {
	dir         string
	basename    string
	ext         string
	digits      int
	maxAttempts int
	log         *zap.Logger

	// beforeCreate runs between the scan and the exclusive create
	beforeCreate func(name string)
}

func NewGenerator(dir, basename, ext string, opts ...Option) (*Generator, error) {
	g := &Generator{
		dir:         dir,
		basename:    basename,
		ext:         ext,
		digits:      DefaultDigits,
		maxAttempts: defaultMaxAttempts,
		log:         zap.NewNop(),
	}
	for _, o := range opts {
		o(g)
	}
	if g.digits < 0 {
		return nil, fmt.Errorf("digits cannot be negative, got: %d", g.digits)
	}
	if g.maxAttempts < 1 {
		return nil, fmt.Errorf("max attempts must be at least 1, got: %d", g.maxAttempts)
	}
	if g.dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, &DirectoryAccessError{Dir: dir, Err: err}
		}
		g.dir = wd
	}
	return g, nil
}

func (g *Generator) Dir() string { return g.dir }

// Next returns the next unused name without claiming it.
func (g *Generator) Next() (string, error) {
	name, err := NextSequencedName(g.dir, g.basename, g.ext, g.digits)
	if err != nil {
		g.log.Error("scan failed", zap.String("dir", g.dir), zap.Error(err))
		return "", err
	}
	g.log.Debug("next name", zap.String("name", name))
	return name, nil
}

// Create claims the next name by creating the file exclusively. When the
// name is taken between the scan and the create, it rescans and never
// retries an index it already lost.
func (g *Generator) Create() (*os.File, error) {
	taken := 0
	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		m, err := maxIndex(g.dir, g.basename, g.ext)
		if err != nil {
			g.log.Error("scan failed", zap.String("dir", g.dir), zap.Error(err))
			return nil, err
		}
		index := max(m, taken) + 1
		name := filepath.Join(g.dir, FormatName(g.basename, g.ext, g.digits, index))
		if g.beforeCreate != nil {
			g.beforeCreate(name)
		}
		f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			g.log.Info("created", zap.String("name", name), zap.Int("attempt", attempt))
			return f, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, err
		}
		g.log.Debug("name taken, retrying", zap.String("name", name), zap.Int("attempt", attempt))
		taken = index
	}
	return nil, fmt.Errorf("%w: %s%s in %s after %d attempts", ErrExhausted, g.basename, g.ext, g.dir, g.maxAttempts)
}
