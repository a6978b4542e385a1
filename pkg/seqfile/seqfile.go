package seqfile

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const DefaultDigits = 3

var ErrDirectoryAccess = errors.New("directory access")

// DirectoryAccessError is returned when the directory cannot be listed.
type DirectoryAccessError struct {
	Dir string
	Err error
}

func (e *DirectoryAccessError) Error() string {
	return fmt.Sprintf("cannot read directory %q: %v", e.Dir, e.Err)
}

func (e *DirectoryAccessError) Unwrap() []error {
	return []error{ErrDirectoryAccess, e.Err}
}

// NextSequencedName returns dir/<basename><n><ext> where n is one more than
// the highest index of the existing entries with the same basename and ext,
// zero padded to digits. An empty dir is the working directory.
//
// The name is advisory, the caller claims it, e.g. with O_EXCL.
func NextSequencedName(dir, basename, ext string, digits int) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", &DirectoryAccessError{Dir: dir, Err: err}
		}
		dir = wd
	}
	m, err := maxIndex(dir, basename, ext)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FormatName(basename, ext, digits, m+1)), nil
}

// FormatName renders <basename><index zero padded to digits><ext>.
func FormatName(basename, ext string, digits, index int) string {
	if digits < 0 {
		digits = 0
	}
	return fmt.Sprintf("%s%0*d%s", basename, digits, index, ext)
}

// ParseIndex returns the index encoded in name, ok is false when name does
// not match <basename><digits><ext>.
func ParseIndex(name, basename, ext string) (int, bool) {
	e := filepath.Ext(name)
	if e != ext {
		return 0, false
	}
	stem := strings.TrimSuffix(name, e)
	if !strings.HasPrefix(stem, basename) {
		return 0, false
	}
	i, err := strconv.Atoi(stem[len(basename):])
	if err != nil {
		return 0, false
	}
	return i, true
}

func maxIndex(dir, basename, ext string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, &DirectoryAccessError{Dir: dir, Err: err}
	}
	m := 0
	for _, e := range entries {
		i, ok := ParseIndex(e.Name(), basename, ext)
		// an index of MaxInt has no successor
		if !ok || i == math.MaxInt {
			continue
		}
		if i > m {
			m = i
		}
	}
	return m, nil
}
