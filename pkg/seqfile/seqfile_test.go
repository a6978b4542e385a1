package seqfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}
}

func TestNextSequencedName(t *testing.T) {
	cases := map[string]struct {
		files    []string
		dirs     []string
		basename string
		ext      string
		digits   int
		expected string
	}{
		"Empty": {
			basename: "scan",
			ext:      ".png",
			digits:   3,
			expected: "scan001.png",
		},
		"Existing": {
			files:    []string{"scan001.png", "scan002.png"},
			basename: "scan",
			ext:      ".png",
			digits:   3,
			expected: "scan003.png",
		},
		"Gap": {
			files:    []string{"scan001.png", "scan017.png"},
			basename: "scan",
			ext:      ".png",
			digits:   3,
			expected: "scan018.png",
		},
		"OtherExtensionIgnored": {
			files:    []string{"scan009.jpg", "scan002.png", "scan005.PNG"},
			basename: "scan",
			ext:      ".png",
			digits:   3,
			expected: "scan003.png",
		},
		"NonNumericSkipped": {
			files:    []string{"scan_final.png", "scanner.png", "scan004.png"},
			basename: "scan",
			ext:      ".png",
			digits:   3,
			expected: "scan005.png",
		},
		"DirectoriesCounted": {
			files:    []string{"scan001.png"},
			dirs:     []string{"scan002.png"},
			basename: "scan",
			ext:      ".png",
			digits:   3,
			expected: "scan003.png",
		},
		"MaxIntSkipped": {
			files:    []string{"scan004.png", "scan9223372036854775807.png"},
			basename: "scan",
			ext:      ".png",
			digits:   3,
			expected: "scan005.png",
		},
		"Overflow": {
			files:    []string{"fax99.tif"},
			basename: "fax",
			ext:      ".tif",
			digits:   2,
			expected: "fax100.tif",
		},
		"NoPadding": {
			files:    []string{"log7.txt"},
			basename: "log",
			ext:      ".txt",
			digits:   0,
			expected: "log8.txt",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			touch(t, dir, tc.files...)
			for _, d := range tc.dirs {
				require.NoError(t, os.Mkdir(filepath.Join(dir, d), 0o755))
			}

			got, err := NextSequencedName(dir, tc.basename, tc.ext, tc.digits)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tc.expected), got)
		})
	}
}

func TestNextSequencedNameMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	_, err := NextSequencedName(dir, "scan", ".png", DefaultDigits)
	assert.ErrorIs(t, err, ErrDirectoryAccess)
	assert.ErrorIs(t, err, os.ErrNotExist)

	var dirErr *DirectoryAccessError
	require.True(t, errors.As(err, &dirErr))
	assert.Equal(t, dir, dirErr.Dir)
}

func TestParseIndex(t *testing.T) {
	cases := map[string]struct {
		name       string
		expected   int
		expectedOk bool
	}{
		"Match":       {name: "scan012.png", expected: 12, expectedOk: true},
		"WrongExt":    {name: "scan012.jpg"},
		"WrongPrefix": {name: "page012.png"},
		"NoDigits":    {name: "scan.png"},
		"Suffix":      {name: "scan012a.png"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			i, ok := ParseIndex(tc.name, "scan", ".png")
			assert.Equal(t, tc.expectedOk, ok)
			assert.Equal(t, tc.expected, i)
		})
	}
}

func TestGeneratorCreate(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "fax001.tif")

	g, err := NewGenerator(dir, "fax", ".tif", WithDigits(4), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	name, err := g.Next()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fax0002.tif"), name)

	for _, want := range []string{"fax0002.tif", "fax0003.tif"} {
		f, err := g.Create()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, want), f.Name())
		require.NoError(t, f.Close())
	}
}

func TestNewGeneratorErrors(t *testing.T) {
	_, err := NewGenerator(t.TempDir(), "a", ".b", WithDigits(-1))
	assert.Error(t, err)

	_, err = NewGenerator(t.TempDir(), "a", ".b", WithMaxAttempts(0))
	assert.Error(t, err)

	g, err := NewGenerator(filepath.Join(t.TempDir(), "missing"), "a", ".b")
	require.NoError(t, err)
	_, err = g.Create()
	assert.ErrorIs(t, err, ErrDirectoryAccess)
}

func TestGeneratorCreateDirectoryEntry(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "scan001.png")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "scan002.png"), 0o755))

	g, err := NewGenerator(dir, "scan", ".png")
	require.NoError(t, err)

	f, err := g.Create()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "scan003.png"), f.Name())
	require.NoError(t, f.Close())
}

func TestGeneratorCreateRetry(t *testing.T) {
	cases := map[string]struct {
		maxAttempts int
		stolen      int
		expected    string
		expectedErr bool
	}{
		"NoRace": {
			maxAttempts: 3,
			stolen:      0,
			expected:    "fax001.tif",
		},
		"Retry": {
			maxAttempts: 3,
			stolen:      2,
			expected:    "fax003.tif",
		},
		"ErrorExhausted": {
			maxAttempts: 3,
			stolen:      3,
			expectedErr: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			g, err := NewGenerator(dir, "fax", ".tif",
				WithMaxAttempts(tc.maxAttempts),
				WithLogger(zaptest.NewLogger(t)),
			)
			require.NoError(t, err)

			stolen := 0
			g.beforeCreate = func(name string) {
				if stolen < tc.stolen {
					stolen++
					require.NoError(t, os.WriteFile(name, []byte("other"), 0o644))
				}
			}

			f, err := g.Create()
			if tc.expectedErr {
				assert.ErrorIs(t, err, ErrExhausted)
				assert.Nil(t, f)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tc.expected), f.Name())
			require.NoError(t, f.Close())
			assert.Equal(t, tc.stolen, stolen)
		})
	}
}
