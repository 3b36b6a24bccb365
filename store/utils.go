package store

import (
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	srcDirName  = "src"
	dataDirName = "data"
)

// dataDirUnder returns <base>/src/data.
func dataDirUnder(base string) string {
	return filepath.Join(base, srcDirName, dataDirName)
}

// parentDir returns the parent of p, or false when p is empty or a root.
func parentDir(p string) (string, bool) {
	if p == "" {
		return "", false
	}
	clean := filepath.Clean(p)
	parent := filepath.Dir(clean)
	if parent == clean {
		return "", false
	}
	return parent, true
}

// exists treats any stat failure as absence.
func exists(fs afero.Fs, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}
