package specio

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Locator resolves data file references. Environment variables in a path
// are expanded; relative paths that do not exist as given are searched
// for in Dirs, in order.
type Locator struct {
	Dirs []string
}

// Resolve returns the first existing path for ref.
func (l Locator) Resolve(ref string) (string, error) {
	p := os.ExpandEnv(ref)
	if fileExists(p) {
		return p, nil
	}
	if !filepath.IsAbs(p) {
		for _, dir := range l.Dirs {
			candidate := filepath.Join(os.ExpandEnv(dir), p)
			if fileExists(candidate) {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("locate %q: %w", ref, fs.ErrNotExist)
}

// Open resolves ref and opens it, returning the resolved path.
func (l Locator) Open(ref string) (io.ReadCloser, string, error) {
	p, err := l.Resolve(ref)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, "", fmt.Errorf("open %q: %w", p, err)
	}
	return f, p, nil
}

func fileExists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}
