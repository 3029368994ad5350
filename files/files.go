package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type Finder interface {
	// FindImport resolves an import written in the manifest at from.
	FindImport(from, path string) (string, error)
}

func NewFinder() Finder {
	return NewFinderWithPath(SearchPath()...)
}

func NewFinderWithPath(dirs ...string) Finder {
	return &finder{searchPath: dirs}
}

// NewSandboxFinder resolves imports only as local paths under dirs. Absolute
// paths, paths leaving their directory and the importer's own directory are
// never consulted.
func NewSandboxFinder(dirs ...string) Finder {
	return &finder{searchPath: dirs, sandboxed: true}
}

type finder struct {
	searchPath []string
	sandboxed  bool
}

func (f *finder) FindImport(from, path string) (string, error) {
	if f.sandboxed {
		return f.findLocal(path)
	}

	if filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("import not found: %v", path)
		}
		return filepath.Clean(path), nil
	}

	candidates := []string{filepath.Join(filepath.Dir(from), path)}
	for _, dir := range f.searchPath {
		candidates = append(candidates, filepath.Join(dir, path))
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return filepath.Clean(candidate), nil
		}
	}

	return "", fmt.Errorf("import not found: %v (from %v)", path, from)
}

func (f *finder) findLocal(path string) (string, error) {
	if !filepath.IsLocal(path) {
		return "", fmt.Errorf("import %v: only local paths are allowed", path)
	}
	for _, dir := range f.searchPath {
		candidate := filepath.Join(dir, path)
		if info, err := os.Lstat(candidate); err == nil && info.Mode().IsRegular() {
			return filepath.Clean(candidate), nil
		}
	}
	return "", fmt.Errorf("import not found: %v", path)
}

// NewTextReader decodes r as UTF-8, or as UTF-16 when it starts with a byte
// order mark.
func NewTextReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(NewTextReader(f))
}
