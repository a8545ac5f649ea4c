// Package resolver answers the filesystem questions the file server asks
// about its document root.
package resolver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Root is the path of the document root inside a Resolver.
const Root = "."

var ErrNotDirectory = errors.New("not a directory")

// Resolver lists, inspects and reads slash-separated paths relative to the
// document root.
type Resolver interface {
	ListEntries(dir string) (map[string]struct{}, error)
	IsDirectory(path string) (bool, error)
	ReadFile(path string) (string, error)
}

// FS is a Resolver over an fs.FS.
type FS struct {
	fsys fs.FS
}

func New(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

// Dir serves the directory tree rooted at docRoot on the local disk.
func Dir(docRoot string) (*FS, error) {
	info, err := os.Stat(docRoot)
	if err != nil {
		return nil, fmt.Errorf("document root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("document root %s: %w", docRoot, ErrNotDirectory)
	}
	return New(os.DirFS(docRoot)), nil
}

func (r *FS) ListEntries(dir string) (map[string]struct{}, error) {
	entries, err := fs.ReadDir(r.fsys, dir)
	if err != nil {
		return nil, err
	}
	names := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		names[e.Name()] = struct{}{}
	}
	return names, nil
}

func (r *FS) IsDirectory(path string) (bool, error) {
	info, err := fs.Stat(r.fsys, path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// ReadFile returns the whole file as text. Bytes are not transcoded.
func (r *FS) ReadFile(path string) (string, error) {
	b, err := fs.ReadFile(r.fsys, path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
