// Package workspace keeps the parse state of the files under a directory.
package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/kipaco/lang"
)

var log = commonlog.GetLogger("kipaco.workspace")

type Workspace struct {
	mu       sync.RWMutex
	rootDir  string
	registry *lang.Registry
	files    map[string]*File
}

// File is the outcome of parsing one file.
type File struct {
	Path     string
	Language string
	Content  []byte
	Value    any
	ParseErr error
}

func New(rootDir string, registry *lang.Registry) *Workspace {
	return &Workspace{
		rootDir:  rootDir,
		registry: registry,
		files:    make(map[string]*File),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

func (w *Workspace) Registry() *lang.Registry {
	return w.registry
}

// Wants reports whether path has the extension of a registered language.
func (w *Workspace) Wants(path string) bool {
	_, ok := w.registry.ForFile(path)
	return ok
}

// ScanAll parses every file under the root directory that belongs to a
// registered language. Hidden directories are skipped.
func (w *Workspace) ScanAll() ([]*File, error) {
	var scanned []*File
	err := filepath.WalkDir(w.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != w.rootDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !w.Wants(path) {
			return nil
		}
		f, err := w.ScanFile(path)
		if err != nil {
			log.Warningf("scan %s: %s", path, err)
			return nil
		}
		scanned = append(scanned, f)
		return nil
	})
	return scanned, err
}

// ScanFile reads and parses path.
func (w *Workspace) ScanFile(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return w.UpdateFile(path, content)
}

// UpdateFile parses content as the new text of path. A syntax error is
// recorded in the returned File, not returned.
func (w *Workspace) UpdateFile(path string, content []byte) (*File, error) {
	l, ok := w.registry.ForFile(path)
	if !ok {
		return nil, fmt.Errorf("no language for %s", path)
	}

	value, parseErr := l.Parse(path, string(content))
	f := &File{
		Path:     path,
		Language: l.Name,
		Content:  content,
		Value:    value,
		ParseErr: parseErr,
	}
	if parseErr != nil {
		f.Value = nil
	}

	w.mu.Lock()
	w.files[path] = f
	w.mu.Unlock()

	log.Debugf("parsed %s as %s (ok=%v)", path, l.Name, parseErr == nil)
	return f, nil
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Files returns all known files sorted by path.
func (w *Workspace) Files() []*File {
	w.mu.RLock()
	defer w.mu.RUnlock()

	files := make([]*File, 0, len(w.files))
	for _, f := range w.files {
		files = append(files, f)
	}
	slices.SortFunc(files, func(a, b *File) int { return strings.Compare(a.Path, b.Path) })
	return files
}

// Failed returns the files whose last parse failed, sorted by path.
func (w *Workspace) Failed() []*File {
	return slices.DeleteFunc(w.Files(), func(f *File) bool { return f.ParseErr == nil })
}
