// Package workspace keeps an in-memory set of parsed IDL files for the
// language server and batch tooling.
package workspace

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/witc/wit"
	"github.com/dhamidi/witc/wit/parser"
)

var log = commonlog.GetLogger("witc.workspace")

type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*FileInfo
}

type FileInfo struct {
	Path     string
	Content  []byte
	Tree     *parser.Tree
	Document *wit.Document // nil while the file has diagnostics
}

func New(rootDir string) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		files:   make(map[string]*FileInfo),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// ScanAll parses every .wit file under the root directory.
func (w *Workspace) ScanAll() error {
	return filepath.Walk(w.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if filepath.Ext(path) == ".wit" {
			if err := w.ScanFile(path); err != nil {
				log.Errorf("scan %s: %s", path, err.Error())
			}
		}
		return nil
	})
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	w.UpdateFile(path, content)
	return nil
}

// UpdateFile replaces a file's content and reparses it. The previous tree
// is dropped wholesale; there is no incremental reparse.
func (w *Workspace) UpdateFile(path string, content []byte) *FileInfo {
	tree := parser.Parse(content)
	file := &FileInfo{
		Path:    path,
		Content: content,
		Tree:    tree,
	}
	if tree.Valid() {
		doc, err := wit.BuildDocument(tree)
		if err == nil {
			file.Document = doc
		}
	} else {
		log.Debugf("%s: %d diagnostics", path, len(tree.Diagnostics))
	}

	w.mu.Lock()
	w.files[path] = file
	w.mu.Unlock()
	return file
}

func (w *Workspace) GetFile(path string) *FileInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	delete(w.files, path)
	w.mu.Unlock()
}

// Files returns a snapshot of all tracked files.
func (w *Workspace) Files() []*FileInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*FileInfo, 0, len(w.files))
	for _, f := range w.files {
		out = append(out, f)
	}
	return out
}
