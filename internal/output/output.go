// Package output writes generated files and reports what changed.
package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aymanbagabas/go-udiff"
)

// Options controls how Write handles a file.
type Options struct {
	DryRun bool // don't write, only plan
	Diff   bool // compute a unified diff against the existing file
}

// Result describes one planned or written file.
type Result struct {
	Path    string // absolute
	Size    int
	Exists  bool // a file was already present
	Changed bool // content differs from the existing file
	Diff    string
	Written bool
}

// Write places content at path atomically (temp file + rename) unless
// DryRun is set. Unchanged files are not rewritten.
func Write(path string, content []byte, opts Options) (*Result, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve output path: %w", err)
	}
	res := &Result{Path: abs, Size: len(content), Changed: true}

	old, err := os.ReadFile(abs)
	switch {
	case err == nil:
		res.Exists = true
		res.Changed = string(old) != string(content)
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read existing %s: %w", abs, err)
	}

	if opts.Diff && res.Changed {
		res.Diff = Diff(abs, string(old), string(content))
	}
	if opts.DryRun || !res.Changed {
		return res, nil
	}

	if err := WriteAtomic(abs, content); err != nil {
		return nil, err
	}
	res.Written = true
	return res, nil
}

// WriteAtomic writes content next to path and renames it into place,
// creating parent directories as needed.
func WriteAtomic(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp := path + ".tmp-" + strconv.FormatInt(time.Now().UnixNano(), 36)
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return fmt.Errorf("write temp %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Diff returns a unified diff from old to new labelled with path. It is
// empty when both are equal.
func Diff(path, old, new string) string {
	if old == new {
		return ""
	}
	name := filepath.ToSlash(path)
	return udiff.Unified("a"+ensureSlash(name), "b"+ensureSlash(name), old, new)
}

func ensureSlash(p string) string {
	if len(p) > 0 && p[0] == '/' {
		return p
	}
	return "/" + p
}
