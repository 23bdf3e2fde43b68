package strip

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

type fileProcessor interface {
	process(path string) error
}

type walker struct {
	root    string
	suffix  string
	exclude []glob.Glob
	onError ErrorPolicy
	logger  *log.Logger

	failures []*FileError
}

func newWalker(cfg Config) (*walker, error) {
	exclude := make([]glob.Glob, 0, len(cfg.Exclude))
	for _, p := range cfg.Exclude {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("bad exclude pattern '%s' : %w", p, err)
		}
		exclude = append(exclude, g)
	}
	return &walker{
		root:    cfg.Root,
		suffix:  cfg.Suffix,
		exclude: exclude,
		onError: cfg.OnError,
		logger:  cfg.Logger,
	}, nil
}

// checkRoot fails with ErrDirectoryNotFound unless the root is a directory.
func checkRoot(root string) error {
	info, err := os.Stat(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrDirectoryNotFound, root)
	case err != nil:
		return fmt.Errorf("checking root %s : %w", root, err)
	case !info.IsDir():
		return fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, root)
	}
	return nil
}

// walkSource hands every matching regular file under the root to proc.
// Failures are collected in w.failures; under Abort the first one is also
// returned and the walk stops. The root must already have passed checkRoot.
//
// A symlinked root is resolved once and walked; paths handed to proc and
// reported in failures stay under the configured root.
func (w *walker) walkSource(proc fileProcessor) error {
	walkRoot, err := filepath.EvalSymlinks(w.root)
	if err != nil {
		return fmt.Errorf("resolving root %s : %w", w.root, err)
	}

	return filepath.WalkDir(walkRoot, func(resolved string, d fs.DirEntry, err error) error {
		path := w.rebase(walkRoot, resolved)
		if err != nil {
			if path == w.root {
				return err
			}
			return w.fail(&FileError{Path: path, Stage: StageWalk, Err: err})
		}
		if path == w.root {
			return nil
		}
		if d.IsDir() {
			if w.excluded(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !strings.HasSuffix(d.Name(), w.suffix) || w.excluded(path) {
			return nil
		}
		if err := proc.process(path); err != nil {
			var ferr *FileError
			if !errors.As(err, &ferr) {
				return err
			}
			return w.fail(ferr)
		}
		return nil
	})
}

// rebase maps a path under the resolved walk root back onto the configured
// root.
func (w *walker) rebase(walkRoot, resolved string) string {
	if resolved == walkRoot {
		return w.root
	}
	if walkRoot == w.root {
		return resolved
	}
	rel, err := filepath.Rel(walkRoot, resolved)
	if err != nil {
		return resolved
	}
	return filepath.Join(w.root, rel)
}

func (w *walker) fail(ferr *FileError) error {
	w.failures = append(w.failures, ferr)
	if w.onError == Abort {
		return ferr
	}
	w.logger.Printf("skipping: %v\n", ferr)
	return nil
}

func (w *walker) excluded(path string) bool {
	if len(w.exclude) == 0 {
		return false
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, g := range w.exclude {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

func (w *walker) relative(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return path
	}
	return rel
}
