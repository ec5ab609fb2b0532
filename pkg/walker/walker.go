// Package walker implements the recursive permission applier. It walks a
// directory tree depth-first, classifies every entry as a directory, a
// script/executable or a regular file, and applies the configured mode for
// each class.
package walker

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/megaspaz/pychmod/internal/logger"
	"github.com/megaspaz/pychmod/pkg/errors"
	"github.com/megaspaz/pychmod/pkg/fsutil"
)

// Config holds one run's settings. It is not modified by the walker.
type Config struct {
	// Modes applied per classification.
	DirMode  fsutil.Mode
	FileMode fsutil.Mode
	ExecMode fsutil.Mode

	// FollowSymlinks controls whether symbolic links are resolved and
	// processed. When false, links are skipped entirely: not descended
	// into and not chmodded.
	FollowSymlinks bool

	// Verbose enables one "tag: path" report line per processed entry.
	Verbose bool

	// Output receives the verbose report lines. Defaults to os.Stdout.
	Output io.Writer
}

// Stats counts the entries whose mode was changed during a run.
type Stats struct {
	Dirs    int
	Files   int
	Scripts int
}

type walker struct {
	cfg   Config
	out   io.Writer
	stats Stats

	// visited holds symlink-resolved directory paths when following
	// symlinks, so a link cycle cannot recurse forever.
	visited map[string]bool
}

// Walk recursively processes root and every descendant: each directory gets
// DirMode, each script/executable ExecMode and every other file FileMode.
// The first listing/chmod failure aborts the traversal; entries already
// processed keep their new mode. The returned stats cover the completed part
// of the run.
func Walk(ctx context.Context, root string, cfg Config) (Stats, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return Stats{}, errors.Wrapf(errors.ErrNotADirectory, "%s", root)
		}
		return Stats{}, errors.Wrapf(err, "cannot stat %s", root)
	}
	if !info.IsDir() {
		return Stats{}, errors.Wrapf(errors.ErrNotADirectory, "%s", root)
	}

	w := &walker{cfg: cfg, out: cfg.Output}
	if w.out == nil {
		w.out = os.Stdout
	}
	if cfg.FollowSymlinks {
		w.visited = make(map[string]bool)
	}

	err = w.walk(ctx, root)
	return w.stats, err
}

// walk processes a single directory frame: list the children, chmod the
// directory itself, then handle each child in lexical order.
func (w *walker) walk(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if w.visited != nil {
		resolved, err := filepath.EvalSymlinks(dir)
		if err != nil {
			return errors.Wrapf(err, "failed to resolve %s", dir)
		}
		if w.visited[resolved] {
			logger.Debugf("skipping already visited directory: %s", dir)
			return nil
		}
		w.visited[resolved] = true
	}

	// Listing happens before the chmod so a restrictive directory mode
	// cannot lock the walker out of its own traversal.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, "failed to list %s", dir)
	}

	if err := os.Chmod(dir, w.cfg.DirMode.FileMode()); err != nil {
		return err
	}
	w.stats.Dirs++
	w.report("dir", dir)

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		// The symlink check comes strictly first: a link to a
		// directory must not be traversed when following is off.
		isLink := entry.Type()&fs.ModeSymlink != 0
		if isLink && !w.cfg.FollowSymlinks {
			logger.Debugf("skipping symlink: %s", path)
			continue
		}

		isDir := entry.IsDir()
		if isLink {
			info, err := os.Stat(path)
			if err != nil {
				return errors.Wrapf(err, "failed to stat %s", path)
			}
			isDir = info.IsDir()
		}

		if isDir {
			if err := w.walk(ctx, path); err != nil {
				return err
			}
			continue
		}

		if err := w.chmodFile(path, entry.Name()); err != nil {
			return err
		}
	}
	return nil
}

// chmodFile classifies a file-like entry and applies the matching mode.
func (w *walker) chmodFile(path, name string) error {
	if classify(path, name) == classScript {
		if err := os.Chmod(path, w.cfg.ExecMode.FileMode()); err != nil {
			return err
		}
		w.stats.Scripts++
		w.report("script/executable", path)
		return nil
	}
	if err := os.Chmod(path, w.cfg.FileMode.FileMode()); err != nil {
		return err
	}
	w.stats.Files++
	w.report("file", path)
	return nil
}

func (w *walker) report(tag, path string) {
	if !w.cfg.Verbose {
		return
	}
	fmt.Fprintf(w.out, "%s: %s\n", tag, path)
}
