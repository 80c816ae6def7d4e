package site

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"
)

// ErrOutputOverlap is returned when the output directory would contain,
// or be contained in, a source path. Building would delete the sources.
var ErrOutputOverlap = errors.New("output directory overlaps a source path")

// CopyStatic replaces the contents of dst with a copy of the src tree.
// It returns the number of files copied.
func CopyStatic(fsys billy.Filesystem, src string, dst string, logger *zap.SugaredLogger) (int, error) {
	if err := checkOutputDir(dst, src); err != nil {
		return 0, err
	}

	fi, err := fsys.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("static directory: %w", err)
	}
	if !fi.IsDir() {
		return 0, fmt.Errorf("static directory: %s is not a directory", src)
	}

	logger.Debugw("removing output directory", "dir", dst)
	if err := util.RemoveAll(fsys, dst); err != nil {
		return 0, fmt.Errorf("removing %s: %w", dst, err)
	}

	return copyTree(fsys, src, dst, logger)
}

func copyTree(fsys billy.Filesystem, src string, dst string, logger *zap.SugaredLogger) (int, error) {
	if err := fsys.MkdirAll(dst, 0o755); err != nil {
		return 0, fmt.Errorf("creating %s: %w", dst, err)
	}

	entries, err := fsys.ReadDir(src)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", src, err)
	}

	copied := 0
	for _, entry := range entries {
		from := path.Join(src, entry.Name())
		to := path.Join(dst, entry.Name())

		if entry.IsDir() {
			n, err := copyTree(fsys, from, to, logger)
			copied += n
			if err != nil {
				return copied, err
			}
			continue
		}

		data, err := util.ReadFile(fsys, from)
		if err != nil {
			return copied, fmt.Errorf("copying %s: %w", from, err)
		}
		if err := util.WriteFile(fsys, to, data, entry.Mode().Perm()); err != nil {
			return copied, fmt.Errorf("copying %s: %w", from, err)
		}
		logger.Infow("copied", "from", from, "to", to)
		copied++
	}
	return copied, nil
}

// checkOutputDir fails when out is the root of the filesystem, or when it
// is the same as, inside of, or a parent of any of sources.
func checkOutputDir(out string, sources ...string) error {
	if cleanPath(out) == "/" {
		return fmt.Errorf("%w: %q is the root of the site", ErrOutputOverlap, out)
	}
	out = cleanPath(out)
	for _, src := range sources {
		src = cleanPath(src)
		if isWithin(out, src) || isWithin(src, out) {
			return fmt.Errorf("%w: %s and %s", ErrOutputOverlap, out, src)
		}
	}
	return nil
}

// cleanPath makes every path absolute to the filesystem root, so that
// "static", "./static" and "/static" compare equal.
func cleanPath(p string) string {
	return path.Clean("/" + p)
}

// isWithin reports whether p is dir or below it. Both paths are clean.
func isWithin(p string, dir string) bool {
	return p == dir || dir == "/" || strings.HasPrefix(p, dir+"/")
}
