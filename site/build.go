package site

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"
)

// Build copies the static assets into the output directory and generates
// every page of the content directory. It returns the number of pages.
func Build(fsys billy.Filesystem, cfg *Config, logger *zap.SugaredLogger) (int, error) {
	if err := checkOutputDir(cfg.OutputDir, cfg.ContentDir, cfg.StaticDir, cfg.Template); err != nil {
		return 0, err
	}

	files, err := CopyStatic(fsys, cfg.StaticDir, cfg.OutputDir, logger)
	if err != nil {
		return 0, err
	}
	logger.Debugw("static assets copied", "files", files)

	pages, err := GeneratePagesRecursive(fsys, cfg.ContentDir, cfg.Template, cfg.OutputDir, cfg.BasePath, cfg.Converter(logger), logger)
	if err != nil {
		return pages, err
	}

	logger.Infow("site built", "pages", pages, "output", cfg.OutputDir)
	return pages, nil
}

// Mirror copies the named files and directory trees from src into dst,
// keeping their paths. Names that do not exist in src are skipped.
func Mirror(src billy.Filesystem, dst billy.Filesystem, names ...string) error {
	for _, name := range names {
		err := util.Walk(src, name, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				if os.IsNotExist(err) {
					return filepath.SkipDir
				}
				return err
			}
			p = filepath.ToSlash(p)
			if info.IsDir() {
				return dst.MkdirAll(p, 0o755)
			}
			data, err := util.ReadFile(src, p)
			if err != nil {
				return err
			}
			return util.WriteFile(dst, p, data, info.Mode().Perm())
		})
		if err != nil {
			return fmt.Errorf("mirroring %s: %w", name, err)
		}
	}
	return nil
}
