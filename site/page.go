package site

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/hesusruiz/mdsite/markdown"
	"github.com/hesusruiz/mdsite/sliceedit"
	"go.uber.org/zap"
)

const (
	titlePlaceholder   = "{{ Title }}"
	contentPlaceholder = "{{ Content }}"
)

var (
	ErrNoTitle   = errors.New("no h1 heading found")
	ErrNoContent = errors.New("no content")
)

// ExtractTitle returns the text of the first line starting with a level 1
// heading marker.
func ExtractTitle(md string) (string, error) {
	for _, line := range strings.Split(md, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:]), nil
		}
	}
	return "", ErrNoTitle
}

// NormalizeBasePath makes sure the path starts and ends with a slash.
func NormalizeBasePath(basePath string) string {
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return basePath
}

// RewriteBasePath makes root-relative links and sources in page relative to
// basePath instead.
func RewriteBasePath(page []byte, basePath string) []byte {
	basePath = NormalizeBasePath(basePath)
	if basePath == "/" {
		return page
	}
	return sliceedit.ReplaceAll(page,
		`href="/`, `href="`+basePath,
		`src="/`, `src="`+basePath,
	)
}

// RenderPage converts a Markdown document and places it in template.
func RenderPage(md string, template string, basePath string, conv *markdown.Converter) ([]byte, error) {
	md = strings.ReplaceAll(md, "\r\n", "\n")
	if len(strings.TrimSpace(md)) == 0 {
		return nil, ErrNoContent
	}

	content, err := conv.ToHTML(md)
	if err != nil {
		return nil, err
	}

	title, err := ExtractTitle(md)
	if err != nil {
		return nil, err
	}

	page := strings.ReplaceAll(template, titlePlaceholder, title)
	page = strings.ReplaceAll(page, contentPlaceholder, content)

	return RewriteBasePath([]byte(page), basePath), nil
}

// GeneratePage converts the Markdown file from into an HTML file dest,
// using the template file. Missing parent directories of dest are created.
func GeneratePage(fsys billy.Filesystem, from string, template string, dest string, basePath string, conv *markdown.Converter, logger *zap.SugaredLogger) error {
	logger.Infow("generating page", "from", from, "template", template, "dest", dest)

	md, err := util.ReadFile(fsys, from)
	if err != nil {
		return fmt.Errorf("generating %s: %w", from, err)
	}
	tpl, err := util.ReadFile(fsys, template)
	if err != nil {
		return fmt.Errorf("generating %s: %w", from, err)
	}

	page, err := RenderPage(string(md), string(tpl), basePath, conv)
	if err != nil {
		// A syntax error already names the file and line
		var se *markdown.SyntaxError
		if errors.As(err, &se) {
			se.Filename = from
			return err
		}
		return fmt.Errorf("generating %s: %w", from, err)
	}

	if err := fsys.MkdirAll(path.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("generating %s: %w", from, err)
	}
	if err := util.WriteFile(fsys, dest, page, 0o664); err != nil {
		return fmt.Errorf("generating %s: %w", from, err)
	}
	return nil
}

// GeneratePagesRecursive generates one HTML page in destDir for every
// Markdown file below contentDir, mirroring the directory structure.
// It returns the number of pages written.
func GeneratePagesRecursive(fsys billy.Filesystem, contentDir string, template string, destDir string, basePath string, conv *markdown.Converter, logger *zap.SugaredLogger) (int, error) {
	entries, err := fsys.ReadDir(contentDir)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", contentDir, err)
	}

	pages := 0
	for _, entry := range entries {
		from := path.Join(contentDir, entry.Name())

		if entry.IsDir() {
			n, err := GeneratePagesRecursive(fsys, from, template, path.Join(destDir, entry.Name()), basePath, conv, logger)
			pages += n
			if err != nil {
				return pages, err
			}
			continue
		}

		if !isMarkdown(entry) {
			logger.Debugw("skipping", "file", from)
			continue
		}

		dest := path.Join(destDir, strings.TrimSuffix(entry.Name(), ".md")+".html")
		if err := GeneratePage(fsys, from, template, dest, basePath, conv, logger); err != nil {
			return pages, err
		}
		pages++
	}
	return pages, nil
}

func isMarkdown(fi os.FileInfo) bool {
	return fi.Mode().IsRegular() && path.Ext(fi.Name()) == ".md"
}
