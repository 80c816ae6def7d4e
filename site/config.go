// Package site turns a tree of Markdown pages into a static HTML site.
// Every operation works over a billy.Filesystem, so the same code runs
// against the real disk and against memory.
package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hesusruiz/mdsite/markdown"
	"github.com/hesusruiz/vcutils/yaml"
	"go.uber.org/zap"
)

// DefaultConfigFile is read by the CLI when no other file is given.
const DefaultConfigFile = "mdsite.yaml"

// Config holds the settings of a site build.
type Config struct {
	ContentDir string
	StaticDir  string
	OutputDir  string
	Template   string
	BasePath   string

	Highlight   bool
	CodeStyle   string
	Diagrams    bool
	Blockquotes bool
}

// DefaultConfig returns the settings used when there is no config file.
func DefaultConfig() *Config {
	c, _ := configFromYAML(nil)
	return c
}

// ParseConfig reads the settings from a YAML document. Missing keys keep
// their default values.
func ParseConfig(src string) (*Config, error) {
	y, err := yaml.ParseYaml(src)
	if err != nil {
		return nil, fmt.Errorf("malformed configuration: %w", err)
	}
	return configFromYAML(y)
}

// LoadConfig reads the settings from a YAML file. A missing file is not an
// error and yields the default settings.
func LoadConfig(fileName string) (*Config, error) {
	if _, err := os.Stat(fileName); errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}

	y, err := yaml.ParseYamlFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fileName, err)
	}
	return configFromYAML(y)
}

func configFromYAML(y *yaml.YAML) (*Config, error) {
	if y == nil {
		var err error
		if y, err = yaml.ParseYaml(""); err != nil {
			return nil, err
		}
	}

	c := &Config{
		ContentDir: y.String("site.content", "content"),
		StaticDir:  y.String("site.static", "static"),
		OutputDir:  y.String("site.output", "public"),
		Template:   y.String("site.template", "template.html"),
		BasePath:   y.String("site.basepath", "/"),

		Highlight:   y.Bool("markdown.highlight"),
		CodeStyle:   y.String("markdown.codeStyle", "github"),
		Diagrams:    y.Bool("markdown.diagrams"),
		Blockquotes: y.Bool("markdown.blockquote"),
	}
	return c, nil
}

// Converter builds the Markdown converter described by the settings.
func (c *Config) Converter(logger *zap.SugaredLogger) *markdown.Converter {
	opts := []markdown.Option{markdown.WithLogger(logger)}
	if c.Highlight {
		opts = append(opts, markdown.WithHighlighting(c.CodeStyle))
	}
	if c.Diagrams {
		opts = append(opts, markdown.WithDiagrams())
	}
	if c.Blockquotes {
		opts = append(opts, markdown.WithBlockquotes())
	}
	return markdown.NewConverter(opts...)
}
