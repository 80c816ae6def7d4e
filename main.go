package main

import (
	"fmt"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/hesusruiz/mdsite/site"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// newLogger sets up the logging system
func newLogger(debug bool) *zap.SugaredLogger {
	var z *zap.Logger
	var err error

	if debug {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}

	return z.Sugar()
}

// loadConfig reads the config file and applies the command line overrides
func loadConfig(c *cli.Context) (*site.Config, error) {
	cfg, err := site.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("highlight") {
		cfg.Highlight = c.Bool("highlight")
	}
	if c.IsSet("style") {
		cfg.CodeStyle = c.String("style")
	}
	if c.IsSet("diagrams") {
		cfg.Diagrams = c.Bool("diagrams")
	}
	if c.IsSet("blockquote") {
		cfg.Blockquotes = c.Bool("blockquote")
	}

	return cfg, nil
}

// processBuild generates the whole site
func processBuild(c *cli.Context) error {
	sugar := newLogger(c.Bool("debug"))
	defer sugar.Sync()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	// The base path can be given as the first argument, overriding the config
	if c.Args().Present() {
		cfg.BasePath = c.Args().First()
	}
	if c.IsSet("output") {
		cfg.OutputDir = c.String("output")
	}

	disk := osfs.New(".")

	build := func() error {
		var fsys billy.Filesystem = disk

		// In a dry run everything happens over an in-memory copy of the sources
		if c.Bool("dryrun") {
			fsys = memfs.New()
			if err := site.Mirror(disk, fsys, cfg.ContentDir, cfg.StaticDir, cfg.Template); err != nil {
				return err
			}
		}

		start := time.Now()
		pages, err := site.Build(fsys, cfg, sugar)
		if err != nil {
			return err
		}

		if c.Bool("dryrun") {
			fmt.Printf("dry run: %d pages processed without writing output\n", pages)
		} else {
			fmt.Printf("%d pages generated in %v (%v)\n", pages, cfg.OutputDir, time.Since(start).Round(time.Millisecond))
		}
		return nil
	}

	if err := build(); err != nil {
		if !c.Bool("watch") {
			return err
		}
		sugar.Errorw("initial build failed", "error", err)
	}

	if !c.Bool("watch") {
		return nil
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return site.Watch(ctx, []string{cfg.ContentDir, cfg.StaticDir, cfg.Template}, build, sugar)
}

// processPage converts a single Markdown file
func processPage(c *cli.Context) error {
	sugar := newLogger(c.Bool("debug"))
	defer sugar.Sync()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	if !c.Args().Present() {
		return cli.Exit("no input file provided", 1)
	}
	inputFileName := c.Args().First()

	// Generate the output file name
	outputFileName := c.String("output")
	if len(outputFileName) == 0 {
		ext := path.Ext(inputFileName)
		if len(ext) == 0 {
			outputFileName = inputFileName + ".html"
		} else {
			outputFileName = strings.TrimSuffix(inputFileName, ext) + ".html"
		}
	}

	disk := osfs.New(".")

	md, err := util.ReadFile(disk, inputFileName)
	if err != nil {
		return err
	}
	tpl, err := util.ReadFile(disk, cfg.Template)
	if err != nil {
		return err
	}

	page, err := site.RenderPage(string(md), string(tpl), cfg.BasePath, cfg.Converter(sugar))
	if err != nil {
		return fmt.Errorf("generating %s: %w", inputFileName, err)
	}

	if c.Bool("stdout") {
		_, err = os.Stdout.Write(page)
		return err
	}

	if c.Bool("dryrun") {
		fmt.Printf("dry run: processed %v without writing output\n", inputFileName)
		return nil
	}

	fmt.Printf("processing %v and generating %v\n", inputFileName, outputFileName)
	if err := disk.MkdirAll(path.Dir(outputFileName), 0o755); err != nil {
		return err
	}
	return util.WriteFile(disk, outputFileName, page, 0o664)
}

func main() {

	app := &cli.App{
		Name:     "mdsite",
		Version:  "v0.1.0",
		Compiled: time.Now(),
		Authors: []*cli.Author{
			{
				Name:  "Jesus Ruiz",
				Email: "hesus.ruiz@gmail.com",
			},
		},
		Usage:     "generate a static HTML site from Markdown pages",
		UsageText: "mdsite [global options] command [command options] [arguments...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   site.DefaultConfigFile,
				Usage:   "read the site configuration from `FILE`",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "run in debug mode",
			},
			&cli.BoolFlag{
				Name:  "highlight",
				Usage: "highlight code blocks that name a language",
			},
			&cli.StringFlag{
				Name:  "style",
				Usage: "highlight code with the chroma `STYLE`",
			},
			&cli.BoolFlag{
				Name:  "diagrams",
				Usage: "render d2 code blocks as SVG diagrams",
			},
			&cli.BoolFlag{
				Name:  "blockquote",
				Usage: "render quote blocks with the blockquote tag",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "build",
				Usage:     "copy static assets and generate every page",
				ArgsUsage: "[BASEPATH]",
				Action:    processBuild,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "write the site to `DIR`",
					},
					&cli.BoolFlag{
						Name:    "dryrun",
						Aliases: []string{"n"},
						Usage:   "process every page without writing output",
					},
					&cli.BoolFlag{
						Name:    "watch",
						Aliases: []string{"w"},
						Usage:   "rebuild the site when sources change",
					},
				},
			},
			{
				Name:      "page",
				Usage:     "generate a single page",
				ArgsUsage: "INPUT_FILE",
				Action:    processPage,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "write html to `FILE` (default is input file name with extension .html)",
					},
					&cli.BoolFlag{
						Name:  "stdout",
						Usage: "write html to the standard output",
					},
					&cli.BoolFlag{
						Name:    "dryrun",
						Aliases: []string{"n"},
						Usage:   "do not generate output file, just process input file",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

}
