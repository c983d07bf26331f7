// Command knockout builds knockout-text badges into an HTML page or SVG
// fragment.
//
// Usage:
//
//	knockout [flags] page.html
//
// The result goes to -o, or stdout. With -watch the command keeps running
// and rebuilds when the page's badge data or the config file changes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/gogpu/knockout"
	"github.com/gogpu/knockout/internal/config"
)

type fontList []string

func (f *fontList) String() string     { return strings.Join(*f, ",") }
func (f *fontList) Set(v string) error { *f = append(*f, v); return nil }

func main() {
	var (
		configPath = flag.String("config", "", "settings file (.yaml, .yml or .toml)")
		output     = flag.String("o", "", "output file (default stdout)")
		fragment   = flag.Bool("fragment", false, "treat input as an SVG fragment (default for .svg)")
		pngDir     = flag.String("png", "", "directory for PNG previews")
		watch      = flag.Bool("watch", false, "rebuild on changes until interrupted")
		verbose    = flag.Bool("v", false, "debug logging")
		fonts      fontList
	)
	flag.Var(&fonts, "font", "font file tried before the built-in fonts (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: knockout [flags] page.html\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	knockout.SetLogger(logger)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			logger.Error("knockout: config", "err", err)
			os.Exit(1)
		}
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *pngDir != "" {
		cfg.PNGDir = *pngDir
	}
	cfg.Fonts = append(cfg.Fonts, fonts...)

	input := flag.Arg(0)
	a, err := newApp(cfg, input)
	if err != nil {
		logger.Error("knockout: setup", "err", err)
		os.Exit(1)
	}
	a.configPath = *configPath
	a.fragment = *fragment || strings.EqualFold(filepath.Ext(input), ".svg")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := a.run(ctx, *watch); err != nil {
		logger.Error("knockout: failed", "err", err)
		stop()
		os.Exit(1)
	}
}
