package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gogpu/knockout"
	"github.com/gogpu/knockout/dom"
	"github.com/gogpu/knockout/internal/config"
	"github.com/gogpu/knockout/measure"
	"github.com/gogpu/knockout/preview"
	"github.com/gogpu/knockout/schedule"
)

// app owns one page and everything needed to rebuild it.
type app struct {
	cfg        config.Config
	input      string
	configPath string
	fragment   bool
	stdout     io.Writer

	fonts    *measure.FontSet
	renderer *knockout.Renderer

	// resize hands a height-only page edit to the debounced trigger. Nil
	// rebuilds at once.
	resize func(context.Context)

	mu       sync.Mutex
	measurer *measure.Measurer
	ids      knockout.IDGenerator
	doc      *dom.Document
	prev     []dom.Element
	sig      string // data attributes of the built containers
	heights  string // their rendered heights
	live     bool   // write after every rebuild
}

func newApp(cfg config.Config, input string) (*app, error) {
	a := &app{
		input:  input,
		stdout: os.Stdout,
		fonts:  measure.DefaultFontSet(),
	}
	if err := a.apply(cfg); err != nil {
		return nil, err
	}
	// The renderer outlives config reloads so that each container's config
	// is logged once per run.
	a.renderer = knockout.NewRenderer(
		knockout.WithMeasurer(knockout.MeasurerFunc(a.measure)),
		knockout.WithIDGenerator(knockout.IDFunc(a.nextID)),
	)
	return a, nil
}

// apply installs cfg, replacing the measurer and id generator when their
// settings changed. Callers hold a.mu or own a exclusively.
func (a *app) apply(cfg config.Config) error {
	shaper, ok := measure.ParseShaper(cfg.Shaper)
	if !ok {
		return fmt.Errorf("unknown shaper %q", cfg.Shaper)
	}
	if a.measurer == nil || cfg.Shaper != a.cfg.Shaper {
		a.measurer = measure.NewMeasurer(a.fonts, measure.WithShaper(shaper))
	}
	if a.ids == nil || cfg.IDs != a.cfg.IDs {
		if cfg.IDs == config.IDsRandom {
			a.ids = knockout.RandomIDs{Prefix: knockout.DefaultMaskPrefix}
		} else {
			a.ids = knockout.NewCounterIDs(knockout.DefaultMaskPrefix)
		}
	}
	a.cfg = cfg
	return nil
}

// measure and nextID run inside rebuild, under a.mu.
func (a *app) measure(s string, style knockout.TextStyle) (w, h float64) {
	return a.measurer.Measure(s, style)
}

func (a *app) nextID() string { return a.ids.NextID() }

// run builds on ready and on fonts-ready, then writes the page. With watch
// it keeps rebuilding until ctx is done.
func (a *app) run(ctx context.Context, watch bool) error {
	s := schedule.New(a.rebuild, schedule.WithDelay(time.Duration(a.cfg.Debounce)))
	defer s.Stop()

	if err := s.Ready(ctx); err != nil {
		return err
	}
	<-s.FontsReady(ctx, loadFonts(a.fonts, a.cfg.Fonts))
	if err := a.write(); err != nil {
		return err
	}
	if !watch {
		return nil
	}

	a.mu.Lock()
	a.live = true
	a.resize = s.Resize
	a.mu.Unlock()

	paths := []string{a.input}
	if a.configPath != "" {
		paths = append(paths, a.configPath)
	}
	knockout.Logger().Info("knockout: watching", "paths", paths)
	return s.Watch(ctx, a.classify, paths...)
}

// classify maps the config file to resize and the page to mutation.
// rebuild tells a data edit of the page from a height-only one.
func (a *app) classify(path string) (schedule.Reason, bool) {
	if a.configPath != "" && sameFile(path, a.configPath) {
		return schedule.ReasonResize, true
	}
	if sameFile(path, a.input) {
		return schedule.ReasonMutation, true
	}
	return 0, false
}

func (a *app) rebuild(ctx context.Context, why schedule.Reason) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if why == schedule.ReasonResize && a.configPath != "" {
		a.reloadConfig()
	}

	doc := a.doc
	if why != schedule.ReasonFonts || doc == nil {
		var err error
		if doc, err = a.parse(); err != nil {
			return err
		}
	}
	els := doc.Containers(a.cfg.Classes...)
	sig, heights := dom.DataSignature(els), dom.HeightSignature(els)

	if why == schedule.ReasonMutation && sig == a.sig {
		if heights == a.heights {
			knockout.Logger().Debug("knockout: badge data unchanged")
			return nil
		}
		if a.resize != nil {
			knockout.Logger().Debug("knockout: container heights changed")
			a.resize(ctx)
			return nil
		}
	}

	// Containers that went away free their diagnostics entry.
	for _, el := range a.prev[min(len(els), len(a.prev)):] {
		a.renderer.Forget(el)
	}
	for i, el := range els {
		f := a.renderer.Build(el)
		if a.cfg.PNGDir != "" {
			if err := a.writePreview(i, f); err != nil {
				knockout.Logger().Warn("knockout: preview", "container", i, "err", err)
			}
		}
	}
	a.doc, a.prev, a.sig, a.heights = doc, els, sig, heights
	knockout.Logger().Debug("knockout: rebuilt", "reason", why, "containers", len(els))

	if a.live {
		return a.writeLocked()
	}
	return nil
}

// reloadConfig re-reads the config file. Font files and output paths stay
// as given at startup.
func (a *app) reloadConfig() {
	cfg, err := config.Load(a.configPath)
	if err == nil {
		cfg.Output, cfg.PNGDir, cfg.Fonts = a.cfg.Output, a.cfg.PNGDir, a.cfg.Fonts
		err = a.apply(cfg)
	}
	if err != nil {
		knockout.Logger().Warn("knockout: config reload failed, keeping previous", "err", err)
	}
}

func (a *app) parse() (*dom.Document, error) {
	// #nosec G304 -- input path is provided by the user
	b, err := os.ReadFile(a.input)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", a.input, err)
	}
	opts := []dom.Option{
		dom.WithName(a.input),
		dom.WithClassHeights(a.cfg.ClassHeights),
		dom.WithRootFontSize(a.cfg.RootFontSize),
	}
	parse := dom.Parse
	if a.fragment {
		parse = dom.ParseFragment
	}
	doc, err := parse(bytes.NewReader(b), opts...)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", a.input, err)
	}
	return doc, nil
}

func (a *app) write() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.writeLocked()
}

func (a *app) writeLocked() error {
	if a.doc == nil {
		return errors.New("nothing built")
	}
	var buf bytes.Buffer
	if err := a.doc.Render(&buf); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if a.cfg.Output == "" {
		_, err := a.stdout.Write(buf.Bytes())
		return err
	}
	// #nosec G306 -- page output is public
	if err := os.WriteFile(a.cfg.Output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %q: %w", a.cfg.Output, err)
	}
	return nil
}

func (a *app) writePreview(i int, f knockout.Fragment) error {
	img, err := preview.Render(f, a.measurer, preview.WithScale(a.cfg.PNGScale))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(a.cfg.PNGDir, 0o755); err != nil {
		return fmt.Errorf("create %q: %w", a.cfg.PNGDir, err)
	}
	return preview.WritePNG(filepath.Join(a.cfg.PNGDir, fmt.Sprintf("badge-%02d.png", i)), img)
}

// loadFonts registers font files in the background. The channel receives
// the joined load errors once every file was tried. Files listed first end
// up first in the stack. No files means no signal.
func loadFonts(set *measure.FontSet, paths []string) <-chan error {
	if len(paths) == 0 {
		return nil
	}
	done := make(chan error, 1)
	go func() {
		var errs []error
		for i := len(paths) - 1; i >= 0; i-- {
			face, err := set.AddFontFile(paths[i])
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if err := set.Prepend(face.Family); err != nil {
				errs = append(errs, err)
				continue
			}
			knockout.Logger().Debug("knockout: font loaded", "path", paths[i], "family", face.Family, "weight", face.Weight)
		}
		done <- errors.Join(errs...)
	}()
	return done
}

func sameFile(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	return err1 == nil && err2 == nil && aa == bb
}
