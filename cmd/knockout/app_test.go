package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/knockout"
	"github.com/gogpu/knockout/internal/config"
	"github.com/gogpu/knockout/measure"
	"github.com/gogpu/knockout/schedule"
)

const page = `<svg class="tag-fill-svg-h1" style="height: 84px" data-text="HELLO" data-color="#f36"></svg>`

func newTestApp(t *testing.T, cfg config.Config) (*app, *bytes.Buffer) {
	t.Helper()
	input := filepath.Join(t.TempDir(), "badge.svg")
	require.NoError(t, os.WriteFile(input, []byte(page), 0o644))

	a, err := newApp(cfg, input)
	require.NoError(t, err)
	a.fragment = true
	var out bytes.Buffer
	a.stdout = &out
	return a, &out
}

func TestRunOnce(t *testing.T) {
	a, out := newTestApp(t, config.Default())
	require.NoError(t, a.run(context.Background(), false))

	got := out.String()
	assert.Equal(t, 1, strings.Count(got, "<defs>"), "written once")
	assert.Contains(t, got, `mask="url(#mask-`)
	assert.Contains(t, got, `fill="#f36"`)
	assert.Contains(t, got, ">HELLO</text>")
}

func TestRunWritesFileAndPreviews(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Output = filepath.Join(dir, "out.svg")
	cfg.PNGDir = filepath.Join(dir, "png")
	cfg.IDs = config.IDsRandom

	a, out := newTestApp(t, cfg)
	require.NoError(t, a.run(context.Background(), false))
	assert.Empty(t, out.String())

	b, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Contains(t, string(b), "<mask")

	_, err = os.Stat(filepath.Join(cfg.PNGDir, "badge-00.png"))
	assert.NoError(t, err)
}

func TestUnchangedDataSkipsMutation(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	require.NoError(t, a.rebuild(context.Background(), schedule.ReasonReady))
	first := a.doc

	require.NoError(t, a.rebuild(context.Background(), schedule.ReasonMutation))
	assert.Same(t, first, a.doc, "same signature, no rebuild")

	require.NoError(t, os.WriteFile(a.input, []byte(strings.Replace(page, "HELLO", "WORLD", 1)), 0o644))
	require.NoError(t, a.rebuild(context.Background(), schedule.ReasonMutation))
	assert.NotSame(t, first, a.doc)
}

func TestClassify(t *testing.T) {
	a, _ := newTestApp(t, config.Default())
	a.configPath = filepath.Join(filepath.Dir(a.input), "knockout.yaml")

	why, ok := a.classify(a.input)
	assert.True(t, ok)
	assert.Equal(t, schedule.ReasonMutation, why)

	why, ok = a.classify(a.configPath)
	assert.True(t, ok)
	assert.Equal(t, schedule.ReasonResize, why)

	_, ok = a.classify(filepath.Join(filepath.Dir(a.input), "other.txt"))
	assert.False(t, ok)
}

func TestLoadFonts(t *testing.T) {
	assert.Nil(t, loadFonts(measure.DefaultFontSet(), nil))

	err := <-loadFonts(measure.DefaultFontSet(), []string{filepath.Join(t.TempDir(), "missing.ttf")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewAppRejectsUnknownShaper(t *testing.T) {
	cfg := config.Default()
	cfg.Shaper = "magic"
	_, err := newApp(cfg, "page.html")
	assert.Error(t, err)
}

func render(t *testing.T, a *app) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, a.doc.Render(&buf))
	return buf.String()
}

func TestHeightOnlyEditIsResize(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t, config.Default())
	require.NoError(t, a.rebuild(ctx, schedule.ReasonReady))
	small := render(t, a)

	var resized int
	a.resize = func(context.Context) { resized++ }

	require.NoError(t, os.WriteFile(a.input, []byte(strings.Replace(page, "84px", "168px", 1)), 0o644))
	why, ok := a.classify(a.input)
	require.True(t, ok)
	require.NoError(t, a.rebuild(ctx, why))
	assert.Equal(t, 1, resized, "height edit goes to the debounced trigger")
	assert.Equal(t, small, render(t, a))

	require.NoError(t, a.rebuild(ctx, schedule.ReasonResize))
	assert.NotEqual(t, small, render(t, a))
}

func TestHeightOnlyEditWithoutSchedulerRebuilds(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t, config.Default())
	require.NoError(t, a.rebuild(ctx, schedule.ReasonReady))
	before := a.doc

	require.NoError(t, os.WriteFile(a.input, []byte(strings.Replace(page, "84px", "168px", 1)), 0o644))
	require.NoError(t, a.rebuild(ctx, schedule.ReasonMutation))
	assert.NotSame(t, before, a.doc)
}

func TestConfigLoggedOncePerContainer(t *testing.T) {
	var buf bytes.Buffer
	knockout.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))
	t.Cleanup(func() { knockout.SetLogger(nil) })

	a, _ := newTestApp(t, config.Default())
	require.NoError(t, a.run(context.Background(), false))
	assert.Equal(t, 1, strings.Count(buf.String(), "knockout: config"), buf.String())

	// A data edit parses the page again; the container keeps its identity.
	require.NoError(t, os.WriteFile(a.input, []byte(strings.Replace(page, "HELLO", "WORLD", 1)), 0o644))
	require.NoError(t, a.rebuild(context.Background(), schedule.ReasonMutation))
	assert.Equal(t, 1, strings.Count(buf.String(), "knockout: config"), buf.String())
}

func TestFontsReadyReusesDocument(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t, config.Default())
	require.NoError(t, a.rebuild(ctx, schedule.ReasonReady))
	first := a.doc

	require.NoError(t, a.rebuild(ctx, schedule.ReasonFonts))
	assert.Same(t, first, a.doc)
}

func TestConfigReloadSwapsShaperAndIDs(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t, config.Default())
	a.configPath = filepath.Join(filepath.Dir(a.input), "knockout.yaml")
	require.NoError(t, os.WriteFile(a.configPath, []byte("ids: counter\n"), 0o644))

	require.NoError(t, a.rebuild(ctx, schedule.ReasonReady))
	assert.Contains(t, render(t, a), `id="mask-1"`)
	m := a.measurer

	require.NoError(t, os.WriteFile(a.configPath, []byte("ids: random\nshaper: harfbuzz\n"), 0o644))
	require.NoError(t, a.rebuild(ctx, schedule.ReasonResize))

	assert.Equal(t, config.IDsRandom, a.cfg.IDs)
	assert.IsType(t, knockout.RandomIDs{}, a.ids)
	assert.NotSame(t, m, a.measurer, "shaper change replaces the measurer")
	out := render(t, a)
	assert.NotContains(t, out, `id="mask-2"`)
	assert.Contains(t, out, `id="mask-`)

	// An invalid file keeps the previous settings.
	require.NoError(t, os.WriteFile(a.configPath, []byte("ids: uuid\n"), 0o644))
	require.NoError(t, a.rebuild(ctx, schedule.ReasonResize))
	assert.Equal(t, config.IDsRandom, a.cfg.IDs)
}
