package knockout

import (
	"log/slog"
	"sync"
)

// Container is a graphics element that hosts a badge.
//
// Implementations must be comparable and equal for the same underlying
// element, because the renderer keys its one-time diagnostics on them,
// unless they implement [Identifier].
type Container interface {
	AttributeSource

	// RenderedHeight returns the container's current height in px, or
	// false when layout does not determine one.
	RenderedHeight() (float64, bool)

	// Apply replaces every child of the container with the fragment's
	// <defs> block and pill, and sets viewBox, width and height.
	Apply(f Fragment)
}

// Identifier is implemented by containers whose identity outlives the
// value, such as the elements of a page that is parsed again after every
// edit. When ok is true the renderer keys its diagnostics on id instead of
// the container value.
type Identifier interface {
	Identity() (id string, ok bool)
}

// Renderer builds badges into containers.
//
// Renderer is safe for concurrent use, although builds are normally driven
// one at a time by a scheduler.
type Renderer struct {
	measurer Measurer
	ids      IDGenerator
	logger   *slog.Logger

	mu     sync.Mutex
	logged map[any]struct{}
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.measurer == nil {
		o.measurer = MeasurerFunc(func(string, TextStyle) (float64, float64) { return 0, 0 })
	}
	if o.ids == nil {
		o.ids = NewCounterIDs(DefaultMaskPrefix)
	}
	return &Renderer{
		measurer: o.measurer,
		ids:      o.ids,
		logger:   o.logger,
		logged:   make(map[any]struct{}),
	}
}

func (r *Renderer) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return Logger()
}

// Build rebuilds one container and returns the fragment it installed.
// It may be called any number of times for the same container; each call
// fully replaces the previous content.
func (r *Renderer) Build(c Container) Fragment {
	cfg := ReadConfig(c)
	if r.markLogged(c) {
		r.log().Info("knockout: config", "config", cfg)
	}

	h, ok := c.RenderedHeight()
	if !ok {
		h = 0
	}

	f := Build(cfg, h, r.measurer, r.ids.NextID())
	c.Apply(f)

	r.log().Debug("knockout: built",
		"mask", f.MaskID,
		"fontSize", f.Text.Style.Size,
		"width", f.Width,
		"height", f.Height)
	return f
}

// RebuildAll builds every container independently and returns how many
// were built.
func (r *Renderer) RebuildAll(cs []Container) int {
	for _, c := range cs {
		r.Build(c)
	}
	return len(cs)
}

// Logged reports whether c's config record has been emitted.
func (r *Renderer) Logged(c Container) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.logged[key(c)]
	return ok
}

// Forget drops c from the diagnostics table. Callers that discard a
// document should forget its containers.
func (r *Renderer) Forget(c Container) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.logged, key(c))
}

// markLogged records c and reports whether it was newly added.
func (r *Renderer) markLogged(c Container) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(c)
	if _, ok := r.logged[k]; ok {
		return false
	}
	r.logged[k] = struct{}{}
	return true
}

type identityKey string

func key(c Container) any {
	if idr, ok := c.(Identifier); ok {
		if id, ok := idr.Identity(); ok {
			return identityKey(id)
		}
	}
	return c
}
