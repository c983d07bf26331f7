package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/gogpu/knockout"
)

// Reason tells a rebuild what triggered it.
type Reason int

const (
	ReasonReady Reason = iota
	ReasonFonts
	ReasonResize
	ReasonMutation
)

// String implements fmt.Stringer.
func (r Reason) String() string {
	switch r {
	case ReasonReady:
		return "ready"
	case ReasonFonts:
		return "fonts"
	case ReasonResize:
		return "resize"
	case ReasonMutation:
		return "mutation"
	default:
		return "unknown"
	}
}

// RebuildFunc rebuilds every container.
type RebuildFunc func(ctx context.Context, why Reason) error

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithDelay sets the resize debounce delay.
func WithDelay(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.delay = d
		}
	}
}

// Scheduler serializes rebuilds coming from all triggers.
type Scheduler struct {
	rebuild RebuildFunc
	delay   time.Duration

	run sync.Mutex // held for the duration of a rebuild

	mu        sync.Mutex
	resize    *Debouncer
	resizeCtx context.Context
}

// New creates a Scheduler calling rebuild.
func New(rebuild RebuildFunc, opts ...Option) *Scheduler {
	s := &Scheduler{rebuild: rebuild, delay: DefaultDelay}
	for _, opt := range opts {
		opt(s)
	}
	s.resize = NewDebouncer(s.delay, s.fireResize)
	return s
}

// Ready runs the initial rebuild.
func (s *Scheduler) Ready(ctx context.Context) error {
	return s.do(ctx, ReasonReady)
}

// FontsReady rebuilds once fonts has delivered a value or been closed. A
// load error is logged and the rebuild still runs with whatever fonts are
// available. A nil channel means there is no font signal, and the rebuild
// runs at once. The returned channel is closed after that rebuild.
func (s *Scheduler) FontsReady(ctx context.Context, fonts <-chan error) <-chan struct{} {
	done := make(chan struct{})
	if fonts == nil {
		_ = s.do(ctx, ReasonFonts)
		close(done)
		return done
	}
	go func() {
		defer close(done)
		select {
		case err := <-fonts:
			if err != nil {
				knockout.Logger().Warn("schedule: font loading failed", "err", err)
			}
			_ = s.do(ctx, ReasonFonts)
		case <-ctx.Done():
		}
	}()
	return done
}

// Resize schedules a debounced rebuild.
func (s *Scheduler) Resize(ctx context.Context) {
	s.mu.Lock()
	s.resizeCtx = ctx
	s.mu.Unlock()
	s.resize.Trigger()
}

// Mutate rebuilds at once after a data attribute change.
func (s *Scheduler) Mutate(ctx context.Context) error {
	return s.do(ctx, ReasonMutation)
}

// Stop cancels a pending resize rebuild. A rebuild already running is not
// interrupted.
func (s *Scheduler) Stop() {
	s.resize.Stop()
}

func (s *Scheduler) fireResize() {
	s.mu.Lock()
	ctx := s.resizeCtx
	s.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		return
	}
	_ = s.do(ctx, ReasonResize)
}

func (s *Scheduler) do(ctx context.Context, why Reason) error {
	s.run.Lock()
	defer s.run.Unlock()

	start := time.Now()
	err := s.rebuild(ctx, why)
	if err != nil {
		knockout.Logger().Warn("schedule: rebuild failed", "reason", why, "err", err)
		return err
	}
	knockout.Logger().Debug("schedule: rebuilt", "reason", why, "took", time.Since(start))
	return nil
}
