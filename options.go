package knockout

import "log/slog"

// Option configures a Renderer during creation.
//
// Example:
//
//	rn := knockout.NewRenderer(
//	    knockout.WithMeasurer(m),
//	    knockout.WithIDGenerator(knockout.RandomIDs{Prefix: "mask-"}),
//	)
type Option func(*options)

type options struct {
	measurer Measurer
	ids      IDGenerator
	logger   *slog.Logger
}

func defaultOptions() options {
	return options{
		measurer: nil, // zero metrics unless WithMeasurer is given
		ids:      nil, // NewCounterIDs(DefaultMaskPrefix) if nil
		logger:   nil, // package Logger() if nil
	}
}

// WithMeasurer sets the text measurer. Use measure.NewMeasurer for real
// font metrics; tests inject fixed boxes.
func WithMeasurer(m Measurer) Option {
	return func(o *options) {
		o.measurer = m
	}
}

// WithIDGenerator sets the mask id source. The default is a per-renderer
// counter.
func WithIDGenerator(g IDGenerator) Option {
	return func(o *options) {
		o.ids = g
	}
}

// WithLogger sets the logger for this renderer only.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
