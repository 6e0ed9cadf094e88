package coordinator

import (
	"github.com/dreamware/parsort/internal/logging"
	"github.com/dreamware/parsort/internal/metrics"
	"github.com/dreamware/parsort/internal/resource"
	"github.com/dreamware/parsort/internal/trace"
)

type options struct {
	logger    *logging.Logger
	tracer    *trace.Emitter
	collector metrics.Collector
	resources *resource.Controller
}

// Option configures an Engine.
type Option func(*options)

// WithLogger sets the structured logger. If nil is passed, logging is disabled.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = logging.NoopLogger()
		}
		o.logger = l
	}
}

// WithTracer enables per-worker trace lines on tr. A nil tr disables tracing.
func WithTracer(tr *trace.Emitter) Option {
	return func(o *options) {
		o.tracer = tr
	}
}

// WithCollector forwards every completed sort to c.
// If nil is passed, metrics.NoopCollector is used.
func WithCollector(c metrics.Collector) Option {
	return func(o *options) {
		if c == nil {
			c = metrics.NoopCollector{}
		}
		o.collector = c
	}
}

// WithResources accounts merge scratch memory against rc. With a nil rc the
// scratch buffer is allocated without accounting.
func WithResources(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}
