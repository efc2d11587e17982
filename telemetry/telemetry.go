// Package telemetry provides hierarchical timing collection for operations.
//
// Collectors travel through a context so instrumentation stays non-intrusive:
// code paths call FromContext and get a no-op collector when telemetry is
// disabled, without any change to function signatures.
//
// Example usage:
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	timer := telemetry.FromContext(ctx).Start("format config.txt")
//	defer timer.End()
//
//	collector.Report(os.Stderr, nil)
package telemetry

import (
	"context"
	"io"

	"github.com/robinvdvleuten/traderfmt/output"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey struct{}

var collectorKey = contextKey{}

// Collector collects timing data for a run.
type Collector interface {
	// Start begins timing an operation and returns a Timer. Nested Start
	// calls are recorded as children of the currently running operation.
	Start(name string) Timer

	// Report outputs the collected timings to a writer. The styles may be
	// nil for plain output.
	Report(w io.Writer, styles *output.Styles)
}

// Timer tracks a single operation's timing.
type Timer interface {
	// End stops the timer and records the duration.
	End()
}

// WithCollector adds a collector to a context.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext extracts the collector from context. If no collector is
// present, a no-op collector is returned.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}
