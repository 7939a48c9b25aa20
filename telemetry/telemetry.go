// Package telemetry carries the processor's observability: hierarchical
// operation timing and a sink for domain events. Both travel through
// context so instrumentation never changes a function signature, and both
// default to no-ops when absent.
//
// Example usage:
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	timer := collector.Start("update transaction")
//	defer timer.End()
//
//	collector.Report(os.Stderr)
package telemetry

import (
	"context"
	"io"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey int

const (
	collectorKey contextKey = iota
	sinkKey
)

// Collector gathers operation timings.
type Collector interface {
	// Start begins timing an operation. End the returned timer when the
	// operation completes.
	Start(name string) Timer

	// Report writes the collected timings.
	Report(w io.Writer)
}

// Timer tracks a single operation, with nesting via Child.
type Timer interface {
	End()
	Child(name string) Timer
}

// Event is a single domain occurrence worth surfacing, such as a currency
// change on a transaction update.
type Event struct {
	Name   string
	Fields []Field
}

// Field is one ordered key/value attribute of an event.
type Field struct {
	Key   string
	Value string
}

// Sink receives domain events. Implementations must not fail; an event is
// observability, never control flow.
type Sink interface {
	Emit(event Event)
}

// WithCollector attaches a collector to a context.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// CollectorFromContext extracts the collector, or a no-op when absent.
func CollectorFromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}

// WithSink attaches an event sink to a context.
func WithSink(ctx context.Context, sink Sink) context.Context {
	return context.WithValue(ctx, sinkKey, sink)
}

// SinkFromContext extracts the event sink, or a no-op when absent.
func SinkFromContext(ctx context.Context) Sink {
	if sink, ok := ctx.Value(sinkKey).(Sink); ok {
		return sink
	}
	return noOpSink{}
}
