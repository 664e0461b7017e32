// Package telemetry provides append-only sinks for autofix decisions. The
// log is write-only from the engine's perspective; it exists for offline
// tuning and auditing.
package telemetry

import "github.com/prosegate/prosegate/internal/safety"

// Discard is a sink that drops every entry.
type Discard struct{}

func (Discard) Record(safety.TelemetryEntry) {}

// Multi fans an entry out to several sinks.
type Multi []safety.TelemetrySink

func (m Multi) Record(entry safety.TelemetryEntry) {
	for _, sink := range m {
		if sink != nil {
			sink.Record(entry)
		}
	}
}
