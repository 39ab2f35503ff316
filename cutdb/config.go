package cutdb

import (
	"github.com/rs/zerolog"

	"github.com/onflow/cutdb/model/braid"
)

// DefaultBufferSize is the ingestion queue capacity used when the config does
// not set one. The queue's bounded capacity is the system's only flow-control
// mechanism: producers block while it is full.
const DefaultBufferSize = 10

// Config is the immutable configuration snapshot of a cut store. It is
// consumed once when the store is created.
type Config struct {
	// InitialCut is the frontier the store starts from. Required unless
	// InitialCutFile is set.
	InitialCut *braid.Cut

	// InitialCutFile optionally points at a JSON-persisted cut, loaded when
	// InitialCut is nil. InitialCut takes precedence when both are set.
	InitialCutFile string

	// BufferSize is the ingestion queue capacity. Zero means
	// DefaultBufferSize.
	BufferSize uint

	// LogLevel is the store's logging verbosity.
	LogLevel zerolog.Level

	// TelemetryLevel is the verbosity of operational telemetry. At
	// zerolog.Disabled the store does not report metrics.
	TelemetryLevel zerolog.Level
}

// DefaultConfig returns the configuration defaults. The initial cut must
// still be provided by the caller.
func DefaultConfig() Config {
	return Config{
		BufferSize:     DefaultBufferSize,
		LogLevel:       zerolog.WarnLevel,
		TelemetryLevel: zerolog.WarnLevel,
	}
}
