package remote

import (
	"io"
	"log/slog"
)

// CallEvent records metadata about a single backend call, retries included.
type CallEvent struct {
	Endpoint  string
	Attempts  int
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about backend calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events as structured log lines.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	attrs := []any{
		"endpoint", event.Endpoint,
		"attempts", event.Attempts,
		"latency_ms", event.LatencyMs,
		"success", event.Success,
	}
	if !event.Success {
		o.logger.Warn("remote_call", append(attrs, "error_code", event.ErrorCode)...)
		return
	}
	o.logger.Info("remote_call", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
