package service

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// OperationEvent captures lightweight telemetry for a state-changing service
// operation: stock adjustments, work order transitions, service recordings.
type OperationEvent struct {
	Name      string
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// OperationObserver receives service operation events.
type OperationObserver interface {
	ObserveOperation(ctx context.Context, event OperationEvent)
}

// NoopOperationObserver ignores all events.
type NoopOperationObserver struct{}

func (NoopOperationObserver) ObserveOperation(context.Context, OperationEvent) {}

type logOperationObserver struct {
	logger *slog.Logger
}

// NewLogOperationObserver writes service operation events to the provided writer.
func NewLogOperationObserver(w io.Writer) OperationObserver {
	if w == nil {
		return NoopOperationObserver{}
	}
	return &logOperationObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logOperationObserver) ObserveOperation(ctx context.Context, event OperationEvent) {
	attrs := make([]any, 0, 6+len(event.Fields)*2)
	attrs = append(attrs,
		"operation", event.Name,
		"success", event.Success,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "service_operation", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "service_operation", attrs...)
}

func operationObserverOrNoop(observers []OperationObserver) OperationObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopOperationObserver{}
}
