package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events and persists them.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run persists events until ctx is done, then drains what is already queued.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return nil
		case event := <-w.inbox:
			w.persist(ctx, event)
		}
	}
}

func (w *Worker) drain() {
	for {
		select {
		case event := <-w.inbox:
			w.persist(context.Background(), event)
		default:
			return
		}
	}
}

func (w *Worker) persist(ctx context.Context, event Event) {
	if err := w.store.Append(ctx, event); err != nil {
		w.logger.ErrorContext(ctx, "failed to persist audit event",
			"action", event.Action,
			"error", err,
		)
		return
	}
	w.logger.InfoContext(ctx, "audit",
		"category", event.Category,
		"action", event.Action,
		"decision", event.Decision,
		"reason", event.Reason,
		"count", event.Count,
		"request_id", event.RequestID,
	)
}
