package audit

import (
	"context"
	"log/slog"

	"credito/pkg/requestcontext"
)

// Publisher hands events to the Worker without blocking the request path.
// Events are dropped, and logged, when the inbox is full.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewPublisher(buffer int, logger *slog.Logger) *Publisher {
	return &Publisher{inbox: make(chan Event, buffer), logger: logger}
}

// Inbox is the channel the Worker consumes.
func (p *Publisher) Inbox() <-chan Event {
	return p.inbox
}

// Emit fills request metadata from ctx and enqueues the event.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.ClientIP == "" {
		event.ClientIP = requestcontext.ClientIP(ctx)
	}

	select {
	case p.inbox <- event:
	default:
		p.logger.WarnContext(ctx, "audit inbox full, event dropped",
			"action", event.Action,
			"request_id", event.RequestID,
		)
	}
}
