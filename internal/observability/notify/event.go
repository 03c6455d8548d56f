package notify

import (
	"context"
	"time"
)

// Severity constants recognised by downstream sinks.
const (
	SeverityCritical = "critical"
)

// AuthOutagePayload captures the canonical data emitted when the identity
// provider is unreachable. Credential material never appears here.
type AuthOutagePayload struct {
	Operation  string
	Error      string
	Severity   string
	OccurredAt time.Time
}

// Sink describes a destination capable of consuming auth outage notifications.
type Sink interface {
	SendAuthOutage(ctx context.Context, payload AuthOutagePayload) error
}

// SinkFunc adapts a function to the Sink interface (useful for tests).
type SinkFunc func(ctx context.Context, payload AuthOutagePayload) error

// SendAuthOutage implements the Sink interface.
func (f SinkFunc) SendAuthOutage(ctx context.Context, payload AuthOutagePayload) error {
	if f == nil {
		return nil
	}
	return f(ctx, payload)
}
