package ports

import (
	"context"

	"govledger/pkg/platform/audit"
)

// AuditPublisher defines the interface for emitting audit events.
// This matches audit publisher.Publisher but is defined here to keep the
// validation service independent of how events are stored.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
