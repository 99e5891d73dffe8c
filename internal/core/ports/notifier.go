// internal/core/ports/notifier.go
package ports

import (
	"context"

	"github.com/fusioncl/inventoryms/internal/core/domain"
)

// Notifier dispatches low-stock events. Dispatch is fire-and-forget:
// implementations log and drop on failure rather than surface an error,
// so a stock write can never fail because alerting is down.
type Notifier interface {
	NotifyLowStock(ctx context.Context, event domain.LowStockEvent)
}

// Mailer delivers a rendered alert to a recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
