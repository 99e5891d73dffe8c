// internal/workers/alert_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/fusioncl/inventoryms/internal/core/ports"
	"github.com/fusioncl/inventoryms/internal/pkg/config"
)

// AlertProcessor delivers low-stock alert emails. Alerts are best-effort:
// a failed delivery is logged and the task is consumed, never retried.
type AlertProcessor struct {
	mailer ports.Mailer
	config *config.Config
	logger *slog.Logger
}

// NewAlertProcessor creates a new alert processor
func NewAlertProcessor(mailer ports.Mailer, config *config.Config, logger *slog.Logger) *AlertProcessor {
	return &AlertProcessor{
		mailer: mailer,
		config: config,
		logger: logger.With(slog.String("processor", "alert")),
	}
}

// SendLowStockAlert handles a notify:low_stock task
func (p *AlertProcessor) SendLowStockAlert(ctx context.Context, t *asynq.Task) error {
	var payload LowStockAlertPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	subject := "Low Stock Alert"
	body := fmt.Sprintf(
		"The product '%s' supplied by '%s' has low stock.\nCurrent quantity: %d.",
		payload.ProductName, payload.SupplierName, payload.Quantity,
	)

	recipient := p.config.Email.AlertRecipient
	if err := p.mailer.Send(ctx, recipient, subject, body); err != nil {
		p.logger.ErrorContext(ctx, "failed to deliver low-stock alert",
			slog.String("product", payload.ProductName),
			slog.String("to", recipient),
			slog.String("error", err.Error()))
		return nil
	}

	p.logger.InfoContext(ctx, "low-stock alert delivered",
		slog.String("product", payload.ProductName),
		slog.Int("quantity", payload.Quantity))

	return nil
}
