// internal/adapters/queue/notifier.go
package queue

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/fusioncl/inventoryms/internal/core/domain"
	"github.com/fusioncl/inventoryms/internal/core/ports"
	"github.com/fusioncl/inventoryms/internal/workers"
)

// Enqueuer is the subset of asynq.Client used by the notifier
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqNotifier dispatches low-stock alerts onto the task queue. Delivery
// is fire-and-forget: enqueue failures are logged and dropped so the
// calling stock write never blocks on a full or unreachable broker.
type AsynqNotifier struct {
	client  Enqueuer
	timeout time.Duration
	logger  *slog.Logger
}

var _ ports.Notifier = (*AsynqNotifier)(nil)

// NewAsynqNotifier creates a notifier backed by an asynq client
func NewAsynqNotifier(client Enqueuer, timeout time.Duration, logger *slog.Logger) *AsynqNotifier {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &AsynqNotifier{
		client:  client,
		timeout: timeout,
		logger:  logger.With(slog.String("component", "notifier")),
	}
}

// NotifyLowStock enqueues a low-stock alert task
func (n *AsynqNotifier) NotifyLowStock(ctx context.Context, event domain.LowStockEvent) {
	payload := workers.LowStockAlertPayload{
		ProductName:  event.ProductName,
		SupplierName: event.SupplierName,
		Quantity:     event.Quantity,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		n.logger.ErrorContext(ctx, "failed to marshal low-stock alert",
			slog.String("product", event.ProductName),
			slog.String("error", err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	task := asynq.NewTask(workers.TypeLowStockAlert, b)
	info, err := n.client.EnqueueContext(ctx, task,
		asynq.Queue("low"),
		asynq.MaxRetry(0),
	)
	if err != nil {
		n.logger.ErrorContext(ctx, "dropping low-stock alert, enqueue failed",
			slog.String("product", event.ProductName),
			slog.String("supplier", event.SupplierName),
			slog.Int("quantity", event.Quantity),
			slog.String("error", err.Error()))
		return
	}

	n.logger.DebugContext(ctx, "low-stock alert queued",
		slog.String("product", event.ProductName),
		slog.String("task_id", info.ID))
}
