package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded alerts. It is
// used when no Discord webhook is configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards alerts with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendStockAlert logs and discards a single alert.
func (n *NoOpNotifier) SendStockAlert(_ context.Context, alert *StockAlert) error {
	n.log.Debug("stock alert discarded (no webhook configured)",
		"item", alert.ItemName,
		"category", alert.Category,
		"quantity", alert.Quantity,
	)
	return nil
}

// SendBatchStockAlert logs and discards a batch of alerts.
func (n *NoOpNotifier) SendBatchStockAlert(_ context.Context, alerts []StockAlert) error {
	n.log.Debug("batch stock alert discarded (no webhook configured)",
		"count", len(alerts),
	)
	return nil
}
