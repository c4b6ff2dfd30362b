// Package notify defines the notification interface and implementations
// for stock alert delivery.
package notify

import (
	"context"
	"errors"
	"time"

	domain "github.com/Harlandx/Grow-a-Garden-Notification-System/pkg/types"
)

// ErrNotConfigured is returned when no webhook is configured; callers
// treat it as "notifications disabled", not a delivery failure.
var ErrNotConfigured = errors.New("webhook not configured")

// ErrRejected is returned when the webhook endpoint refused the message
// with a non-2xx status.
var ErrRejected = errors.New("webhook rejected message")

// StockAlert contains the data needed to announce a watched item coming
// into stock.
type StockAlert struct {
	ItemName         string
	Category         domain.Category
	Quantity         int
	PreviousQuantity int
	SeenAt           time.Time
}

// Notifier defines the interface for sending stock alert notifications.
type Notifier interface {
	SendStockAlert(ctx context.Context, alert *StockAlert) error
	SendBatchStockAlert(ctx context.Context, alerts []StockAlert) error
}
