// Package gag provides a client for the Grow A Garden stock API
// abstracted behind an interface for testability.
package gag

import (
	"context"

	domain "github.com/Harlandx/Grow-a-Garden-Notification-System/pkg/types"
)

// Client defines the interface for fetching the current shop stock.
type Client interface {
	// FetchAll retrieves the full item set across all categories.
	// It performs no retries; failures are classified via FetchError.
	FetchAll(ctx context.Context) (*domain.Snapshot, error)
}
