package monitor

import (
	"github.com/Harlandx/Grow-a-Garden-Notification-System/internal/watchlist"
	domain "github.com/Harlandx/Grow-a-Garden-Notification-System/pkg/types"
)

// Match returns the subset of items that are in stock and whose names
// appear on the watchlist (case-insensitive, exact). Input order is
// preserved, so identical inputs always yield identical output. An
// empty watchlist matches nothing.
func Match(items []domain.Item, watch *watchlist.Watchlist) []domain.Item {
	if watch.Empty() {
		return nil
	}

	var matched []domain.Item
	for i := range items {
		if !items[i].InStock() {
			continue
		}
		if watch.Contains(items[i].Name) {
			matched = append(matched, items[i])
		}
	}
	return matched
}
