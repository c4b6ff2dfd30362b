package gag

import (
	"encoding/json"
	"log/slog"

	domain "github.com/Harlandx/Grow-a-Garden-Notification-System/pkg/types"
)

// toItems converts the raw upstream payload into domain items, keeping
// upstream category order. Entries that fail to decode or carry no name
// are dropped with a debug log rather than failing the fetch.
func toItems(resp allDataResponse, log *slog.Logger) []domain.Item {
	var items []domain.Item
	for _, category := range domain.Categories() {
		raws, ok := resp[string(category)]
		if !ok {
			continue
		}
		for _, raw := range raws {
			var entry stockEntry
			if err := json.Unmarshal(raw, &entry); err != nil {
				log.Debug("skipping malformed stock entry",
					"category", category,
					"error", err,
				)
				continue
			}
			if entry.Name == "" {
				log.Debug("skipping nameless stock entry", "category", category)
				continue
			}
			if entry.Quantity < 0 {
				entry.Quantity = 0
			}
			items = append(items, domain.Item{
				Name:     entry.Name,
				Category: category,
				Quantity: entry.Quantity,
				Price:    entry.Price,
			})
		}
	}
	return items
}
