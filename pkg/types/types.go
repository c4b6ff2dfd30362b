// Package domain defines the core business types for the Grow A Garden
// stock monitor.
package domain

import (
	"sort"
	"strings"
	"time"
)

// Category represents an in-game shop category.
type Category string

// Category constants, in upstream order.
const (
	CategorySeeds     Category = "seeds"
	CategoryGear      Category = "gear"
	CategoryEggs      Category = "eggs"
	CategoryCosmetics Category = "cosmetics"
	CategoryEventShop Category = "eventshop"
)

// Categories lists all known categories in display order.
func Categories() []Category {
	return []Category{
		CategorySeeds,
		CategoryGear,
		CategoryEggs,
		CategoryCosmetics,
		CategoryEventShop,
	}
}

// Title returns a human-readable category label.
func (c Category) Title() string {
	switch c {
	case CategoryEventShop:
		return "Event Shop"
	default:
		return strings.ToUpper(string(c)[:1]) + string(c)[1:]
	}
}

// Item is one shop entry as reported by the upstream API. Items are
// immutable snapshots; they carry no identity beyond name+category.
type Item struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Quantity int      `json:"quantity"`
	Price    *float64 `json:"price,omitempty"`
}

// InStock reports whether the upstream currently lists any quantity.
func (i *Item) InStock() bool {
	return i.Quantity > 0
}

// Key returns the lowercased name used for case-insensitive matching.
func (i *Item) Key() string {
	return strings.ToLower(i.Name)
}

// Snapshot holds the full item set of one fetch cycle.
type Snapshot struct {
	Items     []Item    `json:"items"`
	FetchedAt time.Time `json:"fetched_at"`
}

// ByCategory groups the snapshot's items by category, each group sorted
// alphabetically by name. Categories with no items are omitted.
func (s *Snapshot) ByCategory() map[Category][]Item {
	grouped := make(map[Category][]Item)
	for _, item := range s.Items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	for c := range grouped {
		sort.Slice(grouped[c], func(i, j int) bool {
			return grouped[c][i].Name < grouped[c][j].Name
		})
	}
	return grouped
}

// Len returns the total item count across all categories.
func (s *Snapshot) Len() int {
	return len(s.Items)
}
