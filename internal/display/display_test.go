package display_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harlandx/Grow-a-Garden-Notification-System/internal/display"
	"github.com/Harlandx/Grow-a-Garden-Notification-System/internal/watchlist"
	domain "github.com/Harlandx/Grow-a-Garden-Notification-System/pkg/types"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newTestRenderer(buf *bytes.Buffer) *display.Renderer {
	return display.NewRenderer(buf,
		display.WithNoColor(),
		display.WithNowFunc(fixedNow),
	)
}

func snapshot(items ...domain.Item) *domain.Snapshot {
	return &domain.Snapshot{Items: items, FetchedAt: fixedNow()}
}

func TestRender_GroupsByCategory(t *testing.T) {
	t.Parallel()

	snap := snapshot(
		domain.Item{Name: "Trowel", Category: domain.CategoryGear, Quantity: 0},
		domain.Item{Name: "Carrot", Category: domain.CategorySeeds, Quantity: 5},
		domain.Item{Name: "Bamboo", Category: domain.CategorySeeds, Quantity: 2},
	)

	var buf bytes.Buffer
	newTestRenderer(&buf).Render(snap, watchlist.New(nil))
	out := buf.String()

	// One group header per category present, none for absent categories.
	assert.Contains(t, out, "SEEDS (2 items)")
	assert.Contains(t, out, "GEAR (1 items)")
	assert.NotContains(t, out, "EGGS")
	assert.NotContains(t, out, "COSMETICS")

	// Item count preserved.
	assert.Contains(t, out, "Total items: 3")

	// Alphabetical within category.
	bambooIdx := strings.Index(out, "Bamboo")
	carrotIdx := strings.Index(out, "Carrot")
	require.GreaterOrEqual(t, bambooIdx, 0)
	require.GreaterOrEqual(t, carrotIdx, 0)
	assert.Less(t, bambooIdx, carrotIdx)
}

func TestRender_EmptySnapshot(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newTestRenderer(&buf).Render(snapshot(), watchlist.New(nil))

	assert.Contains(t, buf.String(), "No items reported")
}

func TestRender_NilSnapshot(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newTestRenderer(&buf).Render(nil, watchlist.New(nil))

	assert.Contains(t, buf.String(), "No items reported")
}

func TestRender_NilWatchlist(t *testing.T) {
	t.Parallel()

	snap := snapshot(
		domain.Item{Name: "Carrot", Category: domain.CategorySeeds, Quantity: 5},
	)

	var buf bytes.Buffer
	newTestRenderer(&buf).Render(snap, nil)
	out := buf.String()

	assert.Contains(t, out, "Carrot: 5")
	assert.NotContains(t, out, "Watching:")
}

func TestRender_WatchedIndicators(t *testing.T) {
	t.Parallel()

	snap := snapshot(
		domain.Item{Name: "Carrot", Category: domain.CategorySeeds, Quantity: 5},
		domain.Item{Name: "Trowel", Category: domain.CategoryGear, Quantity: 0},
	)
	watch := watchlist.New([]string{"carrot", "trowel"})

	var buf bytes.Buffer
	newTestRenderer(&buf).Render(snap, watch)
	out := buf.String()

	assert.Contains(t, out, "* Carrot: 5")
	assert.Contains(t, out, "IN STOCK!")
	assert.Contains(t, out, "* Trowel: 0")
	assert.Contains(t, out, "OUT OF STOCK")
	assert.Contains(t, out, "Watched items in stock: Carrot (seeds)")
}

func TestRender_WatchlistShownInHeader(t *testing.T) {
	t.Parallel()

	snap := snapshot(
		domain.Item{Name: "Mango", Category: domain.CategorySeeds, Quantity: 0},
	)
	watch := watchlist.New([]string{"Carrot", "Bamboo"})

	var buf bytes.Buffer
	newTestRenderer(&buf).Render(snap, watch)
	out := buf.String()

	assert.Contains(t, out, "Watching: Carrot, Bamboo")
	assert.Contains(t, out, "No watched items currently in stock.")
}

func TestRender_PriceShownWhenPresent(t *testing.T) {
	t.Parallel()

	price := 1200.0
	snap := snapshot(
		domain.Item{Name: "Beanstalk", Category: domain.CategorySeeds, Quantity: 1, Price: &price},
	)

	var buf bytes.Buffer
	newTestRenderer(&buf).Render(snap, watchlist.New(nil))

	assert.Contains(t, buf.String(), "Beanstalk: 1 (1200)")
}
