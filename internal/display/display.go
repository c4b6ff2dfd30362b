// Package display renders stock snapshots to the terminal.
package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Harlandx/Grow-a-Garden-Notification-System/internal/watchlist"
	domain "github.com/Harlandx/Grow-a-Garden-Notification-System/pkg/types"
)

const (
	headerWidth  = 60
	dividerWidth = 40
)

// Renderer writes formatted stock listings to a writer (stdout in
// production). Rendering never fails; an empty snapshot produces an
// empty-state message.
type Renderer struct {
	w       io.Writer
	styles  Styles
	nowFunc func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithNoColor disables all styling, for dumb terminals and tests.
func WithNoColor() Option {
	return func(r *Renderer) {
		r.styles = plainStyles()
	}
}

// WithNowFunc overrides the clock used for the header timestamp.
func WithNowFunc(f func() time.Time) Option {
	return func(r *Renderer) {
		r.nowFunc = f
	}
}

// NewRenderer creates a Renderer writing to w.
func NewRenderer(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		w:       w,
		styles:  defaultStyles(),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes the snapshot grouped by category, alphabetical within
// each group, with watch indicators for watched items.
func (r *Renderer) Render(snap *domain.Snapshot, watch *watchlist.Watchlist) {
	var b strings.Builder

	rule := strings.Repeat("=", headerWidth)
	b.WriteString(rule + "\n")
	b.WriteString(r.styles.Title.Render("GROW A GARDEN - ITEM STOCK") + "\n")
	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("Last updated: %s\n", r.nowFunc().Format("2006-01-02 15:04:05")))

	if !watch.Empty() {
		b.WriteString(fmt.Sprintf("Watching: %s\n", strings.Join(watch.Names(), ", ")))
	}

	if snap == nil || snap.Len() == 0 {
		b.WriteString("\n" + r.styles.Muted.Render("No items reported by the shop right now.") + "\n")
		fmt.Fprint(r.w, b.String())
		return
	}

	grouped := snap.ByCategory()
	var watchedFound []string

	for _, category := range domain.Categories() {
		items, ok := grouped[category]
		if !ok {
			continue
		}

		header := fmt.Sprintf("%s (%d items)", strings.ToUpper(string(category)), len(items))
		b.WriteString("\n" + r.styles.Header.Render(header) + "\n")
		b.WriteString(strings.Repeat("-", dividerWidth) + "\n")

		for i := range items {
			b.WriteString(r.renderItem(&items[i], watch, &watchedFound))
		}
	}

	b.WriteString("\n" + rule + "\n")
	b.WriteString(fmt.Sprintf("Total items: %d\n", snap.Len()))
	if len(watchedFound) > 0 {
		b.WriteString(r.styles.Success.Render(
			fmt.Sprintf("Watched items in stock: %s", strings.Join(watchedFound, ", ")),
		) + "\n")
	} else if !watch.Empty() {
		b.WriteString(r.styles.Muted.Render("No watched items currently in stock.") + "\n")
	}
	b.WriteString(rule + "\n")

	fmt.Fprint(r.w, b.String())
}

func (r *Renderer) renderItem(
	item *domain.Item,
	watch *watchlist.Watchlist,
	watchedFound *[]string,
) string {
	var b strings.Builder

	watched := watch.Contains(item.Name)
	indicator := "  "
	if watched {
		indicator = "* "
	}

	line := fmt.Sprintf("%s%s: %d", indicator, item.Name, item.Quantity)
	if item.Price != nil {
		line += fmt.Sprintf(" (%.0f)", *item.Price)
	}
	if watched {
		line = r.styles.Bold.Render(line)
	}
	b.WriteString(line + "\n")

	if watched {
		if item.InStock() {
			b.WriteString("    " + r.styles.Success.Render("IN STOCK!") + "\n")
			*watchedFound = append(*watchedFound,
				fmt.Sprintf("%s (%s)", item.Name, item.Category))
		} else {
			b.WriteString("    " + r.styles.Error.Render("OUT OF STOCK") + "\n")
		}
	}

	return b.String()
}
