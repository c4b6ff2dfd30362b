package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	domain "github.com/Harlandx/Grow-a-Garden-Notification-System/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printWatchlistTable(names []string) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("#\tNAME\n")
	for i, name := range names {
		tw.writef("%d\t%s\n", i+1, name)
	}
	return tw.finish()
}

func printItemsTable(snap *domain.Snapshot) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("CATEGORY\tNAME\tQUANTITY\tPRICE\n")
	grouped := snap.ByCategory()
	for _, cat := range domain.Categories() {
		for _, item := range grouped[cat] {
			price := "-"
			if item.Price != nil {
				price = fmt.Sprintf("%.0f", *item.Price)
			}
			tw.writef("%s\t%s\t%d\t%s\n", cat, item.Name, item.Quantity, price)
		}
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
