// Package watchlist loads the flat-file list of item names to monitor.
//
// The file format is one item name per line. Blank lines, leading and
// trailing whitespace, and lines starting with '#' are ignored. Matching
// against item names is case-insensitive. A missing file is a valid
// empty watchlist, not an error.
package watchlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// DefaultPath is the watchlist file looked up next to the binary.
const DefaultPath = "watchlist.txt"

// Watchlist is a set of watched item names.
type Watchlist struct {
	names []string // original casing, file order, de-duplicated
	set   map[string]struct{}
}

// Load reads the watchlist from path. A missing file yields an empty
// watchlist and nil error. Any other read failure yields an empty
// watchlist and the error, so callers can log and continue.
func Load(path string) (*Watchlist, error) {
	f, err := os.Open(path) //nolint:gosec // path from trusted config
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(nil), nil
		}
		return New(nil), fmt.Errorf("reading watchlist %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads watchlist entries from r.
func Parse(r io.Reader) (*Watchlist, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return New(nil), fmt.Errorf("scanning watchlist: %w", err)
	}
	return New(names), nil
}

// New builds a watchlist from explicit names. Duplicate names (ignoring
// case) keep the first occurrence.
func New(names []string) *Watchlist {
	w := &Watchlist{set: make(map[string]struct{}, len(names))}
	for _, n := range names {
		key := strings.ToLower(n)
		if _, ok := w.set[key]; ok {
			continue
		}
		w.set[key] = struct{}{}
		w.names = append(w.names, n)
	}
	return w
}

// Contains reports whether name is watched, ignoring case. A nil
// watchlist contains nothing.
func (w *Watchlist) Contains(name string) bool {
	if w == nil {
		return false
	}
	_, ok := w.set[strings.ToLower(name)]
	return ok
}

// Names returns the watched names in file order, original casing.
func (w *Watchlist) Names() []string {
	if w == nil {
		return nil
	}
	return w.names
}

// Len returns the number of watched names.
func (w *Watchlist) Len() int {
	if w == nil {
		return 0
	}
	return len(w.names)
}

// Empty reports whether nothing is watched. A nil watchlist is empty.
func (w *Watchlist) Empty() bool {
	return w == nil || len(w.names) == 0
}
