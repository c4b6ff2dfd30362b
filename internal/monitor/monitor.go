// Package monitor implements the polling loop that drives fetch,
// display, watchlist matching, and notification dispatch.
package monitor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Harlandx/Grow-a-Garden-Notification-System/internal/display"
	"github.com/Harlandx/Grow-a-Garden-Notification-System/internal/gag"
	"github.com/Harlandx/Grow-a-Garden-Notification-System/internal/metrics"
	"github.com/Harlandx/Grow-a-Garden-Notification-System/internal/notify"
	"github.com/Harlandx/Grow-a-Garden-Notification-System/internal/watchlist"
	domain "github.com/Harlandx/Grow-a-Garden-Notification-System/pkg/types"
)

const (
	defaultInterval       = 60 * time.Second
	defaultMaxBackoff     = 4
	defaultBatchThreshold = 5
)

// Monitor owns the polling cycle state: the set of already-notified
// items, the previous quantities of watched items, and the consecutive
// failure counter driving backoff. It is single-threaded; nothing here
// is safe for concurrent use.
type Monitor struct {
	client   gag.Client
	notifier notify.Notifier
	renderer *display.Renderer
	log      *slog.Logger

	watchlistPath  string
	interval       time.Duration
	maxBackoff     int
	batchThreshold int
	sessionID      string

	notified       map[string]struct{}
	lastQuantities map[string]int
	failures       int
}

// Option configures the Monitor.
type Option func(*Monitor)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Monitor) {
		m.log = l
	}
}

// WithInterval sets the base polling interval.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		m.interval = d
	}
}

// WithMaxBackoffFactor caps the exponential backoff multiplier applied
// to the base interval after consecutive fetch failures.
func WithMaxBackoffFactor(n int) Option {
	return func(m *Monitor) {
		m.maxBackoff = n
	}
}

// WithBatchThreshold sets how many newly in-stock items in one cycle
// are sent as a single batch message instead of individual alerts.
func WithBatchThreshold(n int) Option {
	return func(m *Monitor) {
		m.batchThreshold = n
	}
}

// WithWatchlistPath sets the watchlist file, re-read every cycle.
func WithWatchlistPath(path string) Option {
	return func(m *Monitor) {
		m.watchlistPath = path
	}
}

// WithSessionID overrides the generated session identifier.
func WithSessionID(id string) Option {
	return func(m *Monitor) {
		m.sessionID = id
	}
}

// New creates a Monitor with injected collaborators.
func New(
	client gag.Client,
	notifier notify.Notifier,
	renderer *display.Renderer,
	opts ...Option,
) *Monitor {
	m := &Monitor{
		client:         client,
		notifier:       notifier,
		renderer:       renderer,
		log:            slog.Default(),
		watchlistPath:  watchlist.DefaultPath,
		interval:       defaultInterval,
		maxBackoff:     defaultMaxBackoff,
		batchThreshold: defaultBatchThreshold,
		sessionID:      uuid.NewString(),
		notified:       make(map[string]struct{}),
		lastQuantities: make(map[string]int),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SessionID returns the identifier tagged on logs and alert footers.
func (m *Monitor) SessionID() string {
	return m.sessionID
}

// Run polls until ctx is canceled. Fetch and notification failures are
// recovered within the cycle; cancellation is the only way out and
// returns nil.
func (m *Monitor) Run(ctx context.Context) error {
	m.log.Info("monitor starting",
		"session", m.sessionID,
		"interval", m.interval,
		"watchlist", m.watchlistPath,
	)

	for {
		if ctx.Err() != nil {
			m.log.Info("monitor stopped", "session", m.sessionID)
			return nil
		}

		if err := m.RunCycle(ctx); err != nil && ctx.Err() != nil {
			m.log.Info("monitor stopped", "session", m.sessionID)
			return nil
		}

		sleep := m.SleepInterval()
		select {
		case <-ctx.Done():
			m.log.Info("monitor stopped", "session", m.sessionID)
			return nil
		case <-time.After(sleep):
		}
	}
}

// RunCycle performs one fetch-display-match-notify iteration. A fetch
// failure increments the backoff counter and skips processing; any
// other failure is absorbed within the cycle.
func (m *Monitor) RunCycle(ctx context.Context) error {
	start := time.Now()
	defer func() {
		metrics.CycleDuration.Observe(time.Since(start).Seconds())
	}()

	snap, err := m.client.FetchAll(ctx)
	if err != nil {
		m.failures++
		metrics.FetchErrorsTotal.WithLabelValues(string(gag.KindOf(err))).Inc()
		m.log.Error("fetch failed",
			"kind", gag.KindOf(err),
			"consecutive_failures", m.failures,
			"next_interval", m.SleepInterval(),
			"error", err,
		)
		return err
	}
	m.failures = 0
	metrics.CyclesTotal.Inc()

	watch, werr := watchlist.Load(m.watchlistPath)
	if werr != nil {
		m.log.Warn("watchlist unreadable, treating as empty", "error", werr)
	}

	m.renderer.Render(snap, watch)
	m.syncStockGauges(snap, watch)

	matched := Match(snap.Items, watch)
	m.dispatch(ctx, snap, matched)
	m.clearLeftStock(snap)
	m.recordQuantities(snap, watch)

	return nil
}

// SleepInterval returns the base interval scaled by the capped
// exponential backoff factor. A successful fetch resets it to base.
func (m *Monitor) SleepInterval() time.Duration {
	return m.interval * time.Duration(m.backoffFactor())
}

func (m *Monitor) backoffFactor() int {
	if m.failures <= 1 {
		return 1
	}
	factor := 1 << (m.failures - 1)
	if factor > m.maxBackoff {
		return m.maxBackoff
	}
	return factor
}

// dispatch sends alerts for matched items not yet notified this stock
// period. Names are recorded only after a successful send, so failed
// deliveries retry next cycle. Delivery failures never abort the cycle.
func (m *Monitor) dispatch(ctx context.Context, snap *domain.Snapshot, matched []domain.Item) {
	var fresh []notify.StockAlert
	var freshKeys []string

	for i := range matched {
		key := matched[i].Key()
		if _, ok := m.notified[key]; ok {
			continue
		}
		fresh = append(fresh, notify.StockAlert{
			ItemName:         matched[i].Name,
			Category:         matched[i].Category,
			Quantity:         matched[i].Quantity,
			PreviousQuantity: m.lastQuantities[key],
			SeenAt:           snap.FetchedAt,
		})
		freshKeys = append(freshKeys, key)
	}

	if len(fresh) == 0 {
		return
	}

	if len(fresh) >= m.batchThreshold {
		if err := m.notifier.SendBatchStockAlert(ctx, fresh); err != nil {
			metrics.NotificationFailuresTotal.Inc()
			m.log.Error("batch alert failed", "count", len(fresh), "error", err)
			return
		}
		metrics.AlertsFiredTotal.Add(float64(len(fresh)))
		for _, key := range freshKeys {
			m.notified[key] = struct{}{}
		}
		m.log.Info("batch alert sent", "count", len(fresh))
		return
	}

	for i := range fresh {
		if err := m.notifier.SendStockAlert(ctx, &fresh[i]); err != nil {
			metrics.NotificationFailuresTotal.Inc()
			if errors.Is(err, notify.ErrNotConfigured) {
				m.log.Warn("alert skipped, webhook not configured", "item", fresh[i].ItemName)
				continue
			}
			m.log.Error("alert failed", "item", fresh[i].ItemName, "error", err)
			continue
		}
		metrics.AlertsFiredTotal.Inc()
		m.notified[freshKeys[i]] = struct{}{}
		m.log.Info("alert sent",
			"item", fresh[i].ItemName,
			"category", fresh[i].Category,
			"quantity", fresh[i].Quantity,
		)
	}
}

// clearLeftStock drops notified entries for items no longer in stock,
// so the next restock triggers a fresh alert (edge-triggered).
func (m *Monitor) clearLeftStock(snap *domain.Snapshot) {
	inStock := make(map[string]struct{})
	for i := range snap.Items {
		if snap.Items[i].InStock() {
			inStock[snap.Items[i].Key()] = struct{}{}
		}
	}
	for key := range m.notified {
		if _, ok := inStock[key]; !ok {
			delete(m.notified, key)
		}
	}
}

// recordQuantities remembers the current quantity of every watched item
// so the next alert can report the previous stock level. Watched items
// absent from the snapshot count as zero.
func (m *Monitor) recordQuantities(snap *domain.Snapshot, watch *watchlist.Watchlist) {
	seen := make(map[string]int)
	for i := range snap.Items {
		if watch.Contains(snap.Items[i].Name) {
			seen[snap.Items[i].Key()] = snap.Items[i].Quantity
		}
	}
	m.lastQuantities = seen
}

func (m *Monitor) syncStockGauges(snap *domain.Snapshot, watch *watchlist.Watchlist) {
	counts := make(map[domain.Category]int)
	watchedInStock := 0
	for i := range snap.Items {
		if !snap.Items[i].InStock() {
			continue
		}
		counts[snap.Items[i].Category]++
		if watch.Contains(snap.Items[i].Name) {
			watchedInStock++
		}
	}
	for _, c := range domain.Categories() {
		metrics.ItemsInStock.WithLabelValues(string(c)).Set(float64(counts[c]))
	}
	metrics.WatchedInStock.Set(float64(watchedInStock))
}
