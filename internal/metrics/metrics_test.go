package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, UpstreamCallsTotal)
	assert.NotNil(t, FetchErrorsTotal)
	assert.NotNil(t, DailyBudgetHits)
	assert.NotNil(t, CyclesTotal)
	assert.NotNil(t, CycleDuration)
	assert.NotNil(t, ItemsInStock)
	assert.NotNil(t, WatchedInStock)
	assert.NotNil(t, AlertsFiredTotal)
	assert.NotNil(t, NotificationFailuresTotal)
}
