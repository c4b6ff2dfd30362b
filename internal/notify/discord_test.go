package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/Harlandx/Grow-a-Garden-Notification-System/pkg/types"
)

// compile-time interface checks.
var (
	_ Notifier = (*DiscordNotifier)(nil)
	_ Notifier = (*NoOpNotifier)(nil)
)

func testStockAlert(name string) StockAlert {
	return StockAlert{
		ItemName:         name,
		Category:         domain.CategorySeeds,
		Quantity:         5,
		PreviousQuantity: 0,
		SeenAt:           time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestDiscordNotifier_SendStockAlert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		wantErr    bool
		errIs      error
	}{
		{
			name:       "valid alert sends embed",
			statusCode: http.StatusNoContent,
		},
		{
			name:       "discord returns 429 rejected",
			statusCode: http.StatusTooManyRequests,
			wantErr:    true,
			errIs:      ErrRejected,
		},
		{
			name:       "discord returns 400 rejected",
			statusCode: http.StatusBadRequest,
			wantErr:    true,
			errIs:      ErrRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var received discordWebhookPayload

			srv := httptest.NewServer(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
					assert.Equal(t, http.MethodPost, r.Method)

					err := json.NewDecoder(r.Body).Decode(&received)
					assert.NoError(t, err)

					w.WriteHeader(tt.statusCode)
				}),
			)
			defer srv.Close()

			alert := testStockAlert("Carrot")
			d := NewDiscordNotifier(srv.URL)
			err := d.SendStockAlert(context.Background(), &alert)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.errIs)
				return
			}

			require.NoError(t, err)
			require.Len(t, received.Embeds, 1)

			embed := received.Embeds[0]
			assert.Equal(t, colorInStock, embed.Color)
			assert.Contains(t, embed.Description, "Carrot")
			assert.Equal(t, "2025-06-01T12:00:00Z", embed.Timestamp)
			require.NotNil(t, embed.Footer)
			assert.Equal(t, defaultFooter, embed.Footer.Text)

			fieldMap := make(map[string]string)
			for _, f := range embed.Fields {
				fieldMap[f.Name] = f.Value
			}
			assert.Equal(t, "**Seeds**", fieldMap["Category"])
			assert.Equal(t, "**5** available", fieldMap["Current Stock"])
			assert.Equal(t, "**0** available", fieldMap["Previous Stock"])
		})
	}
}

func TestDiscordNotifier_SendBatchStockAlert(t *testing.T) {
	t.Parallel()

	var received discordWebhookPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := json.NewDecoder(r.Body).Decode(&received)
		assert.NoError(t, err)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	alerts := []StockAlert{
		testStockAlert("Carrot"),
		testStockAlert("Bamboo"),
		testStockAlert("Mango"),
	}

	d := NewDiscordNotifier(srv.URL)
	err := d.SendBatchStockAlert(context.Background(), alerts)
	require.NoError(t, err)

	assert.Len(t, received.Embeds, 3)
}

func TestDiscordNotifier_SendBatchStockAlert_OverflowSummarized(t *testing.T) {
	t.Parallel()

	var received discordWebhookPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := json.NewDecoder(r.Body).Decode(&received)
		assert.NoError(t, err)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	alerts := make([]StockAlert, 14)
	for i := range alerts {
		alerts[i] = testStockAlert("Item")
	}

	d := NewDiscordNotifier(srv.URL)
	err := d.SendBatchStockAlert(context.Background(), alerts)
	require.NoError(t, err)

	// 9 item embeds plus one overflow summary.
	require.Len(t, received.Embeds, maxEmbedsPerMessage)
	assert.Contains(t, received.Embeds[maxEmbedsPerMessage-1].Title, "5 more watched items")
}

func TestDiscordNotifier_WithFooter(t *testing.T) {
	t.Parallel()

	var received discordWebhookPayload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := json.NewDecoder(r.Body).Decode(&received)
		assert.NoError(t, err)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	alert := testStockAlert("Carrot")
	d := NewDiscordNotifier(srv.URL, WithFooter("GAG Items Monitor · abc123"))
	require.NoError(t, d.SendStockAlert(context.Background(), &alert))

	require.Len(t, received.Embeds, 1)
	require.NotNil(t, received.Embeds[0].Footer)
	assert.Equal(t, "GAG Items Monitor · abc123", received.Embeds[0].Footer.Text)
}

func TestDiscordNotifier_NetworkError(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("http://127.0.0.1:1") // nothing listening
	alert := testStockAlert("Carrot")
	err := d.SendStockAlert(context.Background(), &alert)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending discord webhook")
	assert.NotErrorIs(t, err, ErrRejected)
}

func TestDiscordNotifier_EmptyURLNotConfigured(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("")
	alert := testStockAlert("Carrot")
	err := d.SendStockAlert(context.Background(), &alert)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	d := NewDiscordNotifier("https://example.com", WithHTTPClient(custom))
	assert.Same(t, custom, d.client)
}
