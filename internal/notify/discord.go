package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// colorInStock matches the green the original monitor used for alerts.
const colorInStock = 0x00FF00

const defaultFooter = "GAG Items Monitor"

// Discord allows max 10 embeds per message.
const maxEmbedsPerMessage = 10

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	footer     string
	client     *http.Client
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// WithFooter overrides the embed footer text.
func WithFooter(text string) DiscordOption {
	return func(d *DiscordNotifier) {
		d.footer = text
	}
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		footer:     defaultFooter,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Color       int                 `json:"color"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
	Footer      *discordFooter      `json:"footer,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordFooter struct {
	Text string `json:"text"`
}

// SendStockAlert sends a single alert as a Discord embed.
func (d *DiscordNotifier) SendStockAlert(ctx context.Context, alert *StockAlert) error {
	payload := discordWebhookPayload{
		Embeds: []discordEmbed{d.buildEmbed(alert)},
	}
	return d.post(ctx, payload)
}

// SendBatchStockAlert sends multiple alerts as a single Discord message.
func (d *DiscordNotifier) SendBatchStockAlert(ctx context.Context, alerts []StockAlert) error {
	embeds := make([]discordEmbed, 0, len(alerts))

	limit := min(len(alerts), maxEmbedsPerMessage)
	for i := range limit {
		embeds = append(embeds, d.buildEmbed(&alerts[i]))
	}

	if len(alerts) > maxEmbedsPerMessage {
		embeds = embeds[:maxEmbedsPerMessage-1]
		embeds = append(embeds, discordEmbed{
			Title: fmt.Sprintf(
				"... and %d more watched items in stock",
				len(alerts)-(maxEmbedsPerMessage-1),
			),
			Color:  colorInStock,
			Footer: &discordFooter{Text: d.footer},
		})
	}

	payload := discordWebhookPayload{Embeds: embeds}
	return d.post(ctx, payload)
}

func (d *DiscordNotifier) buildEmbed(alert *StockAlert) discordEmbed {
	embed := discordEmbed{
		Title:       "Item Stock Alert!",
		Description: fmt.Sprintf("**%s** is now in stock!", alert.ItemName),
		Color:       colorInStock,
		Fields: []discordEmbedField{
			{Name: "Category", Value: fmt.Sprintf("**%s**", alert.Category.Title()), Inline: true},
			{Name: "Current Stock", Value: fmt.Sprintf("**%d** available", alert.Quantity), Inline: true},
			{Name: "Previous Stock", Value: fmt.Sprintf("**%d** available", alert.PreviousQuantity), Inline: true},
		},
		Footer: &discordFooter{Text: d.footer},
	}

	if !alert.SeenAt.IsZero() {
		embed.Timestamp = alert.SeenAt.UTC().Format(time.RFC3339)
	}

	return embed
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	if d.webhookURL == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: rate limited (429)", ErrRejected)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("%w: status %d (body unreadable)", ErrRejected, resp.StatusCode)
		}
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, respBody)
	}

	return nil
}
