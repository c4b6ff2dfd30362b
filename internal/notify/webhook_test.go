package notify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWebhookFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "discord_webhook.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadWebhook(t *testing.T) {
	t.Parallel()

	const valid = "https://discord.com/api/webhooks/123/abcDEF"

	tests := []struct {
		name    string
		content string
		want    string
		wantErr error
	}{
		{
			name:    "valid webhook",
			content: valid + "\n",
			want:    valid,
		},
		{
			name:    "comments and blanks skipped",
			content: "# paste your webhook below\n\n" + valid + "\n",
			want:    valid,
		},
		{
			name:    "first valid line wins",
			content: valid + "\nhttps://discord.com/api/webhooks/456/other\n",
			want:    valid,
		},
		{
			name:    "placeholder content not configured",
			content: "PASTE_YOUR_WEBHOOK_HERE\n",
			wantErr: ErrNotConfigured,
		},
		{
			name:    "non-discord URL not configured",
			content: "https://example.com/hook\n",
			wantErr: ErrNotConfigured,
		},
		{
			name:    "webhook missing token not configured",
			content: "https://discord.com/api/webhooks/123\n",
			wantErr: ErrNotConfigured,
		},
		{
			name:    "webhook missing id not configured",
			content: "https://discord.com/api/webhooks//abcDEF\n",
			wantErr: ErrNotConfigured,
		},
		{
			name:    "empty file not configured",
			content: "",
			wantErr: ErrNotConfigured,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeWebhookFile(t, tt.content)
			got, err := LoadWebhook(path)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadWebhook_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadWebhook(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, ErrNotConfigured)
}
