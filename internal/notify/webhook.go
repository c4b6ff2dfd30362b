package notify

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
)

// DefaultWebhookPath is the webhook file looked up next to the binary.
const DefaultWebhookPath = "discord_webhook.txt"

const discordWebhookPrefix = "https://discord.com/api/webhooks/"

// LoadWebhook reads the Discord webhook URL from path. The first
// non-comment line carrying a valid webhook URL wins. A missing file,
// or a file with no valid URL (e.g. placeholder content), returns
// ErrNotConfigured so the caller can disable notifications.
func LoadWebhook(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // path from trusted config
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s not found", ErrNotConfigured, path)
		}
		return "", fmt.Errorf("reading webhook file %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !validWebhookURL(line) {
			continue
		}
		return line, nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scanning webhook file: %w", err)
	}

	return "", fmt.Errorf("%w: no valid webhook URL in %s", ErrNotConfigured, path)
}

// validWebhookURL requires a parseable Discord webhook URL carrying both
// the webhook ID and token path segments.
func validWebhookURL(line string) bool {
	if !strings.HasPrefix(line, discordWebhookPrefix) {
		return false
	}
	if _, err := url.ParseRequestURI(line); err != nil {
		return false
	}
	rest := strings.TrimPrefix(line, discordWebhookPrefix)
	id, token, ok := strings.Cut(rest, "/")
	return ok && id != "" && token != ""
}
