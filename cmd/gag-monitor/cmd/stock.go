package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Harlandx/Grow-a-Garden-Notification-System/internal/config"
	"github.com/Harlandx/Grow-a-Garden-Notification-System/internal/display"
	"github.com/Harlandx/Grow-a-Garden-Notification-System/internal/gag"
	"github.com/Harlandx/Grow-a-Garden-Notification-System/internal/watchlist"
	"github.com/Harlandx/Grow-a-Garden-Notification-System/pkg/logger"
)

var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Fetch and print the current shop stock once, without notifications",
	RunE:  runStock,
}

var (
	stockJSON  bool
	stockTable bool
)

func init() {
	rootCmd.AddCommand(stockCmd)
	stockCmd.Flags().BoolVar(&stockJSON, "json", false, "output as JSON")
	stockCmd.Flags().BoolVar(&stockTable, "table", false, "output as a plain table")
}

func runStock(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	client := gag.NewStockClient(
		gag.WithBaseURL(cfg.API.BaseURL),
		gag.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		gag.WithStockLogger(log),
	)

	snap, err := client.FetchAll(cmd.Context())
	if err != nil {
		return err
	}

	if stockJSON {
		return outputJSON(snap)
	}
	if stockTable {
		return printItemsTable(snap)
	}

	watch, werr := watchlist.Load(cfg.Files.Watchlist)
	if werr != nil {
		log.Warn("watchlist unreadable, treating as empty", "error", werr)
	}

	renderer := newRenderer(cfg)
	renderer.Render(snap, watch)
	return nil
}

func newRenderer(cfg *config.Config) *display.Renderer {
	var opts []display.Option
	if cfg.Display.NoColor || viper.GetBool("no-color") {
		opts = append(opts, display.WithNoColor())
	}
	return display.NewRenderer(os.Stdout, opts...)
}
