package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Harlandx/Grow-a-Garden-Notification-System/internal/config"
	"github.com/Harlandx/Grow-a-Garden-Notification-System/internal/watchlist"
)

var watchlistCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "Print the parsed watchlist",
	RunE:  runWatchlist,
}

var watchlistJSON bool

func init() {
	rootCmd.AddCommand(watchlistCmd)
	watchlistCmd.Flags().BoolVar(&watchlistJSON, "json", false, "output as JSON")
}

func runWatchlist(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	watch, err := watchlist.Load(cfg.Files.Watchlist)
	if err != nil {
		return fmt.Errorf("loading watchlist %s: %w", cfg.Files.Watchlist, err)
	}

	if watchlistJSON {
		return outputJSON(watch.Names())
	}

	if watch.Empty() {
		fmt.Printf("watchlist %s is empty\n", cfg.Files.Watchlist)
		return nil
	}
	return printWatchlistTable(watch.Names())
}
