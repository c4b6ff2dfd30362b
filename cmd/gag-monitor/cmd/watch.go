package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Harlandx/Grow-a-Garden-Notification-System/internal/config"
	"github.com/Harlandx/Grow-a-Garden-Notification-System/internal/gag"
	"github.com/Harlandx/Grow-a-Garden-Notification-System/internal/monitor"
	"github.com/Harlandx/Grow-a-Garden-Notification-System/internal/notify"
	"github.com/Harlandx/Grow-a-Garden-Notification-System/pkg/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the shop and alert when watched items come into stock",
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Duration("interval", 0, "poll interval override (min 15s)")
	watchCmd.Flags().Bool("once", false, "run a single polling cycle and exit")
	watchCmd.Flags().String("metrics-addr", "", "address for the Prometheus /metrics listener (disabled when empty)")

	cobra.CheckErr(viper.BindPFlag("interval", watchCmd.Flags().Lookup("interval")))
	cobra.CheckErr(viper.BindPFlag("metrics-addr", watchCmd.Flags().Lookup("metrics-addr")))
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	interval := cfg.Poll.Interval
	if override := viper.GetDuration("interval"); override > 0 {
		if override < config.MinPollInterval {
			log.Warn("interval below upstream rate budget, clamping",
				"requested", override,
				"minimum", config.MinPollInterval,
			)
			override = config.MinPollInterval
		}
		interval = override
	}

	once, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}

	sessionID := uuid.NewString()
	mon := buildMonitor(cfg, log, interval, sessionID)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if once {
		if err := mon.RunCycle(ctx); err != nil {
			return fmt.Errorf("polling cycle: %w", err)
		}
		return nil
	}

	if addr := resolveMetricsAddr(cfg); addr != "" {
		shutdown := startMetricsListener(addr, log)
		defer shutdown()
	}

	return mon.Run(ctx)
}

func buildMonitor(
	cfg *config.Config,
	log *slog.Logger,
	interval time.Duration,
	sessionID string,
) *monitor.Monitor {
	client := buildClient(cfg, log)
	notifier := buildNotifier(cfg, log, sessionID)

	renderer := newRenderer(cfg)

	return monitor.New(client, notifier, renderer,
		monitor.WithLogger(log),
		monitor.WithInterval(interval),
		monitor.WithMaxBackoffFactor(cfg.Poll.MaxBackoffFactor),
		monitor.WithBatchThreshold(cfg.Notifications.BatchThreshold),
		monitor.WithWatchlistPath(cfg.Files.Watchlist),
		monitor.WithSessionID(sessionID),
	)
}

func buildClient(cfg *config.Config, log *slog.Logger) *gag.StockClient {
	opts := []gag.StockOption{
		gag.WithBaseURL(cfg.API.BaseURL),
		gag.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		gag.WithRateLimiter(gag.NewRateLimiter(
			cfg.API.RateLimit.PerMinute,
			cfg.API.RateLimit.Burst,
			cfg.API.RateLimit.DailyLimit,
		)),
		gag.WithStockLogger(log),
	}
	if cfg.API.UserAgent != "" {
		opts = append(opts, gag.WithUserAgent(cfg.API.UserAgent))
	}
	return gag.NewStockClient(opts...)
}

// resolveMetricsAddr prefers the --metrics-addr flag (or GAG_METRICS_ADDR)
// and falls back to metrics.addr from the config file.
func resolveMetricsAddr(cfg *config.Config) string {
	if addr := viper.GetString("metrics-addr"); addr != "" {
		return addr
	}
	return cfg.Metrics.Addr
}

// buildNotifier picks the Discord notifier when a webhook is configured,
// else a no-op. The missing-webhook case is logged once here instead of
// on every cycle.
func buildNotifier(cfg *config.Config, log *slog.Logger, sessionID string) notify.Notifier {
	webhookURL, err := notify.LoadWebhook(cfg.Files.Webhook)
	if err != nil {
		if errors.Is(err, notify.ErrNotConfigured) {
			log.Warn("discord notifications disabled", "reason", err)
		} else {
			log.Warn("webhook file unreadable, notifications disabled", "error", err)
		}
		return notify.NewNoOpNotifier(log)
	}

	log.Info("discord notifications enabled")
	footer := fmt.Sprintf("GAG Items Monitor · %.8s", sessionID)
	return notify.NewDiscordNotifier(webhookURL, notify.WithFooter(footer))
}

// startMetricsListener serves /metrics, /healthz and /readyz until the
// returned shutdown func is called.
func startMetricsListener(addr string, log *slog.Logger) func() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/readyz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	log.Info("metrics listener starting", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics listener error", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.Shutdown(ctx); err != nil {
			log.Error("metrics listener shutdown failed", "error", err)
		}
	}
}
