package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aircheck/internal/api"
	"aircheck/internal/config"
	"aircheck/internal/core"
	"aircheck/internal/logging"
	aircheckmcp "aircheck/internal/mcp"
	"aircheck/internal/notify"
	"aircheck/internal/schedule"
)

func main() {
	cfg, err := config.Parse()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("load timezone", "tz", cfg.Timezone, "err", err)
		os.Exit(1)
	}

	entries, err := config.LoadShows(cfg.ShowsFile)
	if err != nil {
		logger.Error("load shows", "path", cfg.ShowsFile, "err", err)
		os.Exit(1)
	}
	shows := make([]core.Show, 0, len(entries))
	for _, entry := range entries {
		shows = append(shows, core.Show{
			Name:     entry.Name,
			Pattern:  entry.Pattern,
			Timezone: entry.Timezone,
		})
	}
	logger.Info("loaded shows", "count", len(shows), "path", cfg.ShowsFile)

	notifier := buildNotifier(cfg, logger)
	planner := core.NewPlanner(logger, location)
	scheduler := core.NewScheduler(logger, location, onAir(logger, notifier))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler.Start(ctx)
	scheduler.Sync(shows)

	mcpServer := aircheckmcp.NewMCPServer(planner, shows, logger, location)

	switch cfg.Mode {
	case "http":
		runHTTPMode(cfg, shows, planner, scheduler, logger, location)
	case "mcp":
		runMCPMode(mcpServer, scheduler, logger, cancel)
	case "both":
		runBothMode(cfg, shows, planner, scheduler, mcpServer, logger, location)
	}
}

// onAir is the default trigger: announce the airing and leave the actual
// recording to whatever consumes the announcement.
func onAir(logger *slog.Logger, notifier notify.Notifier) core.TriggerFunc {
	return func(ctx context.Context, show core.Show, airsAt time.Time) {
		logger.Info("show on air", "show", show.Name, "at", airsAt.Format(time.RFC3339))
		title := fmt.Sprintf("On air: %s", show.Name)
		body := fmt.Sprintf("%s — %s", airsAt.Format("Mon 15:04"), schedule.DescribePattern(show.Pattern))
		if err := notifier.Send(ctx, title, body); err != nil {
			logger.Warn("notify airing", "show", show.Name, "err", err)
		}
	}
}

func buildNotifier(cfg *config.Config, logger *slog.Logger) notify.Notifier {
	if !cfg.Bark.Enabled {
		return &notify.NoOpNotifier{}
	}
	bark, err := notify.NewBarkNotifier(cfg.Bark.URL)
	if err != nil {
		logger.Warn("bark notifier disabled", "err", err)
		return &notify.NoOpNotifier{}
	}
	return bark
}

func runHTTPMode(cfg *config.Config, shows []core.Show, planner *core.Planner, scheduler *core.Scheduler, logger *slog.Logger, location *time.Location) {
	server, err := api.NewServer(cfg.Addr, cfg.AuthToken, shows, planner, logger, location)
	if err != nil {
		logger.Error("create server", "err", err)
		os.Exit(1)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		logger.Info("received signal", "signal", sig.String())
	case err := <-serverErr:
		logger.Error("server error", "err", err)
	}

	shutdown(server, scheduler, cfg.ShutdownGrace, logger)
}

func runMCPMode(mcpServer *aircheckmcp.MCPServer, scheduler *core.Scheduler, logger *slog.Logger, cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigs
		logger.Info("received signal, shutting down...")
		cancel()
	}()

	if err := mcpServer.Run(); err != nil {
		logger.Error("mcp server error", "err", err)
		os.Exit(1)
	}
	<-scheduler.Stop().Done()
}

func runBothMode(cfg *config.Config, shows []core.Show, planner *core.Planner, scheduler *core.Scheduler, mcpServer *aircheckmcp.MCPServer, logger *slog.Logger, location *time.Location) {
	mcpErr := make(chan error, 1)
	go func() {
		if err := mcpServer.Run(); err != nil {
			mcpErr <- err
		}
	}()

	server, err := api.NewServer(cfg.Addr, cfg.AuthToken, shows, planner, logger, location)
	if err != nil {
		logger.Error("create server", "err", err)
		os.Exit(1)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		logger.Info("received signal", "signal", sig.String())
	case err := <-serverErr:
		logger.Error("server error", "err", err)
	case err := <-mcpErr:
		logger.Error("mcp server error", "err", err)
	}

	shutdown(server, scheduler, cfg.ShutdownGrace, logger)
	logger.Info("shutdown complete")
}

func shutdown(server *api.Server, scheduler *core.Scheduler, grace time.Duration, logger *slog.Logger) {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), grace)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "err", err)
	}

	stopCtx := scheduler.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(grace):
		logger.Warn("scheduler stop timed out")
	}
}
