package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/neox5/metricbox/internal/app"
	"github.com/neox5/metricbox/internal/config"
	"github.com/neox5/metricbox/internal/exporter"
	"github.com/neox5/metricbox/internal/metric"
	"github.com/neox5/metricbox/internal/monitor"
	"github.com/neox5/metricbox/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newCommand builds the root command. Line protocol goes to the command's
// Writer and logs to its ErrWriter.
func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "metricbox",
		Usage:   "Tagged metric producer with Prometheus, OTLP and line protocol exporters",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to configuration file (built-in defaults when empty)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.StringFlag{
				Name:  "verbosity",
				Usage: "default metric verbosity (prod, info, debug), overrides settings.verbosity",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "collect one sample and print it as line protocol",
			},
		},
		Action: serve,
	}
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	if s := cmd.String("verbosity"); s != "" {
		v, err := metric.ParseVerbosity(s)
		if err != nil {
			return nil, fmt.Errorf("--verbosity: %w", err)
		}
		cfg.Settings.Verbosity = v
	}

	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	// Configure logging level
	logLevel := slog.LevelInfo
	if cmd.Bool("debug") {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.Root().ErrWriter, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("starting metricbox", "version", version.String(), "config", cmd.String("config"))

	// Load configuration
	slog.Debug("--- Configuration Loading ---")
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Bool("dry-run") {
		return dryRun(ctx, cfg, logger, cmd.Root().Writer)
	}

	slog.Debug("--- Application Creation ---")
	application, err := app.New(cfg, cmd.Root().Writer, logger)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	// Setup graceful shutdown
	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start exporters
	slog.Debug("--- Exporter Initialization ---")
	var wg sync.WaitGroup
	errChan := make(chan error, 2)

	if application.PrometheusExporter != nil {
		wg.Go(func() {
			if err := application.PrometheusExporter.Start(shutdownCtx); err != nil {
				errChan <- fmt.Errorf("prometheus exporter: %w", err)
			}
		})
	}

	if application.OTELExporter != nil {
		wg.Go(func() {
			if err := application.OTELExporter.Start(shutdownCtx); err != nil {
				errChan <- fmt.Errorf("otel exporter: %w", err)
			}
		})
	}

	// Start resource monitor
	application.Monitor.Run(shutdownCtx)

	slog.Debug("--- Application Running ---")

	// Wait for shutdown or error
	select {
	case err := <-errChan:
		slog.Error("exporter error", "error", err)
		stop() // Cancel context to trigger shutdown
	case <-shutdownCtx.Done():
		// Graceful shutdown triggered
	}

	slog.Debug("--- Shutdown Initiated ---")

	// Producer first, then the queue, then the exporters
	application.Monitor.Wait()
	application.Close()
	wg.Wait()

	slog.Info("shutdown complete")
	return nil
}

// dryRun collects one sample into memory and writes it to out.
func dryRun(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) error {
	metric.SetDefaultVerbosity(cfg.Settings.Verbosity)

	mem := exporter.NewMemory()
	mon, err := monitor.New(cfg.Monitor.Interval, cfg.Monitor.PerCPU, cfg.Monitor.Tags, mem, logger)
	if err != nil {
		return fmt.Errorf("failed to create monitor: %w", err)
	}
	mon.Collect(ctx)

	lp := exporter.NewLineProtocolExporter(out)
	for _, m := range mem.Metrics() {
		lp.Send(m)
	}
	if n := lp.Errors(); n > 0 {
		return fmt.Errorf("dry run: %d writes failed", n)
	}
	return nil
}
