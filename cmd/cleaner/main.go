package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"cafecli/internal/config"
	"cafecli/internal/dataprocessing"
	"cafecli/internal/exporter"
	"cafecli/internal/files"
	"cafecli/internal/infrastructure"
	"cafecli/internal/pipeline"
	"cafecli/internal/validation"
	"cafecli/pkg/contracts"
	"cafecli/pkg/contracts/domain"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("cleaner", flag.ContinueOnError)
	inputFile := fs.String("in", "", "raw transaction CSV, or a directory of raw drops (defaults to data/raw)")
	baseDir := fs.String("dir", "", "base directory for data and logs (defaults to the executable directory)")
	configFile := fs.String("config", "", "path to config.yaml")
	logLevel := fs.String("loglevel", "", "override log level (debug, info, warn, error)")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return 0
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}
	if *inputFile != "" {
		cfg.Cleaning.InputFile = *inputFile
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	var paths *config.Paths
	if *baseDir != "" {
		paths = config.PathsIn(*baseDir)
	} else {
		paths, err = config.GetPaths()
		if err != nil {
			slog.Error("Failed to initialize paths", "error", err)
			return 1
		}
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create directories", "error", err)
		return 1
	}

	cfg.Logging.FilePath = paths.GetLogPath("cleaner.log")
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		return 1
	}
	defer infrastructure.CloseLogFile()

	otelCfg := infrastructure.DefaultOTelConfig()
	otelCfg.TraceFile = paths.TraceFile
	otelCfg.EnableTracing = cfg.Cleaning.WriteTraces
	otelCfg.EnableMetrics = cfg.Cleaning.WriteMetrics
	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		logger.Error("Failed to initialize telemetry", "error", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown failed", "error", err)
		}
	}()

	var metrics *infrastructure.CleaningMetrics
	if providers.Meter != nil {
		metrics, err = infrastructure.CreateCleaningMetrics(providers.Meter)
		if err != nil {
			logger.Error("Failed to create metrics", "error", err)
			return 1
		}
	}

	runID := uuid.New().String()
	ctx := infrastructure.WithTraceID(context.Background(), runID)
	logger.InfoContext(ctx, "Starting cleaner",
		slog.String("version", contracts.Version),
		slog.String("run_id", runID))

	state := pipeline.NewState(runID, cfg, paths)
	runner := pipeline.NewRunner(logger, providers.Tracer, metrics)

	recordValidator, err := validation.NewRecordValidator(logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build record validator", slog.String("error", err.Error()))
		return 1
	}

	discovery := files.NewDiscovery(paths.ExecutableDir)
	manager := files.NewManager(paths)
	stages := []pipeline.Stage{
		pipeline.NewLoadStage(dataprocessing.NewParser(logger), discovery, validation.NewFileValidator(logger), manager),
		pipeline.NewCleanStage(dataprocessing.NewCleaner(logger)),
		pipeline.NewValidateStage(recordValidator),
		pipeline.NewExportStage(exporter.NewCSVWriter(paths)),
	}

	runErr := runner.Run(ctx, state, stages...)
	finishedAt := time.Now()

	infrastructure.RecordRunMetrics(ctx, metrics, runID, finishedAt.Sub(state.StartedAt), runErr)
	infrastructure.RecordCleaningCounts(ctx, metrics,
		state.Stats.ItemsRepaired,
		state.Stats.QuantitiesImputed,
		state.Stats.PricesImputed,
		state.Stats.TotalsRecomputed,
		state.Stats.RejectedCells+state.Stats.RejectedRows,
		state.Stats.DroppedNoDate,
		state.Stats.InputRows,
		state.Stats.OutputRows)

	if cfg.Cleaning.WriteMetrics && providers.Registry != nil {
		if err := exporter.WriteMetricsTextfile(ctx, paths.MetricsFile, providers.Registry); err != nil {
			logger.Warn("Failed to write metrics textfile", "error", err)
		}
	}

	if runErr != nil {
		logger.ErrorContext(ctx, "Run failed", slog.String("error", runErr.Error()))
		return 1
	}

	summary := state.Summary(finishedAt, paths.CleanCSV)
	if err := exporter.WriteRunSummary(ctx, paths.RunSummaryJSON, summary); err != nil {
		logger.ErrorContext(ctx, "Failed to write run summary", slog.String("error", err.Error()))
		return 1
	}

	printRunStats(stdout, summary)
	return 0
}

// printRunStats renders the closing console summary of a successful run.
func printRunStats(w io.Writer, summary domain.RunSummary) {
	stats := summary.Stats
	fmt.Fprintf(w, "\nCleaning run %s\n", summary.RunID)
	fmt.Fprintf(w, "  Input:               %s (%d rows)\n", summary.InputFile, stats.InputRows)
	fmt.Fprintf(w, "  Output:              %s (%d rows)\n", summary.OutputFile, stats.OutputRows)
	fmt.Fprintf(w, "  Items repaired:      %d\n", stats.ItemsRepaired)
	fmt.Fprintf(w, "  Quantities imputed:  %d (median %d)\n", stats.QuantitiesImputed, stats.ImputedQuantity)
	fmt.Fprintf(w, "  Prices imputed:      %d (mean %s)\n", stats.PricesImputed, stats.ImputedUnitPrice.String())
	fmt.Fprintf(w, "  Totals recomputed:   %d\n", stats.TotalsRecomputed)
	fmt.Fprintf(w, "  Rejected:            %d cells, %d rows\n", stats.RejectedCells, stats.RejectedRows)
	fmt.Fprintf(w, "  Dropped (no date):   %d\n", stats.DroppedNoDate)
	fmt.Fprintf(w, "  Duration:            %dms\n", summary.DurationMS)
}
