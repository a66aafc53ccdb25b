package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"cafecli/internal/config"
	"cafecli/internal/dataprocessing"
	"cafecli/internal/exporter"
	"cafecli/internal/infrastructure"
	"cafecli/internal/sales"
	"cafecli/internal/validation"
	"cafecli/pkg/contracts"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("sales-report", flag.ContinueOnError)
	inputFile := fs.String("in", "", "cleaned transaction CSV (defaults to data/clean/cafe_sales_clean.csv)")
	baseDir := fs.String("dir", "", "base directory for data and logs (defaults to the executable directory)")
	configFile := fs.String("config", "", "path to config.yaml")
	precision := fs.Int("precision", -1, "decimal places for money in the report (overrides config)")
	topItems := fs.Int("top", 0, "number of items in the top-products section (overrides config)")
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
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *precision >= 0 {
		cfg.Report.Precision = *precision
	}
	if *topItems > 0 {
		cfg.Report.TopItems = *topItems
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

	cfg.Logging.FilePath = paths.GetLogPath("sales-report.log")
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		return 1
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.ContextWithTraceID(context.Background())

	input := *inputFile
	if input == "" {
		input = paths.CleanCSV
	}
	if err := validation.NewFileValidator(logger).ValidateCSVFile(input); err != nil {
		logger.ErrorContext(ctx, "Cleaned CSV not usable",
			slog.String("path", input),
			slog.String("hint", "run the cleaner first"),
			slog.String("error", err.Error()))
		return 1
	}

	catalog, err := config.LoadCatalog(paths.CatalogFile)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load product catalog", slog.String("error", err.Error()))
		return 1
	}

	// Loading goes through the same parse and repair pipeline as the
	// cleaner. On already-clean input the repairs are no-ops, except that
	// the UNKNOWN item label round-trips through its missing state and
	// comes back unchanged.
	parser := dataprocessing.NewParser(logger)
	result, err := parser.ParseFile(ctx, input)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to parse cleaned CSV", slog.String("error", err.Error()))
		return 1
	}
	records, _ := dataprocessing.NewCleaner(logger).Clean(ctx, result.Transactions)

	analyzer := sales.NewAnalyzer(logger, catalog)
	report, err := analyzer.Analyze(ctx, records, input)
	if err != nil {
		logger.ErrorContext(ctx, "Analysis failed", slog.String("error", err.Error()))
		return 1
	}

	opts := sales.RenderOptions{
		Precision:   cfg.Report.Precision,
		ColumnWidth: cfg.Report.ColumnWidth,
		TopItems:    cfg.Report.TopItems,
	}

	date := report.GeneratedAt
	insightsPath := paths.GetInsightsCSVPath(date)
	workbookPath := paths.GetWorkbookPath(date)
	jsonPath := paths.GetReportJSONPath(date)

	// The three artifacts are independent renderings of the same report
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error { return sales.WriteInsightsCSV(report, insightsPath, opts) })
	g.Go(func() error { return sales.WriteWorkbook(report, workbookPath, opts) })
	g.Go(func() error { return exporter.WriteJSON(jsonPath, report) })
	if err := g.Wait(); err != nil {
		logger.ErrorContext(ctx, "Failed to write report artifacts", slog.String("error", err.Error()))
		return 1
	}

	logger.InfoContext(ctx, "Sales report written",
		slog.String("insights_csv", insightsPath),
		slog.String("workbook", workbookPath),
		slog.String("summary_json", jsonPath),
		slog.Int("transactions", report.TotalTransactions))

	sales.RenderConsoleSummary(stdout, report, opts)
	return 0
}
