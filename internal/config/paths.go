package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Paths contains all the application paths
// This is the single source of truth for ALL file paths in the application
type Paths struct {
	ExecutableDir string
	DataDir       string
	RawDir        string
	CleanDir      string
	ReportsDir    string
	MetricsDir    string
	LogsDir       string

	// Config files
	CatalogFile string

	// Well-known cleaner artifacts
	CleanCSV       string
	RejectedCSV    string
	RunSummaryJSON string
	MetricsFile    string
	TraceFile      string
}

// GetPaths returns the application paths relative to the executable location
// All paths are ALWAYS relative to the executable directory, never the current working directory
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	// Get the directory containing the executable
	exeDir := filepath.Dir(exe)

	return PathsIn(exeDir), nil
}

// PathsIn returns the application paths rooted at baseDir.
// Directory structure:
//
//	base/
//	  ├── catalog.yaml
//	  ├── data/
//	  │   ├── raw/       (source transaction CSVs)
//	  │   ├── clean/     (cleaned CSV, rejection log, run summary)
//	  │   ├── reports/   (sales report artifacts)
//	  │   └── metrics/   (Prometheus textfiles)
//	  └── logs/          (application logs, trace export)
func PathsIn(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")
	cleanDir := filepath.Join(dataDir, "clean")
	metricsDir := filepath.Join(dataDir, "metrics")
	logsDir := filepath.Join(baseDir, "logs")

	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       dataDir,
		RawDir:        filepath.Join(dataDir, "raw"),
		CleanDir:      cleanDir,
		ReportsDir:    filepath.Join(dataDir, "reports"),
		MetricsDir:    metricsDir,
		LogsDir:       logsDir,

		CatalogFile: filepath.Join(baseDir, "catalog.yaml"),

		CleanCSV:       filepath.Join(cleanDir, "cafe_sales_clean.csv"),
		RejectedCSV:    filepath.Join(cleanDir, "rejected_rows.csv"),
		RunSummaryJSON: filepath.Join(cleanDir, "run_summary.json"),
		MetricsFile:    filepath.Join(metricsDir, "cleaning_metrics.prom"),
		TraceFile:      filepath.Join(logsDir, "traces.log"),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.RawDir,
		p.CleanDir,
		p.ReportsDir,
		p.MetricsDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}

		if logger != nil {
			logger.Debug("Ensured directory exists",
				slog.String("directory", dir))
		}
	}

	return nil
}

// GetRelativePath returns a path relative to the executable directory
func (p *Paths) GetRelativePath(subpath string) string {
	return filepath.Join(p.ExecutableDir, subpath)
}

// GetReportPath returns the path for a report file
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// GetInsightsCSVPath returns the path for a dated sales insights CSV
func (p *Paths) GetInsightsCSVPath(date time.Time) string {
	filename := fmt.Sprintf("sales_insights_%s.csv", date.Format("2006-01-02"))
	return filepath.Join(p.ReportsDir, filename)
}

// GetWorkbookPath returns the path for a dated sales report workbook
func (p *Paths) GetWorkbookPath(date time.Time) string {
	filename := fmt.Sprintf("sales_report_%s.xlsx", date.Format("2006-01-02"))
	return filepath.Join(p.ReportsDir, filename)
}

// GetReportJSONPath returns the path for a dated sales summary JSON
func (p *Paths) GetReportJSONPath(date time.Time) string {
	filename := fmt.Sprintf("sales_summary_%s.json", date.Format("2006-01-02"))
	return filepath.Join(p.ReportsDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs detailed path resolution information for debugging
func (p *Paths) LogPathResolution() {
	logger := slog.Default()
	if logger == nil {
		return
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("executable", p.ExecutableDir),
			slog.String("data", p.DataDir),
			slog.String("raw", p.RawDir),
			slog.String("clean", p.CleanDir),
			slog.String("reports", p.ReportsDir),
			slog.String("metrics", p.MetricsDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("config_files",
			slog.String("catalog", p.CatalogFile),
		),
		slog.Group("artifacts",
			slog.String("clean_csv", p.CleanCSV),
			slog.String("rejected_csv", p.RejectedCSV),
			slog.String("run_summary_json", p.RunSummaryJSON),
			slog.String("metrics_file", p.MetricsFile),
			slog.String("trace_file", p.TraceFile),
		))
}
