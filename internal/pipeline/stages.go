package pipeline

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"cafecli/internal/dataprocessing"
	"cafecli/internal/errors"
	"cafecli/internal/exporter"
	"cafecli/internal/files"
	"cafecli/internal/infrastructure"
	"cafecli/internal/validation"
)

// Stage identifiers, in execution order.
const (
	StageIDLoad     = "load"
	StageIDClean    = "clean"
	StageIDValidate = "validate"
	StageIDExport   = "export"
)

// LoadStage resolves the raw input and parses it into the run state. When
// the run is pointed at a directory it picks the most recent CSV drop.
type LoadStage struct {
	parser    *dataprocessing.Parser
	discovery *files.Discovery
	validator *validation.FileValidator
	manager   *files.Manager
}

// NewLoadStage creates the load stage.
func NewLoadStage(parser *dataprocessing.Parser, discovery *files.Discovery, validator *validation.FileValidator, manager *files.Manager) *LoadStage {
	return &LoadStage{
		parser:    parser,
		discovery: discovery,
		validator: validator,
		manager:   manager,
	}
}

// ID returns the stage identifier
func (s *LoadStage) ID() string { return StageIDLoad }

// Name returns the human-readable stage name
func (s *LoadStage) Name() string { return "Load raw transactions" }

// Execute resolves, validates, and parses the input file.
func (s *LoadStage) Execute(ctx context.Context, state *State) error {
	input := state.InputFile
	if input == "" {
		input = state.Paths.RawDir
	}

	info, err := os.Stat(input)
	if err != nil {
		return errors.NewStorageError("input path is not accessible", err).
			WithContext("path", input)
	}
	if info.IsDir() {
		latest, err := s.discovery.LatestCSV(input)
		if err != nil {
			return errors.NewNotFoundError("raw transaction CSV").
				WithContext("directory", input)
		}
		input = latest.Path
	}

	if err := s.validator.ValidateCSVFile(input); err != nil {
		return errors.NewValidationError(err.Error()).
			WithContext("path", input)
	}

	state.InputFile = input
	if size, err := s.manager.GetFileSize(input); err == nil {
		infrastructure.SetSpanAttributes(ctx, map[string]interface{}{
			"input.file":  input,
			"input.bytes": size,
		})
	}

	result, err := s.parser.ParseFile(ctx, input)
	if err != nil {
		return err
	}
	state.Raw = result
	return nil
}

// CleanStage runs the fixed-order repairs over the parsed transactions.
type CleanStage struct {
	cleaner *dataprocessing.Cleaner
}

// NewCleanStage creates the clean stage.
func NewCleanStage(cleaner *dataprocessing.Cleaner) *CleanStage {
	return &CleanStage{cleaner: cleaner}
}

// ID returns the stage identifier
func (s *CleanStage) ID() string { return StageIDClean }

// Name returns the human-readable stage name
func (s *CleanStage) Name() string { return "Repair and filter transactions" }

// Execute cleans the parsed transactions and folds the parser's rejection
// counts into the run statistics.
func (s *CleanStage) Execute(ctx context.Context, state *State) error {
	if state.Raw == nil {
		return errors.NewValidationError("no parsed transactions to clean")
	}

	cleaned, stats := s.cleaner.Clean(ctx, state.Raw.Transactions)
	stats.RejectedCells = state.Raw.CellRejections()
	stats.RejectedRows = state.Raw.RowRejections()

	state.Cleaned = cleaned
	state.Stats = stats
	return nil
}

// ValidateStage checks the cleaned output against the output contract.
// A failure here is a pipeline bug, not bad input, so it aborts the run
// before anything is written.
type ValidateStage struct {
	records *validation.RecordValidator
}

// NewValidateStage creates the validate stage.
func NewValidateStage(records *validation.RecordValidator) *ValidateStage {
	return &ValidateStage{records: records}
}

// ID returns the stage identifier
func (s *ValidateStage) ID() string { return StageIDValidate }

// Name returns the human-readable stage name
func (s *ValidateStage) Name() string { return "Validate cleaned output" }

// Execute validates every cleaned transaction.
func (s *ValidateStage) Execute(ctx context.Context, state *State) error {
	return s.records.ValidateTransactions(state.Cleaned)
}

// ExportStage writes the cleaned CSV and the rejection log. The two files
// are independent, so they are written concurrently.
type ExportStage struct {
	writer *exporter.CSVWriter
}

// NewExportStage creates the export stage.
func NewExportStage(writer *exporter.CSVWriter) *ExportStage {
	return &ExportStage{writer: writer}
}

// ID returns the stage identifier
func (s *ExportStage) ID() string { return StageIDExport }

// Name returns the human-readable stage name
func (s *ExportStage) Name() string { return "Export artifacts" }

// Execute writes the run's CSV artifacts.
func (s *ExportStage) Execute(ctx context.Context, state *State) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.writer.WriteTransactionsCSV(gctx, state.Paths.CleanCSV, state.Cleaned)
	})

	if state.Config.Cleaning.WriteRejections {
		g.Go(func() error {
			// An empty rejection log still gets a header-only file so
			// downstream consumers can rely on its presence.
			return s.writer.WriteRejectionsCSV(gctx, state.Paths.RejectedCSV, state.Raw.Rejections)
		})
	}

	return g.Wait()
}
