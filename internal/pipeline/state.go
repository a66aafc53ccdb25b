package pipeline

import (
	"time"

	"cafecli/internal/config"
	"cafecli/internal/dataprocessing"
	"cafecli/pkg/contracts/domain"
)

// State carries the data of one cleaner run between stages. Stages run
// sequentially, so no locking is needed; each stage reads what earlier
// stages produced and fills in its own fields.
type State struct {
	RunID     string
	StartedAt time.Time

	Config *config.Config
	Paths  *config.Paths

	// InputFile is the resolved raw CSV path. The load stage fills it in
	// when the run was pointed at a directory.
	InputFile string

	// Raw is the parsed input, including the rejection log.
	Raw *dataprocessing.ParseResult

	// Cleaned and Stats are the outcome of the repair pipeline.
	Cleaned []domain.Transaction
	Stats   domain.CleaningStats

	// Timings accumulates one entry per executed stage.
	Timings []domain.StageTiming
}

// NewState creates the state for one run.
func NewState(runID string, cfg *config.Config, paths *config.Paths) *State {
	return &State{
		RunID:     runID,
		StartedAt: time.Now(),
		Config:    cfg,
		Paths:     paths,
		InputFile: cfg.Cleaning.InputFile,
	}
}

// Summary assembles the run summary artifact from the finished state.
func (s *State) Summary(finishedAt time.Time, outputFile string) domain.RunSummary {
	summary := domain.RunSummary{
		RunID:        s.RunID,
		InputFile:    s.InputFile,
		OutputFile:   outputFile,
		StartedAt:    s.StartedAt,
		FinishedAt:   finishedAt,
		DurationMS:   finishedAt.Sub(s.StartedAt).Milliseconds(),
		Stats:        s.Stats,
		StageTimings: s.Timings,
	}
	if s.Raw != nil {
		summary.Rejections = s.Raw.Rejections
	}
	return summary
}
