package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"cafecli/internal/infrastructure"
	"cafecli/pkg/contracts/domain"
)

// Runner executes the stages of one cleaner run in order, aborting on the
// first failure. It records a span, a log pair, a timing entry, and the
// stage metrics for every stage it runs.
type Runner struct {
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *infrastructure.CleaningMetrics
}

// NewRunner creates a stage runner. tracer and metrics may be nil, in which
// case the global (noop by default) tracer is used and metric recording is
// skipped.
func NewRunner(logger *slog.Logger, tracer trace.Tracer, metrics *infrastructure.CleaningMetrics) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = otel.Tracer(infrastructure.MeterName)
	}
	return &Runner{logger: logger, tracer: tracer, metrics: metrics}
}

// Run executes the stages sequentially against state.
func (r *Runner) Run(ctx context.Context, state *State, stages ...Stage) error {
	runCtx, runSpan := r.tracer.Start(ctx, "cleaner.run",
		trace.WithAttributes(attribute.String("run.id", state.RunID)))
	defer runSpan.End()

	r.logger.InfoContext(runCtx, "run started",
		slog.String("run_id", state.RunID),
		slog.Int("stages", len(stages)))

	for _, stage := range stages {
		if err := r.runStage(runCtx, state, stage); err != nil {
			infrastructure.RecordError(runCtx, err)
			return err
		}
	}

	r.logger.InfoContext(runCtx, "run completed",
		slog.String("run_id", state.RunID),
		slog.Int("output_rows", state.Stats.OutputRows))
	return nil
}

func (r *Runner) runStage(ctx context.Context, state *State, stage Stage) error {
	stageCtx, span := r.tracer.Start(ctx, "stage."+stage.ID(),
		trace.WithAttributes(attribute.String("stage.name", stage.Name())))
	defer span.End()

	logger := r.logger.With(
		slog.String("run_id", state.RunID),
		slog.String("stage", stage.ID()))
	logger.InfoContext(stageCtx, "stage started", slog.String("name", stage.Name()))

	start := time.Now()
	err := stage.Execute(stageCtx, state)
	duration := time.Since(start)

	status := "completed"
	if err != nil {
		status = "failed"
	}
	state.Timings = append(state.Timings, domain.StageTiming{
		Stage:      stage.ID(),
		DurationMS: duration.Milliseconds(),
		Status:     status,
	})
	infrastructure.RecordStageMetrics(stageCtx, r.metrics, state.RunID, stage.ID(), duration, err == nil)

	if err != nil {
		infrastructure.RecordError(stageCtx, err)
		logger.ErrorContext(stageCtx, "stage failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return fmt.Errorf("stage %s failed: %w", stage.ID(), err)
	}

	logger.InfoContext(stageCtx, "stage completed", slog.Duration("duration", duration))
	return nil
}
