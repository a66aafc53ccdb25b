package exporter

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"cafecli/internal/errors"
	"cafecli/pkg/contracts/domain"
)

// WriteJSON writes v as indented JSON, creating parent directories.
func WriteJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create output directory", err).
			WithContext("path", path)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.NewStorageError("failed to marshal JSON", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewStorageError("failed to write JSON file", err).
			WithContext("path", path)
	}
	return nil
}

// WriteRunSummary writes the run summary artifact for one cleaner run.
func WriteRunSummary(ctx context.Context, path string, summary domain.RunSummary) error {
	if err := WriteJSON(path, summary); err != nil {
		return err
	}

	slog.Default().InfoContext(ctx, "wrote run summary",
		slog.String("path", path),
		slog.String("run_id", summary.RunID))
	return nil
}

// WriteMetricsTextfile snapshots the Prometheus registry into a textfile
// for a node-exporter textfile collector. This is the network-free metrics
// path of a batch run.
func WriteMetricsTextfile(ctx context.Context, path string, gatherer prometheus.Gatherer) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create metrics directory", err).
			WithContext("path", path)
	}

	if err := prometheus.WriteToTextfile(path, gatherer); err != nil {
		return errors.NewStorageError("failed to write metrics textfile", err).
			WithContext("path", path)
	}

	slog.Default().InfoContext(ctx, "wrote metrics textfile", slog.String("path", path))
	return nil
}
