package exporter

import (
	"context"
	"log/slog"

	"cafecli/internal/errors"
	"cafecli/pkg/contracts/domain"
)

// WriteTransactionsCSV streams the cleaned transaction table to path with
// the same header as the raw input file.
func (w *CSVWriter) WriteTransactionsCSV(ctx context.Context, path string, records []domain.Transaction) error {
	stream, err := w.CreateStreamWriter(path, domain.CSVHeader())
	if err != nil {
		return errors.NewStorageError("failed to create cleaned CSV writer", err).
			WithContext("path", path)
	}

	for _, t := range records {
		if err := stream.WriteRecord(t.CSVRow()); err != nil {
			stream.Close()
			return errors.NewStorageError("failed to write cleaned transaction row", err).
				WithContext("transaction_id", t.ID)
		}
	}

	if err := stream.Close(); err != nil {
		return errors.NewStorageError("failed to flush cleaned CSV", err).
			WithContext("path", path)
	}

	slog.Default().InfoContext(ctx, "wrote cleaned transactions",
		slog.String("path", path),
		slog.Int("rows", len(records)))
	return nil
}

// WriteRejectionsCSV writes the per-run rejection log.
func (w *CSVWriter) WriteRejectionsCSV(ctx context.Context, path string, rejections []domain.Rejection) error {
	headers := []string{"Row", "Transaction ID", "Column", "Raw Value", "Reason"}
	records := make([][]string, 0, len(rejections))
	for _, r := range rejections {
		records = append(records, []string{
			formatInt(int64(r.Row)),
			r.TransactionID,
			r.Column,
			r.RawValue,
			r.Reason,
		})
	}

	if err := w.WriteSimpleCSV(path, headers, records); err != nil {
		return errors.NewStorageError("failed to write rejection log", err).
			WithContext("path", path)
	}

	slog.Default().InfoContext(ctx, "wrote rejection log",
		slog.String("path", path),
		slog.Int("rejections", len(rejections)))
	return nil
}
