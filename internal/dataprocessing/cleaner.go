package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"cafecli/pkg/contracts/domain"
)

// Cleaner runs the fixed-order column repairs over a parsed transaction set.
//
// The step order matters: the total recomputation uses the repaired quantity
// and unit price, and the date filter runs last so the imputation statistics
// are computed over the fuller pre-filter population.
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner creates a new cleaning pipeline.
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger}
}

// Clean repairs the transaction set and returns the cleaned collection plus
// the statistics of what changed. The caller's slice is never mutated; the
// pipeline works on a copy.
//
// Steps, in order: item repair (missing item becomes the literal UNKNOWN
// label), quantity imputation (pre-filter median, rounded to an integer),
// unit price imputation (pre-filter arithmetic mean), unconditional total
// recomputation, categorical preservation (payment method and location are
// left untouched), and finally the drop of records without a date.
func (c *Cleaner) Clean(ctx context.Context, records []domain.Transaction) ([]domain.Transaction, domain.CleaningStats) {
	stats := domain.CleaningStats{InputRows: len(records)}

	working := make([]domain.Transaction, len(records))
	copy(working, records)

	for i := range working {
		if working[i].Item == "" {
			working[i].Item = domain.UnknownItem
			stats.ItemsRepaired++
		}
	}

	if median, ok := medianQuantity(working); ok {
		imputed := int64(math.Round(median))
		stats.ImputedQuantity = imputed
		for i := range working {
			if working[i].Quantity == 0 {
				working[i].Quantity = imputed
				stats.QuantitiesImputed++
			}
		}
	} else {
		c.logger.WarnContext(ctx, "no quantities present, skipping quantity imputation")
	}

	if mean, ok := meanUnitPrice(working); ok {
		stats.ImputedUnitPrice = mean
		for i := range working {
			if working[i].UnitPrice.IsZero() {
				working[i].UnitPrice = mean
				stats.PricesImputed++
			}
		}
	} else {
		c.logger.WarnContext(ctx, "no unit prices present, skipping price imputation")
	}

	// Overwrite every total, not just the previously missing ones, so the
	// total invariant holds even where the original value was inconsistent.
	for i := range working {
		working[i].TotalSpent = working[i].UnitPrice.Mul(decimal.NewFromInt(working[i].Quantity))
	}
	stats.TotalsRecomputed = len(working)

	cleaned := make([]domain.Transaction, 0, len(working))
	for _, t := range working {
		if !t.HasDate() {
			stats.DroppedNoDate++
			continue
		}
		if t.PaymentMethod == "" {
			stats.MissingPayments++
		}
		if t.Location == "" {
			stats.MissingLocations++
		}
		cleaned = append(cleaned, t)
	}
	stats.OutputRows = len(cleaned)

	c.logger.InfoContext(ctx, "cleaning complete",
		slog.Int("input_rows", stats.InputRows),
		slog.Int("output_rows", stats.OutputRows),
		slog.Int("items_repaired", stats.ItemsRepaired),
		slog.Int("quantities_imputed", stats.QuantitiesImputed),
		slog.Int64("imputed_quantity", stats.ImputedQuantity),
		slog.Int("prices_imputed", stats.PricesImputed),
		slog.String("imputed_unit_price", stats.ImputedUnitPrice.String()),
		slog.Int("dropped_no_date", stats.DroppedNoDate))

	return cleaned, stats
}

// medianQuantity returns the median of the non-missing quantities. For an
// even count the median is the average of the two middle values, which may
// be fractional; the caller rounds before assigning.
func medianQuantity(records []domain.Transaction) (float64, bool) {
	values := make([]int64, 0, len(records))
	for _, t := range records {
		if t.Quantity > 0 {
			values = append(values, t.Quantity)
		}
	}
	if len(values) == 0 {
		return 0, false
	}

	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	mid := len(values) / 2
	if len(values)%2 == 0 {
		return float64(values[mid-1]+values[mid]) / 2, true
	}
	return float64(values[mid]), true
}

// meanUnitPrice returns the arithmetic mean of the non-missing unit prices.
func meanUnitPrice(records []domain.Transaction) (decimal.Decimal, bool) {
	values := make([]decimal.Decimal, 0, len(records))
	for _, t := range records {
		if !t.UnitPrice.IsZero() {
			values = append(values, t.UnitPrice)
		}
	}
	if len(values) == 0 {
		return decimal.Zero, false
	}
	return decimal.Avg(values[0], values[1:]...), true
}
