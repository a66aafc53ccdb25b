package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CleaningStats represents what one cleaning run changed.
// All counts are taken over the pre-filter population except OutputRows.
type CleaningStats struct {
	InputRows         int             `json:"input_rows" validate:"min=0"`
	OutputRows        int             `json:"output_rows" validate:"min=0"`
	ItemsRepaired     int             `json:"items_repaired" validate:"min=0"`
	QuantitiesImputed int             `json:"quantities_imputed" validate:"min=0"`
	ImputedQuantity   int64           `json:"imputed_quantity"`
	PricesImputed     int             `json:"prices_imputed" validate:"min=0"`
	ImputedUnitPrice  decimal.Decimal `json:"imputed_unit_price"`
	TotalsRecomputed  int             `json:"totals_recomputed" validate:"min=0"`
	DroppedNoDate     int             `json:"dropped_no_date" validate:"min=0"`
	RejectedCells     int             `json:"rejected_cells" validate:"min=0"`
	RejectedRows      int             `json:"rejected_rows" validate:"min=0"`
	MissingPayments   int             `json:"missing_payments" validate:"min=0"`
	MissingLocations  int             `json:"missing_locations" validate:"min=0"`
}

// Rejection represents one malformed cell or row excluded from repairs
// and aggregations. Row numbering is 1-based over data rows, header excluded.
type Rejection struct {
	Row           int    `json:"row" validate:"min=1"`
	TransactionID string `json:"transaction_id,omitempty"`
	Column        string `json:"column,omitempty"`
	RawValue      string `json:"raw_value,omitempty"`
	Reason        string `json:"reason" validate:"required"`
}

// RunSummary represents one cleaner run end to end. It is the shape of the
// run_summary.json artifact.
type RunSummary struct {
	RunID       string        `json:"run_id" validate:"required,uuid"`
	InputFile   string        `json:"input_file" validate:"required"`
	OutputFile  string        `json:"output_file" validate:"required"`
	StartedAt   time.Time     `json:"started_at" validate:"required"`
	FinishedAt  time.Time     `json:"finished_at" validate:"required"`
	DurationMS  int64         `json:"duration_ms" validate:"min=0"`
	Stats       CleaningStats `json:"stats"`
	Rejections  []Rejection   `json:"rejections,omitempty"`
	StageTimings []StageTiming `json:"stage_timings,omitempty"`
}

// StageTiming records how long one pipeline stage took.
type StageTiming struct {
	Stage      string `json:"stage" validate:"required"`
	DurationMS int64  `json:"duration_ms" validate:"min=0"`
	Status     string `json:"status" validate:"required,oneof=completed failed"`
}
