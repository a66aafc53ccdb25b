package sales

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"cafecli/internal/errors"
	"cafecli/pkg/contracts/domain"
)

// Unspecified is the report bucket for rows whose payment method or
// location was missing in the source. Those columns are never repaired, so
// the bucket surfaces the preserved missing values instead of hiding them.
const Unspecified = "(unspecified)"

// ItemSummary aggregates sales per product.
type ItemSummary struct {
	Item         string          `json:"item"`
	Known        bool            `json:"known"`
	Transactions int             `json:"transactions"`
	Units        int64           `json:"units"`
	Revenue      decimal.Decimal `json:"revenue"`
	AvgUnitPrice decimal.Decimal `json:"avg_unit_price"`
	RevenueShare float64         `json:"revenue_share_pct"`
}

// WeekdaySummary aggregates sales per weekday, rendered in calendar order
// Monday through Sunday.
type WeekdaySummary struct {
	Weekday      time.Weekday    `json:"-"`
	Name         string          `json:"weekday"`
	Transactions int             `json:"transactions"`
	Units        int64           `json:"units"`
	Revenue      decimal.Decimal `json:"revenue"`
	Peak         bool            `json:"peak"`
}

// MonthSummary aggregates sales per calendar month.
type MonthSummary struct {
	Month        time.Month      `json:"-"`
	Name         string          `json:"month"`
	Transactions int             `json:"transactions"`
	Units        int64           `json:"units"`
	Revenue      decimal.Decimal `json:"revenue"`
	Peak         bool            `json:"peak"`
}

// CategorySummary aggregates sales per payment method or location.
type CategorySummary struct {
	Name         string          `json:"name"`
	Transactions int             `json:"transactions"`
	Share        float64         `json:"share_pct"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// TreatStats tests the treat-purchase hypothesis: how much of the business
// is discretionary treat items (cake, cookie) versus staples.
type TreatStats struct {
	Transactions int             `json:"transactions"`
	Ratio        float64         `json:"ratio"`
	Revenue      decimal.Decimal `json:"revenue"`
	RevenueShare float64         `json:"revenue_share_pct"`
}

// Report is the full aggregate set over one cleaned transaction table.
type Report struct {
	GeneratedAt       time.Time       `json:"generated_at"`
	SourceFile        string          `json:"source_file"`
	TotalTransactions int             `json:"total_transactions"`
	TotalUnits        int64           `json:"total_units"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`

	Items     []ItemSummary     `json:"items"`
	Weekdays  []WeekdaySummary  `json:"weekdays"`
	Months    []MonthSummary    `json:"months"`
	Payments  []CategorySummary `json:"payment_methods"`
	Locations []CategorySummary `json:"locations"`
	Treats    TreatStats        `json:"treats"`
}

// Analyzer computes the sales report aggregations over cleaned records.
type Analyzer struct {
	logger  *slog.Logger
	catalog domain.Catalog
}

// NewAnalyzer creates a new sales analyzer. The catalog supplies the
// known-item split and the treat-item subset.
func NewAnalyzer(logger *slog.Logger, catalog domain.Catalog) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{logger: logger, catalog: catalog}
}

// Analyze computes the group-by aggregations over the cleaned collection.
// Every record is expected to satisfy the cleaning invariants (non-missing
// item, positive quantity, date present); payment method and location may
// be missing and surface in the Unspecified bucket.
func (a *Analyzer) Analyze(ctx context.Context, records []domain.Transaction, sourceFile string) (*Report, error) {
	if len(records) == 0 {
		return nil, errors.NewValidationError("no transactions to analyze")
	}

	report := &Report{
		GeneratedAt:       time.Now(),
		SourceFile:        sourceFile,
		TotalTransactions: len(records),
	}

	items := make(map[string]*bucket)
	weekdays := make(map[time.Weekday]*bucket)
	months := make(map[time.Month]*bucket)
	payments := make(map[string]*bucket)
	locations := make(map[string]*bucket)

	accumulate := func(m map[string]*bucket, key string, t domain.Transaction) {
		agg := m[key]
		if agg == nil {
			agg = &bucket{}
			m[key] = agg
		}
		agg.transactions++
		agg.units += t.Quantity
		agg.revenue = agg.revenue.Add(t.TotalSpent)
	}

	for _, t := range records {
		report.TotalUnits += t.Quantity
		report.TotalRevenue = report.TotalRevenue.Add(t.TotalSpent)

		accumulate(items, t.Item, t)

		wd := weekdays[t.Weekday()]
		if wd == nil {
			wd = &bucket{}
			weekdays[t.Weekday()] = wd
		}
		wd.transactions++
		wd.units += t.Quantity
		wd.revenue = wd.revenue.Add(t.TotalSpent)

		mo := months[t.Month()]
		if mo == nil {
			mo = &bucket{}
			months[t.Month()] = mo
		}
		mo.transactions++
		mo.units += t.Quantity
		mo.revenue = mo.revenue.Add(t.TotalSpent)

		payment := t.PaymentMethod
		if payment == "" {
			payment = Unspecified
		}
		accumulate(payments, payment, t)

		location := t.Location
		if location == "" {
			location = Unspecified
		}
		accumulate(locations, location, t)

		if a.catalog.IsTreat(t.Item) {
			report.Treats.Transactions++
			report.Treats.Revenue = report.Treats.Revenue.Add(t.TotalSpent)
		}
	}

	totalRevenue := report.TotalRevenue.InexactFloat64()

	for name, agg := range items {
		summary := ItemSummary{
			Item:         name,
			Known:        a.catalog.IsKnownItem(name),
			Transactions: agg.transactions,
			Units:        agg.units,
			Revenue:      agg.revenue,
		}
		if agg.units > 0 {
			summary.AvgUnitPrice = agg.revenue.Div(decimal.NewFromInt(agg.units)).Round(4)
		}
		if totalRevenue > 0 {
			summary.RevenueShare = agg.revenue.InexactFloat64() / totalRevenue * 100
		}
		report.Items = append(report.Items, summary)
	}
	sort.Slice(report.Items, func(i, j int) bool {
		if !report.Items[i].Revenue.Equal(report.Items[j].Revenue) {
			return report.Items[i].Revenue.GreaterThan(report.Items[j].Revenue)
		}
		return report.Items[i].Item < report.Items[j].Item
	})

	// Calendar order Monday..Sunday, with the peak weekday flagged
	calendarWeek := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	peakWeekday, peakRevenue := time.Monday, decimal.Decimal{}
	for _, wd := range calendarWeek {
		agg := weekdays[wd]
		summary := WeekdaySummary{Weekday: wd, Name: wd.String()}
		if agg != nil {
			summary.Transactions = agg.transactions
			summary.Units = agg.units
			summary.Revenue = agg.revenue
			if agg.revenue.GreaterThan(peakRevenue) {
				peakRevenue = agg.revenue
				peakWeekday = wd
			}
		}
		report.Weekdays = append(report.Weekdays, summary)
	}
	for i := range report.Weekdays {
		if report.Weekdays[i].Weekday == peakWeekday && report.Weekdays[i].Transactions > 0 {
			report.Weekdays[i].Peak = true
		}
	}

	peakMonth, peakRevenue := time.January, decimal.Decimal{}
	for month := time.January; month <= time.December; month++ {
		agg := months[month]
		summary := MonthSummary{Month: month, Name: month.String()}
		if agg != nil {
			summary.Transactions = agg.transactions
			summary.Units = agg.units
			summary.Revenue = agg.revenue
			if agg.revenue.GreaterThan(peakRevenue) {
				peakRevenue = agg.revenue
				peakMonth = month
			}
		}
		report.Months = append(report.Months, summary)
	}
	for i := range report.Months {
		if report.Months[i].Month == peakMonth && report.Months[i].Transactions > 0 {
			report.Months[i].Peak = true
		}
	}

	report.Payments = categorize(payments, len(records))
	report.Locations = categorize(locations, len(records))

	report.Treats.Ratio = float64(report.Treats.Transactions) / float64(len(records))
	if totalRevenue > 0 {
		report.Treats.RevenueShare = report.Treats.Revenue.InexactFloat64() / totalRevenue * 100
	}

	a.logger.InfoContext(ctx, "sales aggregation complete",
		slog.Int("transactions", report.TotalTransactions),
		slog.Int64("units", report.TotalUnits),
		slog.String("revenue", report.TotalRevenue.String()),
		slog.Int("items", len(report.Items)))

	return report, nil
}

// bucket accumulates one group-by cell.
type bucket struct {
	transactions int
	units        int64
	revenue      decimal.Decimal
}

// categorize turns a category aggregation map into sorted summaries with
// row shares, forcing the unspecified bucket last.
func categorize(m map[string]*bucket, totalRows int) []CategorySummary {
	out := make([]CategorySummary, 0, len(m))
	for name, agg := range m {
		summary := CategorySummary{
			Name:         name,
			Transactions: agg.transactions,
			Revenue:      agg.revenue,
		}
		if totalRows > 0 {
			summary.Share = float64(agg.transactions) / float64(totalRows) * 100
		}
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool {
		if (out[i].Name == Unspecified) != (out[j].Name == Unspecified) {
			return out[j].Name == Unspecified
		}
		if out[i].Transactions != out[j].Transactions {
			return out[i].Transactions > out[j].Transactions
		}
		return out[i].Name < out[j].Name
	})
	return out
}
