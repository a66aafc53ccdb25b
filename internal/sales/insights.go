package sales

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopspring/decimal"

	"cafecli/internal/errors"
)

// RenderOptions carries the explicit formatting parameters for report
// rendering. Nothing in this package reads ambient display state.
type RenderOptions struct {
	Precision   int // decimal places for currency and percentages
	ColumnWidth int // console table column width
	TopItems    int // rows in the TOP PRODUCTS console section
}

// DefaultRenderOptions returns the rendering defaults used when the
// configuration does not override them.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Precision:   2,
		ColumnWidth: 14,
		TopItems:    5,
	}
}

// WriteInsightsCSV writes the narrative business-intelligence report as a
// sectioned CSV: metadata rows, section headers, an observation column per
// row, and trailing reading guidelines.
func WriteInsightsCSV(report *Report, outputPath string, opts RenderOptions) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return errors.NewStorageError("failed to create reports directory", err).
			WithContext("path", outputPath)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return errors.NewStorageError("failed to create insights CSV", err).
			WithContext("path", outputPath)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	money := func(d decimal.Decimal) string {
		return d.StringFixed(int32(opts.Precision))
	}
	pct := func(f float64) string {
		return fmt.Sprintf("%.*f%%", opts.Precision, f)
	}

	// Metadata section
	writer.Write([]string{"CAFE SALES INSIGHTS REPORT"})
	writer.Write([]string{"Generated:", report.GeneratedAt.Format("2006-01-02 15:04:05")})
	writer.Write([]string{"Source:", report.SourceFile})
	writer.Write([]string{"Transactions:", strconv.Itoa(report.TotalTransactions)})
	writer.Write([]string{"Units Sold:", strconv.FormatInt(report.TotalUnits, 10)})
	writer.Write([]string{"Total Revenue:", money(report.TotalRevenue)})
	writer.Write([]string{""})

	// Top products
	writer.Write([]string{"TOP PRODUCTS"})
	writer.Write([]string{"Item", "Transactions", "Units", "Revenue", "Avg Unit Price", "Revenue Share", "Observation"})
	for i, item := range report.Items {
		writer.Write([]string{
			item.Item,
			strconv.Itoa(item.Transactions),
			strconv.FormatInt(item.Units, 10),
			money(item.Revenue),
			money(item.AvgUnitPrice),
			pct(item.RevenueShare),
			itemObservation(item, i),
		})
	}
	writer.Write([]string{""})

	// Peak sales times
	writer.Write([]string{"PEAK SALES TIMES"})
	writer.Write([]string{"Weekday", "Transactions", "Units", "Revenue", "Observation"})
	for _, day := range report.Weekdays {
		observation := ""
		if day.Peak {
			observation = "Peak weekday, schedule maximum staffing"
		}
		writer.Write([]string{
			day.Name,
			strconv.Itoa(day.Transactions),
			strconv.FormatInt(day.Units, 10),
			money(day.Revenue),
			observation,
		})
	}
	writer.Write([]string{"Month", "Transactions", "Units", "Revenue", "Observation"})
	for _, month := range report.Months {
		observation := ""
		if month.Peak {
			observation = "Peak month"
		}
		writer.Write([]string{
			month.Name,
			strconv.Itoa(month.Transactions),
			strconv.FormatInt(month.Units, 10),
			money(month.Revenue),
			observation,
		})
	}
	writer.Write([]string{""})

	// Payment methods
	writer.Write([]string{"PAYMENT METHODS"})
	writer.Write([]string{"Method", "Transactions", "Share", "Revenue", "Observation"})
	for i, payment := range report.Payments {
		writer.Write([]string{
			payment.Name,
			strconv.Itoa(payment.Transactions),
			pct(payment.Share),
			money(payment.Revenue),
			categoryObservation(payment, i, "payment method"),
		})
	}
	writer.Write([]string{""})

	// Locations
	writer.Write([]string{"LOCATIONS"})
	writer.Write([]string{"Location", "Transactions", "Share", "Revenue", "Observation"})
	for i, location := range report.Locations {
		writer.Write([]string{
			location.Name,
			strconv.Itoa(location.Transactions),
			pct(location.Share),
			money(location.Revenue),
			categoryObservation(location, i, "location"),
		})
	}
	writer.Write([]string{""})

	// Treat purchases
	writer.Write([]string{"TREAT PURCHASES"})
	writer.Write([]string{"Treat Transactions:", strconv.Itoa(report.Treats.Transactions)})
	writer.Write([]string{"Treat Ratio:", pct(report.Treats.Ratio * 100)})
	writer.Write([]string{"Treat Revenue Share:", pct(report.Treats.RevenueShare)})
	writer.Write([]string{""})

	// Reading guidelines
	writer.Write([]string{"READING GUIDELINES"})
	writer.Write([]string{"Revenue Share:", "percentage of total revenue contributed by the row"})
	writer.Write([]string{Unspecified + ":", "rows whose payment method or location was missing in the source; these columns are preserved as-is, never repaired"})
	writer.Write([]string{"Treat Ratio:", "share of transactions containing a treat item"})
	writer.Write([]string{"UNKNOWN:", "transactions whose item was not recorded at the till; tracked separately as an operational signal"})

	return writer.Error()
}

// itemObservation builds the narrative note for one product row.
func itemObservation(item ItemSummary, rank int) string {
	if !item.Known {
		return "Operational gap: item not recorded at point of sale"
	}
	if rank == 0 {
		return "Top seller by revenue"
	}
	if item.RevenueShare < 5 {
		return "Minor contributor, review shelf placement"
	}
	return ""
}

// categoryObservation builds the narrative note for one payment or
// location row.
func categoryObservation(c CategorySummary, rank int, kind string) string {
	if c.Name == Unspecified {
		return fmt.Sprintf("Transactions with no recorded %s", kind)
	}
	if rank == 0 {
		return fmt.Sprintf("Most used %s", kind)
	}
	return ""
}
