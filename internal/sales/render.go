package sales

import (
	"fmt"
	"io"
	"strings"
)

// RenderConsoleSummary prints a human-readable summary table of the report.
// Column width and float precision come from the explicit options, never
// from process-wide display state.
func RenderConsoleSummary(w io.Writer, report *Report, opts RenderOptions) {
	width := opts.ColumnWidth
	precision := opts.Precision

	fmt.Fprintf(w, "\n=== CAFE SALES SUMMARY (%s) ===\n", report.GeneratedAt.Format("2006-01-02"))
	fmt.Fprintf(w, "Transactions: %d   Units: %d   Revenue: %s\n\n",
		report.TotalTransactions, report.TotalUnits,
		report.TotalRevenue.StringFixed(int32(precision)))

	fmt.Fprintf(w, "--- TOP %d PRODUCTS ---\n", opts.TopItems)
	fmt.Fprintf(w, "%-*s | %*s | %*s | %*s\n",
		width, "Item", width, "Units", width, "Revenue", width, "Share")
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 4*width+9))
	for i, item := range report.Items {
		if i >= opts.TopItems {
			break
		}
		fmt.Fprintf(w, "%-*s | %*d | %*s | %*s\n",
			width, item.Item,
			width, item.Units,
			width, item.Revenue.StringFixed(int32(precision)),
			width, fmt.Sprintf("%.*f%%", precision, item.RevenueShare))
	}

	fmt.Fprintf(w, "\n--- PEAK SALES TIMES ---\n")
	for _, day := range report.Weekdays {
		if day.Peak {
			fmt.Fprintf(w, "Peak weekday: %s (%d transactions, %s revenue)\n",
				day.Name, day.Transactions, day.Revenue.StringFixed(int32(precision)))
		}
	}
	for _, month := range report.Months {
		if month.Peak {
			fmt.Fprintf(w, "Peak month:   %s (%d transactions, %s revenue)\n",
				month.Name, month.Transactions, month.Revenue.StringFixed(int32(precision)))
		}
	}

	fmt.Fprintf(w, "\n--- PAYMENT METHODS ---\n")
	for _, payment := range report.Payments {
		fmt.Fprintf(w, "%-*s %.*f%%\n", width, payment.Name, precision, payment.Share)
	}

	fmt.Fprintf(w, "\n--- LOCATIONS ---\n")
	for _, location := range report.Locations {
		fmt.Fprintf(w, "%-*s %.*f%%\n", width, location.Name, precision, location.Share)
	}

	fmt.Fprintf(w, "\n--- TREAT PURCHASES ---\n")
	fmt.Fprintf(w, "%d of %d transactions (%.*f%%) were treats, %.*f%% of revenue\n",
		report.Treats.Transactions, report.TotalTransactions,
		precision, report.Treats.Ratio*100,
		precision, report.Treats.RevenueShare)
}
