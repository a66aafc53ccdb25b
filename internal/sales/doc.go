// Package sales computes the descriptive business-intelligence report over
// a cleaned transaction table: per-item, per-weekday, per-month, payment
// and location aggregations, plus the treat-purchase ratio. It renders the
// results as a sectioned narrative CSV, an Excel workbook, and a console
// summary table, all with explicit formatting parameters.
package sales
