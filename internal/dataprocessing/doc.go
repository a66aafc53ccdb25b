// Package dataprocessing loads the raw café transaction table and runs the
// cleaning pipeline over it.
//
// # Architecture
//
// The package has two components:
//
// 1. Parser: reads the raw transaction CSV, applies the column-agnostic
// sentinel normalization (the UNKNOWN marker, the ERROR marker, and the
// empty string all mean missing) before any column-specific parsing, and
// collects malformed cells and rows into a rejection list instead of
// aborting the run.
//
// 2. Cleaner: repairs the columns in a fixed order — missing items become
// the literal UNKNOWN label, missing quantities take the pre-filter median,
// missing unit prices take the pre-filter mean, every total is recomputed
// from its components, payment method and location are preserved as loaded,
// and rows without a transaction date are dropped last.
//
// # Usage
//
// Basic load-and-clean example:
//
//	parser := dataprocessing.NewParser(logger)
//	parsed, err := parser.ParseFile(ctx, "cafe_sales.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cleaner := dataprocessing.NewCleaner(logger)
//	cleaned, stats := cleaner.Clean(ctx, parsed.Transactions)
//
// # Error Handling
//
// Missing data is the normal operating domain and never an error. The
// parser fails only on structural malformation (an unreadable input or a
// header missing a required column); everything else is reported per
// record in the rejection list and the run continues.
package dataprocessing
