// Package exporter writes the cleaner's file artifacts.
//
// This package contains four main components:
//
// CSVWriter: core CSV writing functionality with support for headers,
// streaming, and UTF-8 BOM for Excel compatibility.
//
// Transaction export: streams the cleaned transaction table to CSV with
// the same header as the raw input.
//
// Rejection export: writes the per-run rejection log (row, transaction id,
// column, raw value, reason).
//
// Run summary and metrics: writes the run summary as indented JSON and
// snapshots the Prometheus registry into a textfile for a node-exporter
// textfile collector.
package exporter
