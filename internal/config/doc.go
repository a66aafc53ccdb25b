// Package config provides centralized configuration management for the café
// sales toolkit. It handles loading configuration from multiple sources,
// validation, and provides a type-safe API for accessing configuration values
// throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration files (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern CAFE_* for namespacing:
//
//	CAFE_CLEANING_INPUT_FILE=data/raw/dirty_cafe_sales.csv
//	CAFE_LOGGING_LEVEL=debug
//	CAFE_REPORT_PRECISION=2
//	CAFE_PATHS_DATA_DIR=data
//
// # Path Management
//
// The package provides centralized path management through the Paths type,
// which handles all file system paths relative to the executable location:
//
//	paths, err := config.GetPaths()
//	insightsPath := paths.GetInsightsCSVPath(time.Now())
//	logPath := paths.GetLogPath("cleaner.log")
//
// # Catalog
//
// The closed categorical sets of the transaction table (items, treat items,
// payment methods, locations) load from catalog.yaml next to the executable;
// when the file is absent, the reference-dataset catalog is used.
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
