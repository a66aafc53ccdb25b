// Package files provides file system operations and discovery utilities
// for the café sales toolkit.
//
// This package contains two main components:
//
// Discovery: Provides file discovery operations such as finding raw
// transaction CSVs and files matching specific patterns, plus a helper for
// picking the latest CSV drop out of a directory.
//
// Manager: Provides basic file management operations such as copying files
// and ensuring directories exist. Relative paths are resolved against the
// application's data directory layout to keep the tools portable.
//
// Example usage:
//
//	// Create a discovery instance
//	discovery := files.NewDiscovery("/path/to/base")
//
//	// Pick the most recent raw drop
//	latest, err := discovery.LatestCSV("data/raw")
//
//	// Create a manager instance
//	manager := files.NewManager(paths)
//
//	// Check if file exists
//	if manager.FileExists("clean/cafe_sales_clean.csv") {
//	    // Process file
//	}
package files
