package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafecli/internal/config"
	"cafecli/internal/infrastructure"
)

const cleanedFixture = `Transaction ID,Item,Quantity,Price Per Unit,Total Spent,Payment Method,Location,Transaction Date
TXN_1,Coffee,2,2,4,Cash,In-store,2023-06-12
TXN_2,Cake,1,3,3,Credit Card,Takeaway,2023-06-13
TXN_3,UNKNOWN,3,1.75,5.25,,,2023-06-14
`

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	code := run([]string{"-version"}, &out)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Cafe Sales Toolkit")
}

func TestRun_WritesAllArtifacts(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	defer infrastructure.ResetLoggerForTesting()

	baseDir := t.TempDir()
	paths := config.PathsIn(baseDir)
	require.NoError(t, paths.EnsureDirectories())
	require.NoError(t, os.WriteFile(paths.CleanCSV, []byte(cleanedFixture), 0644))

	var out bytes.Buffer
	code := run([]string{"-dir", baseDir, "-precision", "2"}, &out)
	require.Equal(t, 0, code, out.String())

	today := time.Now()
	assert.FileExists(t, paths.GetInsightsCSVPath(today))
	assert.FileExists(t, paths.GetWorkbookPath(today))
	assert.FileExists(t, paths.GetReportJSONPath(today))

	console := out.String()
	assert.Contains(t, console, "CAFE SALES SUMMARY")
	assert.Contains(t, console, "Coffee")
}

func TestRun_MissingCleanedCSV(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	defer infrastructure.ResetLoggerForTesting()

	baseDir := t.TempDir()
	var out bytes.Buffer
	code := run([]string{"-dir", baseDir, "-in", filepath.Join(baseDir, "nope.csv")}, &out)
	assert.Equal(t, 1, code)
}
