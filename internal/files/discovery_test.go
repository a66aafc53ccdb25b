package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiscovery(t *testing.T) {
	discovery := NewDiscovery("/base/path")
	require.NotNil(t, discovery)
	assert.Equal(t, "/base/path", discovery.basePath)
}

func TestFindCSVFiles(t *testing.T) {
	tempDir := t.TempDir()

	// Mix of CSVs and other files
	testFiles := []string{
		"cafe_sales.csv",
		"cafe_sales_2023.CSV",
		"notes.txt",
		"report.xlsx",
	}
	for _, name := range testFiles {
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, name), []byte("test"), 0644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "archive"), 0755))

	discovery := NewDiscovery(tempDir)
	found, err := discovery.FindCSVFiles(tempDir)
	require.NoError(t, err)
	require.Len(t, found, 2)

	names := []string{found[0].Name, found[1].Name}
	assert.Contains(t, names, "cafe_sales.csv")
	assert.Contains(t, names, "cafe_sales_2023.CSV")
	for _, f := range found {
		assert.False(t, f.IsDir)
		assert.NotZero(t, f.ModTime)
	}
}

func TestFindCSVFiles_RelativeDir(t *testing.T) {
	tempDir := t.TempDir()
	rawDir := filepath.Join(tempDir, "data", "raw")
	require.NoError(t, os.MkdirAll(rawDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(rawDir, "drop.csv"), []byte("test"), 0644))

	discovery := NewDiscovery(tempDir)
	found, err := discovery.FindCSVFiles(filepath.Join("data", "raw"))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "drop.csv", found[0].Name)
}

func TestFindCSVFiles_MissingDir(t *testing.T) {
	discovery := NewDiscovery(t.TempDir())
	_, err := discovery.FindCSVFiles("no/such/dir")
	assert.Error(t, err)
}

func TestFindFilesByPattern(t *testing.T) {
	tempDir := t.TempDir()

	for _, name := range []string{
		"sales_insights_2023-06-15.csv",
		"sales_insights_2023-06-16.csv",
		"sales_report_2023-06-15.xlsx",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, name), []byte("test"), 0644))
	}

	discovery := NewDiscovery(tempDir)

	insights, err := discovery.FindFilesByPattern(tempDir, "sales_insights_*.csv")
	require.NoError(t, err)
	assert.Len(t, insights, 2)

	workbooks, err := discovery.FindFilesByPattern(tempDir, "*.xlsx")
	require.NoError(t, err)
	assert.Len(t, workbooks, 1)

	none, err := discovery.FindFilesByPattern(tempDir, "*.json")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLatestCSV(t *testing.T) {
	tempDir := t.TempDir()

	older := filepath.Join(tempDir, "older.csv")
	newer := filepath.Join(tempDir, "newer.csv")
	require.NoError(t, os.WriteFile(older, []byte("test"), 0644))
	require.NoError(t, os.WriteFile(newer, []byte("test"), 0644))

	// Push modification times apart; filesystem timestamps may be coarse
	now := time.Now()
	require.NoError(t, os.Chtimes(older, now.Add(-time.Hour), now.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(newer, now, now))

	discovery := NewDiscovery(tempDir)
	latest, err := discovery.LatestCSV(tempDir)
	require.NoError(t, err)
	assert.Equal(t, "newer.csv", latest.Name)
}

func TestLatestCSV_EmptyDir(t *testing.T) {
	tempDir := t.TempDir()
	discovery := NewDiscovery(tempDir)
	_, err := discovery.LatestCSV(tempDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no CSV files")
}

func TestGetLatestFile(t *testing.T) {
	now := time.Now()
	files := []FileInfo{
		{Name: "a.csv", ModTime: now.Add(-2 * time.Hour)},
		{Name: "b.csv", ModTime: now},
		{Name: "c.csv", ModTime: now.Add(-time.Hour)},
	}

	latest, ok := GetLatestFile(files)
	require.True(t, ok)
	assert.Equal(t, "b.csv", latest.Name)

	_, ok = GetLatestFile(nil)
	assert.False(t, ok)
}
