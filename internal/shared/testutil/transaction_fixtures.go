package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleRawCSV is a small raw transaction table that exercises every repair
// path: a sentinel item, a missing quantity, a missing price, a missing
// date, and a malformed quantity cell.
//
// Derived values, for assertions: quantities present are {2, 1, 3} (median
// 2), unit prices present are {2.00, 1.00, 1.00, 3.00} (mean 1.75), TXN_4
// is dropped for the missing date, and TXN_5's quantity is rejected.
const SampleRawCSV = `Transaction ID,Item,Quantity,Price Per Unit,Total Spent,Payment Method,Location,Transaction Date
TXN_1,Coffee,2,2.00,4.00,Cash,In-store,2023-06-15
TXN_2,ERROR,1,1.00,1.00,Credit Card,Takeaway,2023-06-16
TXN_3,Cookie,UNKNOWN,1.00,3.00,,,2023-06-17
TXN_4,Tea,3,,4.50,Digital Wallet,In-store,
TXN_5,Cake,two,3.00,3.00,Cash,In-store,2023-06-18
`

// WriteSampleRawCSV writes SampleRawCSV into dir and returns its path.
func WriteSampleRawCSV(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "cafe_sales.csv")
	if err := os.WriteFile(path, []byte(SampleRawCSV), 0644); err != nil {
		t.Fatalf("failed to write sample raw CSV: %v", err)
	}
	return path
}
