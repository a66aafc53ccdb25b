package sales

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"cafecli/internal/errors"
)

// WriteWorkbook writes the report as an Excel workbook: an overview sheet
// plus one sheet per aggregation. Header rows are bold; numeric cells are
// written as numbers so spreadsheet formulas work on them.
func WriteWorkbook(report *Report, outputPath string, opts RenderOptions) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return errors.NewStorageError("failed to create reports directory", err).
			WithContext("path", outputPath)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	writeSheet := func(name string, header []string, rows [][]interface{}) error {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
		for col, title := range header {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(name, cell, title); err != nil {
				return err
			}
			if err := f.SetCellStyle(name, cell, cell, headerStyle); err != nil {
				return err
			}
		}
		for r, row := range rows {
			for c, value := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+2)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(name, cell, value); err != nil {
					return err
				}
			}
		}
		return nil
	}

	overview := [][]interface{}{
		{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Source", report.SourceFile},
		{"Transactions", report.TotalTransactions},
		{"Units Sold", report.TotalUnits},
		{"Total Revenue", report.TotalRevenue.InexactFloat64()},
		{"Treat Ratio", report.Treats.Ratio},
	}
	if err := writeSheet("Overview", []string{"Metric", "Value"}, overview); err != nil {
		return errors.NewStorageError("failed to write overview sheet", err)
	}

	itemRows := make([][]interface{}, 0, len(report.Items))
	for _, item := range report.Items {
		itemRows = append(itemRows, []interface{}{
			item.Item, item.Transactions, item.Units,
			item.Revenue.InexactFloat64(), item.AvgUnitPrice.InexactFloat64(),
			item.RevenueShare,
		})
	}
	if err := writeSheet("Items",
		[]string{"Item", "Transactions", "Units", "Revenue", "Avg Unit Price", "Revenue Share %"},
		itemRows); err != nil {
		return errors.NewStorageError("failed to write items sheet", err)
	}

	weekdayRows := make([][]interface{}, 0, len(report.Weekdays))
	for _, day := range report.Weekdays {
		weekdayRows = append(weekdayRows, []interface{}{
			day.Name, day.Transactions, day.Units, day.Revenue.InexactFloat64(), day.Peak,
		})
	}
	if err := writeSheet("Weekdays",
		[]string{"Weekday", "Transactions", "Units", "Revenue", "Peak"},
		weekdayRows); err != nil {
		return errors.NewStorageError("failed to write weekdays sheet", err)
	}

	monthRows := make([][]interface{}, 0, len(report.Months))
	for _, month := range report.Months {
		monthRows = append(monthRows, []interface{}{
			month.Name, month.Transactions, month.Units, month.Revenue.InexactFloat64(), month.Peak,
		})
	}
	if err := writeSheet("Months",
		[]string{"Month", "Transactions", "Units", "Revenue", "Peak"},
		monthRows); err != nil {
		return errors.NewStorageError("failed to write months sheet", err)
	}

	paymentRows := make([][]interface{}, 0, len(report.Payments))
	for _, payment := range report.Payments {
		paymentRows = append(paymentRows, []interface{}{
			payment.Name, payment.Transactions, payment.Share, payment.Revenue.InexactFloat64(),
		})
	}
	if err := writeSheet("Payments",
		[]string{"Method", "Transactions", "Share %", "Revenue"},
		paymentRows); err != nil {
		return errors.NewStorageError("failed to write payments sheet", err)
	}

	locationRows := make([][]interface{}, 0, len(report.Locations))
	for _, location := range report.Locations {
		locationRows = append(locationRows, []interface{}{
			location.Name, location.Transactions, location.Share, location.Revenue.InexactFloat64(),
		})
	}
	if err := writeSheet("Locations",
		[]string{"Location", "Transactions", "Share %", "Revenue"},
		locationRows); err != nil {
		return errors.NewStorageError("failed to write locations sheet", err)
	}

	treatRows := [][]interface{}{
		{"Treat Transactions", report.Treats.Transactions},
		{"Treat Ratio", report.Treats.Ratio},
		{"Treat Revenue", report.Treats.Revenue.InexactFloat64()},
		{"Treat Revenue Share %", report.Treats.RevenueShare},
	}
	if err := writeSheet("Treats", []string{"Metric", "Value"}, treatRows); err != nil {
		return errors.NewStorageError("failed to write treats sheet", err)
	}

	// The default sheet is replaced by Overview
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}
	index, err := f.GetSheetIndex("Overview")
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	if err := f.SaveAs(outputPath); err != nil {
		return errors.NewStorageError("failed to save workbook", err).
			WithContext("path", outputPath)
	}
	return nil
}
