package dataprocessing

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"cafecli/internal/errors"
	"cafecli/pkg/contracts/domain"
)

// Raw spellings that mean "missing" in every column of the source file.
const (
	SentinelUnknown = "UNKNOWN"
	SentinelError   = "ERROR"
)

// NormalizeCell collapses the three raw missing spellings (the unknown
// marker, the error marker, and the empty string) into a single missing
// state. It is applied to every cell before any column-specific parsing.
func NormalizeCell(raw string) (value string, missing bool) {
	value = strings.TrimSpace(raw)
	switch value {
	case "", SentinelUnknown, SentinelError:
		return "", true
	}
	return value, false
}

// ParseResult holds the outcome of loading one raw transaction file.
// Malformed cells are demoted to missing and recorded in Rejections;
// rows that cannot be identified at all are rejected whole.
type ParseResult struct {
	Transactions []domain.Transaction
	Rejections   []domain.Rejection
}

// CellRejections counts rejections of single malformed cells.
func (r *ParseResult) CellRejections() int {
	n := 0
	for _, rej := range r.Rejections {
		if rej.Column != "" {
			n++
		}
	}
	return n
}

// RowRejections counts rejections of whole rows.
func (r *ParseResult) RowRejections() int {
	return len(r.Rejections) - r.CellRejections()
}

// Parser loads raw café transaction CSVs into domain records.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new transaction parser.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// ParseFile reads and parses the raw transaction CSV at path.
func (p *Parser) ParseFile(ctx context.Context, path string) (*ParseResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to open input file %s", path), err)
	}
	defer file.Close()

	return p.Parse(ctx, file)
}

// Parse reads the raw transaction table from r. The header must contain
// every required column; a missing column is fatal and aborts before any
// row is processed. Per-row malformation is collected into the rejection
// list and parsing continues.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewParsingError("failed to read header row", err)
	}
	if len(header) > 0 {
		// Tolerate a UTF-8 BOM on the first header cell
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	indices := make(map[string]int, len(header))
	for i, col := range header {
		indices[strings.TrimSpace(col)] = i
	}

	var missingCols []string
	for _, col := range domain.CSVHeader() {
		if _, ok := indices[col]; !ok {
			missingCols = append(missingCols, col)
		}
	}
	if len(missingCols) > 0 {
		return nil, errors.NewParsingError("input header is missing required columns", nil).
			WithContext("missing_columns", strings.Join(missingCols, ", "))
	}

	result := &ParseResult{}
	row := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			result.Rejections = append(result.Rejections, domain.Rejection{
				Row:    row,
				Reason: fmt.Sprintf("unreadable row: %v", err),
			})
			continue
		}

		if len(record) < len(header) {
			result.Rejections = append(result.Rejections, domain.Rejection{
				Row:    row,
				Reason: fmt.Sprintf("expected %d fields, got %d", len(header), len(record)),
			})
			continue
		}

		cell := func(col string) string { return record[indices[col]] }

		id, idMissing := NormalizeCell(cell(domain.ColumnTransactionID))
		if idMissing {
			result.Rejections = append(result.Rejections, domain.Rejection{
				Row:      row,
				Column:   domain.ColumnTransactionID,
				RawValue: cell(domain.ColumnTransactionID),
				Reason:   "missing transaction id",
			})
			continue
		}

		t := domain.Transaction{ID: id}

		reject := func(column, raw, reason string) {
			result.Rejections = append(result.Rejections, domain.Rejection{
				Row:           row,
				TransactionID: id,
				Column:        column,
				RawValue:      raw,
				Reason:        reason,
			})
		}

		if v, miss := NormalizeCell(cell(domain.ColumnItem)); !miss {
			t.Item = v
		}

		if v, miss := NormalizeCell(cell(domain.ColumnQuantity)); !miss {
			q, err := strconv.ParseFloat(v, 64)
			switch {
			case err != nil:
				reject(domain.ColumnQuantity, v, "not a numeric quantity")
			case q <= 0 || q != math.Trunc(q):
				reject(domain.ColumnQuantity, v, "not a positive integer quantity")
			default:
				t.Quantity = int64(q)
			}
		}

		if v, miss := NormalizeCell(cell(domain.ColumnUnitPrice)); !miss {
			d, err := decimal.NewFromString(v)
			switch {
			case err != nil:
				reject(domain.ColumnUnitPrice, v, "not a numeric amount")
			case d.Sign() <= 0:
				reject(domain.ColumnUnitPrice, v, "not a positive amount")
			default:
				t.UnitPrice = d
			}
		}

		if v, miss := NormalizeCell(cell(domain.ColumnTotalSpent)); !miss {
			d, err := decimal.NewFromString(v)
			switch {
			case err != nil:
				reject(domain.ColumnTotalSpent, v, "not a numeric amount")
			case d.Sign() <= 0:
				reject(domain.ColumnTotalSpent, v, "not a positive amount")
			default:
				t.TotalSpent = d
			}
		}

		if v, miss := NormalizeCell(cell(domain.ColumnPaymentMethod)); !miss {
			t.PaymentMethod = v
		}
		if v, miss := NormalizeCell(cell(domain.ColumnLocation)); !miss {
			t.Location = v
		}

		if v, miss := NormalizeCell(cell(domain.ColumnDate)); !miss {
			d, err := time.Parse(domain.DateLayout, v)
			if err != nil {
				reject(domain.ColumnDate, v, "unparseable date")
			} else {
				t.Date = d
			}
		}

		result.Transactions = append(result.Transactions, t)
	}

	p.logger.InfoContext(ctx, "parsed raw transaction table",
		slog.Int("rows", row),
		slog.Int("transactions", len(result.Transactions)),
		slog.Int("rejections", len(result.Rejections)))

	return result, nil
}
