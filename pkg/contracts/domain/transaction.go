package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used by the transaction table.
const DateLayout = "2006-01-02"

// UnknownItem is the literal label assigned to records whose item is missing.
// It is a real output value, distinct from the missing state.
const UnknownItem = "UNKNOWN"

// Column names of the transaction table header, in file order.
const (
	ColumnTransactionID = "Transaction ID"
	ColumnItem          = "Item"
	ColumnQuantity      = "Quantity"
	ColumnUnitPrice     = "Price Per Unit"
	ColumnTotalSpent    = "Total Spent"
	ColumnPaymentMethod = "Payment Method"
	ColumnLocation      = "Location"
	ColumnDate          = "Transaction Date"
)

// CSVHeader returns the transaction table header in file order.
func CSVHeader() []string {
	return []string{
		ColumnTransactionID,
		ColumnItem,
		ColumnQuantity,
		ColumnUnitPrice,
		ColumnTotalSpent,
		ColumnPaymentMethod,
		ColumnLocation,
		ColumnDate,
	}
}

// Transaction represents a single café sale.
//
// Missing values are represented by zero values, which are unambiguous in
// this domain: valid quantities are >= 1, valid prices are > 0, and valid
// dates are non-zero. PaymentMethod and Location keep the empty string for
// missing because those columns are never repaired.
type Transaction struct {
	ID            string          `json:"id" validate:"required"`
	Item          string          `json:"item" validate:"required"`
	Quantity      int64           `json:"quantity" validate:"required,min=1"`
	UnitPrice     decimal.Decimal `json:"unit_price" validate:"dpositive"`
	TotalSpent    decimal.Decimal `json:"total_spent" validate:"dpositive"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Location      string          `json:"location,omitempty"`
	Date          time.Time       `json:"transaction_date" validate:"required"`
}

// HasDate reports whether the transaction carries a calendar date.
func (t Transaction) HasDate() bool {
	return !t.Date.IsZero()
}

// Weekday returns the weekday of the transaction date.
// Only meaningful when HasDate is true.
func (t Transaction) Weekday() time.Weekday {
	return t.Date.Weekday()
}

// Month returns the calendar month of the transaction date.
// Only meaningful when HasDate is true.
func (t Transaction) Month() time.Month {
	return t.Date.Month()
}

// CSVRow renders the transaction in the transaction table column order.
// Missing values render as the empty string; decimals render without
// padding so re-parsing yields the same value.
func (t Transaction) CSVRow() []string {
	quantity := ""
	if t.Quantity != 0 {
		quantity = strconv.FormatInt(t.Quantity, 10)
	}
	unitPrice := ""
	if !t.UnitPrice.IsZero() {
		unitPrice = t.UnitPrice.String()
	}
	totalSpent := ""
	if !t.TotalSpent.IsZero() {
		totalSpent = t.TotalSpent.String()
	}
	date := ""
	if t.HasDate() {
		date = t.Date.Format(DateLayout)
	}

	return []string{
		t.ID,
		t.Item,
		quantity,
		unitPrice,
		totalSpent,
		t.PaymentMethod,
		t.Location,
		date,
	}
}
