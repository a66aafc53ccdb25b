package validation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafecli/pkg/contracts/domain"
)

func cleanTransaction() domain.Transaction {
	price := decimal.RequireFromString("2.50")
	return domain.Transaction{
		ID:            "TXN_1000001",
		Item:          "Coffee",
		Quantity:      2,
		UnitPrice:     price,
		TotalSpent:    price.Mul(decimal.NewFromInt(2)),
		PaymentMethod: "Cash",
		Location:      "In-store",
		Date:          time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestRecordValidator_ValidTransaction(t *testing.T) {
	v, err := NewRecordValidator(nil)
	require.NoError(t, err)
	assert.NoError(t, v.ValidateTransaction(cleanTransaction()))
}

func TestRecordValidator_UnknownItemIsValid(t *testing.T) {
	v, err := NewRecordValidator(nil)
	require.NoError(t, err)

	// The UNKNOWN label is a real value, not a missing state
	tx := cleanTransaction()
	tx.Item = domain.UnknownItem
	assert.NoError(t, v.ValidateTransaction(tx))
}

func TestRecordValidator_MissingCategoricalsAreValid(t *testing.T) {
	v, err := NewRecordValidator(nil)
	require.NoError(t, err)

	// Payment method and location are never repaired and may stay empty
	tx := cleanTransaction()
	tx.PaymentMethod = ""
	tx.Location = ""
	assert.NoError(t, v.ValidateTransaction(tx))
}

func TestRecordValidator_Violations(t *testing.T) {
	v, err := NewRecordValidator(nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*domain.Transaction)
	}{
		{"missing id", func(tx *domain.Transaction) { tx.ID = "" }},
		{"missing item", func(tx *domain.Transaction) { tx.Item = "" }},
		{"zero quantity", func(tx *domain.Transaction) { tx.Quantity = 0 }},
		{"zero unit price", func(tx *domain.Transaction) { tx.UnitPrice = decimal.Zero }},
		{"negative unit price", func(tx *domain.Transaction) { tx.UnitPrice = decimal.NewFromInt(-1) }},
		{"zero total", func(tx *domain.Transaction) { tx.TotalSpent = decimal.Zero }},
		{"missing date", func(tx *domain.Transaction) { tx.Date = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := cleanTransaction()
			tt.mutate(&tx)
			assert.Error(t, v.ValidateTransaction(tx))
		})
	}
}

func TestRecordValidator_ValidateTransactions(t *testing.T) {
	v, err := NewRecordValidator(nil)
	require.NoError(t, err)

	good := cleanTransaction()
	bad := cleanTransaction()
	bad.ID = "TXN_1000002"
	bad.Quantity = 0

	require.NoError(t, v.ValidateTransactions([]domain.Transaction{good}))

	err = v.ValidateTransactions([]domain.Transaction{good, bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output contract")
}
