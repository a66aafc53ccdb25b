package validation

import (
	"log/slog"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"cafecli/internal/errors"
	"cafecli/pkg/contracts/domain"
)

// RecordValidator checks cleaned transactions against the output contract:
// every row has an identifier, an item label, a positive integer quantity,
// positive amounts, and a calendar date.
type RecordValidator struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewRecordValidator creates a validator with decimal-aware struct rules.
func NewRecordValidator(logger *slog.Logger) (*RecordValidator, error) {
	if logger == nil {
		logger = slog.Default()
	}

	v := validator.New(validator.WithRequiredStructEnabled())

	// Expose decimal.Decimal to the tag engine as a float64 so numeric
	// comparisons work on it.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// dpositive: the decimal value is strictly greater than zero.
	if err := v.RegisterValidation("dpositive", func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() == reflect.Float64 && fl.Field().Float() > 0
	}); err != nil {
		return nil, errors.NewConfigError("failed to register dpositive rule", err)
	}

	return &RecordValidator{validate: v, logger: logger}, nil
}

// ValidateTransaction checks one cleaned transaction.
func (v *RecordValidator) ValidateTransaction(t domain.Transaction) error {
	if err := v.validate.Struct(t); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return errors.NewValidationError("transaction failed output contract").
				WithContext("transaction_id", t.ID).
				WithContext("field", first.Field()).
				WithContext("rule", first.Tag())
		}
		return errors.NewValidationError(err.Error())
	}
	return nil
}

// ValidateTransactions checks every cleaned transaction and returns the
// first violation. Cleaned output is expected to pass in full, so a failure
// here means a bug in the repair pipeline rather than bad input.
func (v *RecordValidator) ValidateTransactions(records []domain.Transaction) error {
	for i, t := range records {
		if err := v.ValidateTransaction(t); err != nil {
			v.logger.Error("cleaned transaction failed validation",
				slog.Int("index", i),
				slog.String("transaction_id", t.ID),
				slog.String("error", err.Error()))
			return err
		}
	}
	return nil
}
