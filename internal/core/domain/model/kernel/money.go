package kernel

import (
	"fmt"

	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places amounts are stored with.
const MoneyPlaces = 2

// Round2 rounds half away from zero to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// ValidateNonNegative reports a ValueIsInvalidError naming param when d < 0.
func ValidateNonNegative(param string, d decimal.Decimal) error {
	if d.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%s is negative", d.String()))
	}
	return nil
}

// ValidatePositive reports a ValueIsInvalidError naming param when d <= 0.
func ValidatePositive(param string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%s is not greater than 0", d.String()))
	}
	return nil
}
