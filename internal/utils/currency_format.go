package utils

import (
	"github.com/SscSPs/library_circulation/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// FormatAmount renders a fine amount with the fixed two decimal places used in responses.
// Example: 5.5 returns "5.50"
func FormatAmount(amount decimal.Decimal) string {
	return FormatWithPrecision(amount, accounting.AmountPlaces)
}

// FormatWithPrecision formats an amount with exactly the given number of decimal places.
// Example: amount 12.3456 with precision 2 returns "12.35"
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}
