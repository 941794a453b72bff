package utils

import (
	"github.com/shopspring/decimal"
)

// MoneyPrecision is the number of decimal places rent amounts are stored with.
const MoneyPrecision = 2

// FormatMoney renders an amount with two decimals, e.g. 1500 -> "1500.00".
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(MoneyPrecision)
}

// FormatWithPrecision formats an amount with the given precision
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
