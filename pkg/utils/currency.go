package utils

import (
	"strconv"

	"crewlink-service/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// DefaultRates converts one unit of each currency to INR
var DefaultRates = map[entity.Currency]decimal.Decimal{
	entity.CurrencyUSD: decimal.RequireFromString("83.4"),
	entity.CurrencyEUR: decimal.RequireFromString("90.2"),
	entity.CurrencySGD: decimal.RequireFromString("61.5"),
	entity.CurrencyINR: decimal.NewFromInt(1),
}

// ConvertToINR returns amount × rate rounded to the nearest rupee.
// Codes missing from rates convert at 1.
func ConvertToINR(amount float64, currency entity.Currency, rates map[entity.Currency]decimal.Decimal) int64 {
	rate, ok := rates[currency]
	if !ok {
		rate = decimal.NewFromInt(1)
	}
	return decimal.NewFromFloat(amount).Mul(rate).Round(0).IntPart()
}

// FormatINR renders a rupee amount with Indian digit grouping, e.g. 123456 -> "₹1,23,456"
func FormatINR(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	if len(digits) <= 3 {
		return sign + "₹" + digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	out := sign + "₹"
	for _, g := range groups {
		out += g + ","
	}
	return out + tail
}
