package entity

import "time"

// Currency is an ISO currency code accepted for expenses
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencySGD Currency = "SGD"
	CurrencyINR Currency = "INR"
)

// Valid reports whether c is an accepted expense currency
func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencySGD, CurrencyINR:
		return true
	}
	return false
}

// ExpenseCategory groups expenses for reporting
type ExpenseCategory string

const (
	ExpenseFood          ExpenseCategory = "Food"
	ExpenseTransport     ExpenseCategory = "Transport"
	ExpenseAccommodation ExpenseCategory = "Accommodation"
	ExpenseMisc          ExpenseCategory = "Misc"
)

// Valid reports whether c is a known category
func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseFood, ExpenseTransport, ExpenseAccommodation, ExpenseMisc:
		return true
	}
	return false
}

// Expense is a layover expense. BaseAmount is the INR value at creation
// time and is never recomputed.
type Expense struct {
	ID          string          `json:"id"`
	Amount      float64         `json:"amount"`
	Currency    Currency        `json:"currency"`
	Category    ExpenseCategory `json:"category"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	BaseAmount  int64           `json:"baseAmount"`
}

// NewExpense is the "add expense" payload
type NewExpense struct {
	Amount      float64
	Currency    Currency
	Category    ExpenseCategory
	Date        time.Time
	Description string
}

// ExpenseSummary is the monthly allowance view over all expenses
type ExpenseSummary struct {
	Total       int64   `json:"total"`
	Allowance   int64   `json:"allowance"`
	Remaining   int64   `json:"remaining"`
	PercentUsed float64 `json:"percentUsed"`
}
