package money

import (
	"errors"
	"math"
)

var (
	ErrInvalidCurrency  = errors.New("money: invalid currency code")
	ErrCurrencyMismatch = errors.New("money: currency mismatch")
)

// DefaultCurrency is the only currency quotes are produced in.
const DefaultCurrency = "INR"

// Money keeps amounts in whole rupees to avoid floating point drift between pricing steps.
type Money struct {
	Amount   int64  `json:"amount" bson:"amount"`
	Currency string `json:"currency" bson:"currency"`
}

// INR builds an amount in the default currency.
func INR(amount int64) Money {
	return Money{Amount: amount, Currency: DefaultCurrency}
}

// Round converts a fractional amount to whole units, halves away from zero.
func Round(v float64) int64 {
	return int64(math.Round(v))
}

// Ceil converts a fractional amount to whole units rounding up.
func Ceil(v float64) int64 {
	return int64(math.Ceil(v))
}

// Add adds two money values ensuring currencies match.
func (m Money) Add(other Money) (Money, error) {
	if err := m.ensureSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

// Sub subtracts other from the receiver.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.ensureSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount - other.Amount, Currency: m.Currency}, nil
}

// Multiply multiplies the amount by the provided factor.
func (m Money) Multiply(times int64) Money {
	return Money{Amount: m.Amount * times, Currency: m.Currency}
}

// Sum adds parts left to right. All parts must share a currency.
func Sum(first Money, rest ...Money) (Money, error) {
	total := first
	for _, part := range rest {
		var err error
		if total, err = total.Add(part); err != nil {
			return Money{}, err
		}
	}
	return total, nil
}

// IsZero returns true if the amount equals zero.
func (m Money) IsZero() bool {
	return m.Amount == 0
}

func (m Money) ensureSameCurrency(other Money) error {
	if m.Currency == "" || other.Currency == "" {
		return ErrInvalidCurrency
	}
	if m.Currency != other.Currency {
		return ErrCurrencyMismatch
	}
	return nil
}
