package money

import (
	"errors"
	"strconv"
)

var ErrNegativeAmount = errors.New("money cannot be negative")

// Money is an amount in whole currency units. Arithmetic floors and never goes below zero.
type Money int64

func New(amount int64) (Money, error) {
	if amount < 0 {
		return 0, ErrNegativeAmount
	}
	return Money(amount), nil
}

func (m Money) Int64() int64 { return int64(m) }

func (m Money) IsZero() bool { return m == 0 }

func (m Money) Add(other Money) Money {
	return m + other
}

// Sub clamps at zero.
func (m Money) Sub(other Money) Money {
	if other >= m {
		return 0
	}
	return m - other
}

func (m Money) Mul(quantity int) Money {
	if quantity <= 0 {
		return 0
	}
	return m * Money(quantity)
}

// Percent returns floor(m * pct / 100).
func (m Money) Percent(pct int64) Money {
	if pct <= 0 {
		return 0
	}
	return Money(int64(m) * pct / 100)
}

// Share returns floor(m * part / whole), or zero when whole is zero.
func (m Money) Share(part, whole Money) Money {
	if whole <= 0 || part <= 0 {
		return 0
	}
	return Money(int64(m) * int64(part) / int64(whole))
}

func Min(a, b Money) Money {
	if a < b {
		return a
	}
	return b
}

func Sum(values ...Money) Money {
	var total Money
	for _, v := range values {
		total += v
	}
	return total
}

func (m Money) String() string {
	return strconv.FormatInt(int64(m), 10)
}
