package utils

import (
	"fmt"
	"math"
)

// Money is an amount in cents.
type Money int64

// MaxPrice is the largest accepted menu price, 999999.99.
const MaxPrice Money = 99999999

// MoneyFromFloat rounds f half away from zero to the nearest cent.
func MoneyFromFloat(f float64) Money {
	return Money(math.Round(f * 100))
}

// Times multiplies by an item count.
func (m Money) Times(n int) Money {
	return m * Money(n)
}

// Percent returns pct percent of m, rounded half up to the cent.
func (m Money) Percent(pct int64) Money {
	v := int64(m) * pct
	if v < 0 {
		return Money(-((-v + 50) / 100))
	}
	return Money((v + 50) / 100)
}

func (m Money) Float64() float64 {
	return float64(m) / 100
}

// String formats as a plain two-decimal amount, e.g. "37.28".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
