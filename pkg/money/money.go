package money

import "github.com/shopspring/decimal"

// Paise is the smallest currency unit. All persisted amounts are paise so
// column arithmetic stays integral; decimal conversion happens only at the
// API boundary.
type Paise int64

var hundred = decimal.NewFromInt(100)

// FromRupees converts a decimal rupee amount to paise, rounding to the
// nearest paisa (bankers rounding is not used; half away from zero).
func FromRupees(rupees decimal.Decimal) Paise {
	return Paise(rupees.Mul(hundred).Round(0).IntPart())
}

// Rupees returns the decimal rupee representation of the amount.
func (p Paise) Rupees() decimal.Decimal {
	return decimal.NewFromInt(int64(p)).Div(hundred)
}

// Mul multiplies a unit price by a quantity.
func (p Paise) Mul(qty int) Paise {
	return Paise(int64(p) * int64(qty))
}

// Add returns the sum of two amounts.
func (p Paise) Add(other Paise) Paise {
	return p + other
}
