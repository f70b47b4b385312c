package enums

import "fmt"

// ProductUnit is the unit a product is sold and delivered in.
type ProductUnit string

const (
	ProductUnitLitre  ProductUnit = "litre"
	ProductUnitPacket ProductUnit = "packet"
	ProductUnitKg     ProductUnit = "kg"
	ProductUnitPiece  ProductUnit = "piece"
)

var validProductUnits = []ProductUnit{
	ProductUnitLitre,
	ProductUnitPacket,
	ProductUnitKg,
	ProductUnitPiece,
}

// IsValid reports whether the value matches the canonical product unit enum.
func (p ProductUnit) IsValid() bool {
	for _, candidate := range validProductUnits {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductUnit converts the raw string to ProductUnit.
func ParseProductUnit(value string) (ProductUnit, error) {
	for _, candidate := range validProductUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product unit %q", value)
}
