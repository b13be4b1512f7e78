package domain

import "math"

// CalculationInput feeds the raw material calculation. The type ids only
// label the result; the arithmetic uses the four scalars.
type CalculationInput struct {
	ProductTypeID  int64
	MaterialTypeID int64
	Quantity       float64
	Param1         float64
	Param2         float64
	LossPercentage float64
}

// CalculationResult keeps full precision; round only when displaying.
type CalculationResult struct {
	BaseVolume       float64
	LossVolume       float64
	TotalRawMaterial float64
}

// Round2 rounds half away from zero to 2 fraction digits.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
