package service

import "math"

// roundTo2Decimals rounds a float64 to 2 decimal places.
func roundTo2Decimals(value float64) float64 {
	return normalizeZero(math.Round(value*100) / 100)
}

// roundToUnit rounds to the nearest whole currency unit or customer.
func roundToUnit(value float64) float64 {
	return normalizeZero(math.Round(value))
}

// normalizeZero turns -0 into 0 so it never reaches the wire as "-0".
func normalizeZero(value float64) float64 {
	if value == 0 {
		return 0
	}
	return value
}
