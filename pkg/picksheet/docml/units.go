package docml

import "math"

// TwipsPerInch is the number of twips (twentieths of a point) per inch.
// WordprocessingML measures page sizes, margins and column widths in twips.
const TwipsPerInch = 1440

// TwipsPerPoint is the number of twips per typographic point.
const TwipsPerPoint = 20

// Inches converts inches to twips, rounding to the nearest twip.
func Inches(in float64) int {
	return int(math.Round(in * TwipsPerInch))
}

// Points converts points to twips, rounding to the nearest twip.
func Points(pt float64) int {
	return int(math.Round(pt * TwipsPerPoint))
}

// HalfPoints converts a point size to the half-point units WordprocessingML
// uses for run font sizes.
func HalfPoints(pt float64) int {
	return int(math.Round(pt * 2))
}
