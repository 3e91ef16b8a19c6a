package number

import (
	"math"
	"strconv"
)

var epsilon float64 = 0.000001

func IsZero(f float64) bool {
	return math.Abs(f) < epsilon
}

func FuzzyEquals(a float64, b float64) bool {
	return IsZero(b - a)
}

func Map(value float64, fromlow float64, fromhigh float64, tolow float64, tohigh float64) float64 {
	return tolow + (tohigh-tolow)*((value-fromlow)/(fromhigh-fromlow))
}

func Round(f float64) float64 {
	return math.Floor(f + .5)
}

func ToFixed(num float64, precision int) float64 {
	output := math.Pow(10, float64(precision))
	return Round(num*output) / output
}

func FloatToStr(f float64, precision int) string {
	return strconv.FormatFloat(f, 'f', precision, 64)
}
