package std

import "math"

// Add returns a + b.
func Add(a, b float64) float64 { return a + b }

// Subtract returns a - b.
func Subtract(a, b float64) float64 { return a - b }

// Multiply returns a * b.
func Multiply(a, b float64) float64 { return a * b }

// Divide returns a / b. Division by zero follows IEEE 754: the result is
// an infinity or NaN rather than a panic.
func Divide(a, b float64) float64 { return a / b }

// Min returns the smaller of a and b.
func Min(a, b float64) float64 { return math.Min(a, b) }

// Max returns the larger of a and b.
func Max(a, b float64) float64 { return math.Max(a, b) }

// Abs returns the absolute value of value.
func Abs(value float64) float64 { return math.Abs(value) }

// Clamp limits value to the inclusive [min, max] range.
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
