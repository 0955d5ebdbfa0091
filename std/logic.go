package std

// And returns a && b.
func And(a, b bool) bool { return a && b }

// Or returns a || b.
func Or(a, b bool) bool { return a || b }

// Not returns !value.
func Not(value bool) bool { return !value }

// Xor returns true when exactly one of a and b is true.
func Xor(a, b bool) bool { return a != b }

// Equals reports whether a equals b.
func Equals(a, b float64) bool { return a == b }

// NotEquals reports whether a differs from b.
func NotEquals(a, b float64) bool { return a != b }

// GreaterThan reports whether a > b.
func GreaterThan(a, b float64) bool { return a > b }

// LessThan reports whether a < b.
func LessThan(a, b float64) bool { return a < b }

// Select returns a when condition is true, otherwise b.
func Select(condition bool, a, b any) any {
	if condition {
		return a
	}
	return b
}
