package std

import (
	"fmt"
	"strings"
)

// Concat returns a followed by b.
func Concat(a, b string) string { return a + b }

// Length returns the number of bytes in text.
func Length(text string) float64 { return float64(len(text)) }

// Contains reports whether substring occurs within text.
func Contains(text, substring string) bool { return strings.Contains(text, substring) }

// Uppercase returns text with all letters upper-cased.
func Uppercase(text string) string { return strings.ToUpper(text) }

// Lowercase returns text with all letters lower-cased.
func Lowercase(text string) string { return strings.ToLower(text) }

// ToString renders any value with fmt.Sprint.
func ToString(value any) string { return fmt.Sprint(value) }
