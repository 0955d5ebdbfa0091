// Package config defines the validated run configuration for the bluewire
// compiler. The CLI translates flags into a Config; the app consumes it.
// Keeping the struct here, away from both, lets either side be replaced
// without touching the other.
package config
