// Package std is the runtime support library for generated programs.
//
// Every pure and function node in the builtin packs names one exported
// function here as its target; compiled graphs import this package and
// nothing else. Numbers are float64 throughout, matching the number type
// of the graph's value system.
package std
