// Package app contains the core application logic. It defines the main App
// struct and the compile lifecycle: build a registry, load graphs and
// sub-graph libraries, run the compiler, write generated source. It is
// decoupled from any specific entrypoint like a CLI.
package app
