// Package cli constructs the aoc-inputs command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives around the migrate and rewrite-history commands.
package cli
