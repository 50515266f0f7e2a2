// Package directive provides comment directive parsing for nextcall.
//
// All directives follow the format:
//
//	nextcall:<directive> [args]
//
// Only the ignore directive exists today; see the [ignore] package.
package directive
