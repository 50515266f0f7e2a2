// Package ignore provides nextcall:ignore directive parsing.
//
// # Overview
//
// The ignore directive suppresses diagnostics for specific lines or
// specific checks. It is recognised in Go line comments and in JavaScript
// line and block comments.
//
// # Directive Placement
//
// The directive can appear on the line before or the same line:
//
//	// nextcall:ignore
//	function legacy(req, res, next) { res.end() }  // Diagnostic suppressed
//
//	function legacy(req, res, next) { res.end() }  // nextcall:ignore
//
// # Checker-Specific Ignores
//
//	// nextcall:ignore factory - the router calls next itself
//	return function (req, res, next) { res.end() }
//
// # Valid Checker Names
//
//	┌─────────┬──────────────────────────────────────────────────────┐
//	│ Name    │ Description                                          │
//	├─────────┼──────────────────────────────────────────────────────┤
//	│ handler │ function declarations and arrow functions            │
//	│ factory │ function expressions returned from a factory         │
//	└─────────┴──────────────────────────────────────────────────────┘
//
// # Unused Ignore Detection
//
// Entries record which checks used them. [Map.GetUnusedIgnores] returns the
// directives that suppressed nothing, or name checks that are disabled.
package ignore
