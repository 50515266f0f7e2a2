// Package ignore contains test fixtures for nextcall:ignore directives.
package ignore

import "net/http"

type HandlerFunc func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc)

// [GOOD]: Directive on the previous line
//
//nextcall:ignore
func ignoredAbove(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	rw.WriteHeader(http.StatusNotFound)
}

// [GOOD]: Directive on the same line with a reason
func ignoredSameLine(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) { //nextcall:ignore - terminal handler
	rw.WriteHeader(http.StatusNotFound)
}

// [GOOD]: Block comment directive
func ignoredBlockComment(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) { /* nextcall:ignore handler */
	rw.WriteHeader(http.StatusNotFound)
}

// [GOOD]: Checker-specific directive
func ignoredFactory() HandlerFunc {
	//nextcall:ignore factory
	return func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
		rw.WriteHeader(http.StatusNotFound)
	}
}

// [BAD]: Directive for another checker
//
// The factory directive does not cover the handler check.
func notIgnored(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) { // want `next\(\) is not being called in the handler`
	//nextcall:ignore factory // want `unused nextcall:ignore directive for checker\(s\): factory`
	rw.WriteHeader(http.StatusNotFound)
}

// [BAD]: Directive that suppresses nothing
func unusedAll(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	//nextcall:ignore // want `^unused nextcall:ignore directive$`
	next(rw, r)
}

// [BAD]: Unknown checker
func unknownChecker(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	next(rw, r) //nextcall:ignore goroutine // want `unused nextcall:ignore directive for checker\(s\): goroutine`
}
