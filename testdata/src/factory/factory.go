// Package factory contains test fixtures for the factory check: functions
// that build and return middleware.
package factory

import (
	"net/http"
	"strings"
)

type HandlerFunc func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc)

// ===== SHOULD REPORT =====

// [BAD]: Returned middleware never calls next
func badRequireJSON() HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) { // want `^next\(\) is not being called in the handler$`
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			rw.WriteHeader(http.StatusUnsupportedMediaType)
		}
	}
}

// [BAD]: Parenthesised operand
func badParenthesised(status int) HandlerFunc {
	return (func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) { // want `^next\(\) is not being called in the handler$`
		rw.WriteHeader(status)
	})
}

// [BAD]: Alternate branch misses next
func badMethodFilter(method string) HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) { // want `^next\(\) is not being called in the handler,next\(\) is not being called in the alternate block$`
		if r.Method == method {
			next(rw, r)
		} else {
			rw.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

// [BAD]: Assigned literal
//
// A literal that is not returned directly is checked as a handler.
func badAssigned() HandlerFunc {
	h := func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) { // want `^next\(\) is not being called in the handler$`
		rw.WriteHeader(http.StatusGone)
	}
	return h
}

// ===== SHOULD NOT REPORT =====

// [GOOD]: Returned middleware calls next
func goodHeader(key, value string) HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
		rw.Header().Set(key, value)
		next(rw, r)
	}
}

// [GOOD]: Returned literal with other parameters
func goodPlain() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
	}
}

// [GOOD]: Multiple results are not a factory return
func goodMultiple() (HandlerFunc, error) {
	return func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
		next(rw, r)
	}, nil
}
