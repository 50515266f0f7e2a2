// Package handler contains test fixtures for the handler check.
// This file covers negroni style middleware declared as functions, methods
// and function literals.
package handler

import (
	"log"
	"net/http"
)

type Middleware struct {
	Token string
}

type NextFunc func() error

func authorized(r *http.Request, token string) bool {
	return r.Header.Get("Authorization") == token
}

func chain(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	next(rw, r)
}

func async(fn func()) {
	fn()
}

// ===== SHOULD REPORT =====

// [BAD]: Never calls next
//
// Terminal code written in a middleware signature.
func badNeverCalls(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) { // want `^next\(\) is not being called in the handler$`
	rw.WriteHeader(http.StatusNoContent)
}

// [BAD]: Method never calls next
func (m *Middleware) ServeHTTP(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) { // want `^next\(\) is not being called in the handler$`
	if !authorized(r, m.Token) {
		rw.WriteHeader(http.StatusUnauthorized)
	}
}

// [BAD]: Alternate branch misses next
func badAlternate(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) { // want `^next\(\) is not being called in the handler,next\(\) is not being called in the alternate block$`
	if authorized(r, "secret") {
		next(rw, r)
	} else {
		rw.WriteHeader(http.StatusForbidden)
	}
}

// [BAD]: Consequent branch misses next
func badConsequent(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) { // want `^next\(\) is not being called in the handler,next\(\) is not being called in the consequent block$`
	if r.Method == http.MethodOptions {
		rw.WriteHeader(http.StatusNoContent)
	} else {
		next(rw, r)
	}
}

// [BAD]: Else-if chain
//
// The inner if misses next in its consequent, which makes the outer
// alternate fail too.
func badElseIf(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) { // want `^next\(\) is not being called in the handler,next\(\) is not being called in the consequent block,next\(\) is not being called in the alternate block$`
	if r.Method == http.MethodGet {
		next(rw, r)
	} else if r.Method == http.MethodHead {
		rw.WriteHeader(http.StatusOK)
	} else {
		next(rw, r)
	}
}

// [BAD]: Goroutine call
//
// A call in a goroutine is not guaranteed to run before the handler returns.
func badGoroutine(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) { // want `^next\(\) is not being called in the handler$`
	go next(rw, r)
}

// [BAD]: Callback never calls next
func badCallback(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) { // want `^next\(\) is not being called in the handler$`
	async(func() {
		log.Println(r.URL.Path)
	})
}

// [BAD]: Function literal
var badLiteral = func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) { // want `^next\(\) is not being called in the handler$`
	rw.WriteHeader(http.StatusTeapot)
}

// [BAD]: Nested literal
//
// Only the inner literal is a handler.
func badNested() {
	handlers := []func(http.ResponseWriter, *http.Request, http.HandlerFunc){
		func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) { // want `^next\(\) is not being called in the handler$`
			log.Println("dropped")
		},
	}
	_ = handlers
}

// ===== SHOULD NOT REPORT =====

// [GOOD]: Direct call
func goodDirect(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	rw.Header().Set("X-Frame-Options", "DENY")
	next(rw, r)
}

// [GOOD]: ServeHTTP on the continuation
func goodServeHTTP(rw http.ResponseWriter, r *http.Request, next http.Handler) {
	next.ServeHTTP(rw, r)
}

// [GOOD]: Deferred call
func goodDefer(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	defer next(rw, r)
	log.Println(r.URL.Path)
}

// [GOOD]: Forwarded continuation
func goodForward(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	chain(rw, r, next)
}

// [GOOD]: Callback calls next
func goodCallback(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	async(func() {
		next(rw, r)
	})
}

// [GOOD]: Both branches call next
func goodBothBranches(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	if r.Method == http.MethodGet {
		next(rw, r)
	} else {
		rw.Header().Set("Allow", http.MethodGet)
		next(rw, r)
	}
}

// [GOOD]: Guard clause
//
// A block calls next when any of its statements does.
func goodGuard(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	if r.Body == nil {
		return
	}
	next(rw, r)
}

// [GOOD]: Returned call
func goodReturn(rw http.ResponseWriter, r *http.Request, next NextFunc) error {
	return next()
}

// [GOOD]: Nested block
func goodBlock(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	{
		next(rw, r)
	}
}

// [GOOD]: Not a handler
//
// Only functions with the continuation as third parameter are checked.
func goodNotHandler(rw http.ResponseWriter, r *http.Request) {
	rw.WriteHeader(http.StatusOK)
}

// [GOOD]: Different third parameter name
func goodOtherName(rw http.ResponseWriter, r *http.Request, done http.HandlerFunc) {
	rw.WriteHeader(http.StatusOK)
}

// [GOOD]: Blank third parameter
func goodBlank(rw http.ResponseWriter, r *http.Request, _ http.HandlerFunc) {
	rw.WriteHeader(http.StatusOK)
}
