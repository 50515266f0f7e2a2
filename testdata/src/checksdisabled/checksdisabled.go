// Package checksdisabled runs with -factory=false.
package checksdisabled

import "net/http"

type HandlerFunc func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc)

// [BAD]: Handler check stays enabled
func badHandler(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) { // want `next\(\) is not being called in the handler`
	rw.WriteHeader(http.StatusOK)
}

// [GOOD]: Factory check is disabled
func ignoredFactory() HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
		rw.WriteHeader(http.StatusOK)
	}
}
