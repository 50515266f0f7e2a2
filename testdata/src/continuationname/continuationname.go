// Package continuationname runs with -continuation=done.
package continuationname

import "net/http"

// [BAD]: done is never called
func badDone(rw http.ResponseWriter, r *http.Request, done http.HandlerFunc) { // want `^done\(\) is not being called in the handler$`
	rw.WriteHeader(http.StatusOK)
}

// [BAD]: Branch note uses the configured name
func badDoneBranch(rw http.ResponseWriter, r *http.Request, done http.HandlerFunc) { // want `^done\(\) is not being called in the handler,done\(\) is not being called in the alternate block$`
	if r.Method == http.MethodGet {
		done(rw, r)
	} else {
		rw.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// [GOOD]: done is called
func goodDone(rw http.ResponseWriter, r *http.Request, done http.HandlerFunc) {
	done(rw, r)
}

// [GOOD]: next is not the continuation here
func goodNext(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	rw.WriteHeader(http.StatusOK)
}
