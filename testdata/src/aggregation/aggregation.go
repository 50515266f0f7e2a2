// Package aggregation runs with -aggregation=last, where the verdict of the
// last statement of a block wins.
package aggregation

import (
	"log"
	"net/http"
)

// [BAD]: Statement after next
func badTrailingLog(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) { // want `^next\(\) is not being called in the handler$`
	next(rw, r)
	log.Println(r.URL.Path)
}

// [BAD]: Callback with trailing statement
func badCallback(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) { // want `^next\(\) is not being called in the handler$`
	run(func() {
		next(rw, r)
		log.Println("done")
	})
}

// [GOOD]: Guard clause before next
func goodGuard(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	if r.Body == nil {
		return
	}
	next(rw, r)
}

// [GOOD]: Deferred log
func goodDeferredLog(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	defer log.Println(r.URL.Path)
	next(rw, r)
}

func run(fn func()) {
	fn()
}
