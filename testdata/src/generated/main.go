// Package generated tests that generated files are skipped.
package generated

import "net/http"

// badHandler should be reported in regular files.
func badHandler(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) { // want `next\(\) is not being called in the handler`
	rw.WriteHeader(http.StatusOK)
}
