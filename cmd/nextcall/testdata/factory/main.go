package main

import "net/http"

type middleware func(http.ResponseWriter, *http.Request, http.HandlerFunc)

func methods(allowed string) middleware {
	return func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
		if r.Method != allowed {
			rw.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func main() {
	_ = methods(http.MethodGet)
}
