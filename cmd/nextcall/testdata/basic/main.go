package main

import (
	"log"
	"net/http"
)

type middleware func(http.ResponseWriter, *http.Request, http.HandlerFunc)

func recovery(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	defer func() {
		if err := recover(); err != nil {
			rw.WriteHeader(http.StatusInternalServerError)
		}
	}()
	next(rw, r)
}

func auth(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	if r.Header.Get("Authorization") != "" {
		next(rw, r)
	} else {
		rw.WriteHeader(http.StatusUnauthorized)
	}
}

func wrap(h http.HandlerFunc, mws ...middleware) http.HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		mw, inner := mws[i], h
		h = func(rw http.ResponseWriter, r *http.Request) { mw(rw, r, inner) }
	}
	return h
}

func main() {
	hello := func(rw http.ResponseWriter, r *http.Request) { _, _ = rw.Write([]byte("hello")) }
	log.Fatal(http.ListenAndServe(":8080", wrap(hello, recovery, auth)))
}
