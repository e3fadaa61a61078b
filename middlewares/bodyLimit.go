package middlewares

import "net/http"

const msgRequestTooLarge = "Request body too large"

// LimitRequestBody rejects bodies larger than limit. It must wrap anything
// that parses forms, CSRF included, so the limit holds before the first read.
func LimitRequestBody(limit int64, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > limit {
			http.Error(w, msgRequestTooLarge, http.StatusRequestEntityTooLarge)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, limit)
		next.ServeHTTP(w, r)
	})
}
