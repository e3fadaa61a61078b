package middlewares

import (
	"net/http"
	"strings"
)

// MethodOverride lets HTML forms reach PUT, PATCH and DELETE routes by
// posting to "?_method=PUT". It wraps the router because gin picks the
// route before any gin middleware runs.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch method := strings.ToUpper(r.URL.Query().Get("_method")); method {
			case http.MethodPut, http.MethodPatch, http.MethodDelete:
				r.Method = method
			}
		}
		next.ServeHTTP(w, r)
	})
}
