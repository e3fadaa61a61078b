package routes

import (
	"net/http"

	"github.com/Kariqs/decorshop/middlewares"
	"github.com/gorilla/csrf"
)

// MaxRequestBytes caps every request body, product image uploads included.
const MaxRequestBytes = 10 << 20

type HandlerOptions struct {
	CSRFKey        []byte
	Secure         bool
	TrustedOrigins []string
}

// Handler wraps the gin engine with the net/http middlewares that have to
// run before routing:
//
//	body limit -> plaintext marker (when not Secure) -> CSRF -> method override -> gin
//
// CSRF sees the browser's real POST and reads the token from its body;
// routing then sees the overridden method.
func Handler(engine http.Handler, opts HandlerOptions) http.Handler {
	protect := csrf.Protect(
		opts.CSRFKey,
		csrf.Secure(opts.Secure),
		csrf.Path("/"),
		csrf.TrustedOrigins(opts.TrustedOrigins),
	)

	handler := protect(middlewares.MethodOverride(engine))
	if !opts.Secure {
		handler = plaintext(handler)
	}
	return middlewares.LimitRequestBody(MaxRequestBytes, handler)
}

// plaintext tells the CSRF middleware that requests arrive over plain HTTP,
// which relaxes its Referer check for local development.
func plaintext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}
