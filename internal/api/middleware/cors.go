package middleware

import "net/http"

// Values written on every response.
const (
	AllowOrigin  = "*"
	AllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	AllowHeaders = "Content-Type, Authorization"
)

// CORS stamps the permissive cross-origin headers on every response and
// answers preflight OPTIONS requests itself with 204.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", AllowOrigin)
		h.Set("Access-Control-Allow-Methods", AllowMethods)

		if r.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Headers", AllowHeaders)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
