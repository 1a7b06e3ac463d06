package middleware

import (
	"crypto/subtle"
	"net/http"

	"medlyst-gateway/pkg/response"
)

// AdminKeyMiddleware gates the admin routes behind a static shared key.
// This is a placeholder gate matching the product's stand-in admin
// login, not a security boundary.
type AdminKeyMiddleware struct {
	apiKey string
}

func NewAdminKeyMiddleware(apiKey string) *AdminKeyMiddleware {
	return &AdminKeyMiddleware{apiKey: apiKey}
}

func (m *AdminKeyMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.apiKey == "" {
			response.Forbidden(w, "Admin API is disabled")
			return
		}

		key := r.Header.Get("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) != 1 {
			response.Unauthorized(w, "Invalid admin key")
			return
		}

		next.ServeHTTP(w, r)
	})
}
