package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const ctxKeyClaims ctxKey = "claims"

// WithClaims stores verified token claims on the context.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, ctxKeyClaims, c)
}

// ClaimsFromContext returns the verified claims, or nil.
func ClaimsFromContext(ctx context.Context) *Claims {
	if v := ctx.Value(ctxKeyClaims); v != nil {
		if c, ok := v.(*Claims); ok {
			return c
		}
	}
	return nil
}

// Middleware rejects requests without a valid bearer token and attaches
// the claims to the request context.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		claims, err := s.Parse(token)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}
