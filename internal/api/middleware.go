// internal/api/middleware.go
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"minibank/internal/api/types"
	"minibank/internal/auth"
)

// Authenticator validates the Bearer token and resolves the caller identity.
// Handlers behind it can trust the user ID on the context.
func Authenticator(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenString == "" {
				unauthorized(w)
				return
			}

			claims, err := auth.ParseToken(tokenString, secret)
			if err != nil {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.ContextWithUserID(r.Context(), claims.UserID)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: "Invalid token"})
}
