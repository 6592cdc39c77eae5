package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/semjuel/instagram/internal/application/ports"
)

// AuthValidator validates the JWT and sets the user id in context (see
// UserIDFromContext).
type AuthValidator struct {
	verifier ports.TokenVerifier
}

func NewAuthValidator(verifier ports.TokenVerifier) *AuthValidator {
	return &AuthValidator{verifier: verifier}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			writeAuthErr(w, "missing or invalid authorization")
			return
		}
		tokenString := strings.TrimPrefix(auth, "Bearer ")
		userID, err := m.verifier.VerifyAccessToken(tokenString)
		if err != nil {
			writeAuthErr(w, "invalid token")
			return
		}
		ctx := WithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeAuthErr(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": "unauthorized"})
}
