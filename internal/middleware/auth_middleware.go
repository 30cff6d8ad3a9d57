package middleware

import (
	"context"
	"net/http"
	"strings"

	"notemaker-server/pkg/response"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"

	// TokenHeader is the header the web client sends its token in.
	TokenHeader = "x-auth-token"
)

// TokenVerifier resolves a signed token to the id of the user it was issued to.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// AuthMiddleware rejects requests without a valid token and stores the caller's
// id in the request context.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				response.Unauthorized(w, "No token, authorization denied")
				return
			}

			userID, err := verifier.VerifyToken(token)
			if err != nil {
				response.Unauthorized(w, "Token is not valid")
				return
			}

			if info := requestInfoFrom(r.Context()); info != nil {
				info.userID = userID
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	if token := r.Header.Get(TokenHeader); token != "" {
		return token
	}

	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func GetUserID(r *http.Request) string {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}
