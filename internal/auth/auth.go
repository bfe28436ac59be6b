package auth

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const callerContextKey contextKey = "caller"

// Claims carried by the access token. The subject is the caller's auth id;
// the user row it maps to is resolved by the user repository.
type Claims struct {
	jwt.RegisteredClaims
}

func ValidateToken(tokenStr string, secret []byte) (uuid.UUID, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid token: %w", err)
	}

	authID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid token subject: %w", err)
	}

	return authID, nil
}

// Middleware authenticates the request and stores the caller's auth id in the
// request context.
func Middleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			authID, err := ValidateToken(strings.TrimPrefix(header, "Bearer "), secret)
			if err != nil {
				log.Printf("Invalid token: %v", err)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), callerContextKey, authID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerAuthID returns the authenticated caller's auth id from the context.
func CallerAuthID(ctx context.Context) (uuid.UUID, error) {
	authID, ok := ctx.Value(callerContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("no authenticated caller in context")
	}
	return authID, nil
}

// WithCaller seeds an authenticated context, for tests.
func WithCaller(ctx context.Context, authID uuid.UUID) context.Context {
	return context.WithValue(ctx, callerContextKey, authID)
}
