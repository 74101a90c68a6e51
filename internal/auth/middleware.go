package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

// UserCheck reports whether the user a token was issued to still exists.
type UserCheck func(userID string) (bool, error)

// Middleware rejects requests without a valid bearer token and stores the
// token's claims in the request context. When known is set, tokens for users
// it does not recognise are rejected too.
func Middleware(tokens *Tokens, known UserCheck) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "Not authorized, no token")
				return
			}
			claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				logrus.WithError(err).WithField("path", r.URL.Path).Debug("rejected token")
				unauthorized(w, "Not authorized")
				return
			}
			if known != nil {
				ok, err := known(claims.Subject)
				if err != nil || !ok {
					logrus.WithError(err).WithField("user_id", claims.Subject).Debug("token for unknown user")
					unauthorized(w, "Not authorized")
					return
				}
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"message":"` + msg + `"}`))
}

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// UserFromContext returns the claims set by Middleware, or nil.
func UserFromContext(ctx context.Context) *Claims {
	c, _ := ctx.Value(ctxKey{}).(*Claims)
	return c
}
