package http

import (
	"context"
	"net/http"
	"strings"

	"churchapp/internal/domain"
	"churchapp/internal/dto"
	"churchapp/internal/service"
)

type ctxKey string

const ctxKeyUser ctxKey = "authenticated_user"

// requireAuth resolves the bearer token to a user and stashes it in the
// request context. Both "Token <key>" and "Bearer <key>" schemes are
// accepted.
func requireAuth(tokens service.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := tokenFromHeader(r.Header.Get("Authorization"))
			user, err := tokens.Authenticate(r.Context(), key)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, dto.Error{Error: domain.ErrUnauthenticated.Error()})
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromHeader(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	switch strings.ToLower(parts[0]) {
	case "token", "bearer":
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func userFrom(ctx context.Context) *domain.UserProfile {
	u, _ := ctx.Value(ctxKeyUser).(*domain.UserProfile)
	return u
}

// requireRole gates staff-only routes. It assumes requireAuth already ran.
func requireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := map[string]bool{}
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := userFrom(r.Context())
			if user == nil {
				writeJSON(w, http.StatusUnauthorized, dto.Error{Error: domain.ErrUnauthenticated.Error()})
				return
			}
			if !allowed[user.Role] {
				writeJSON(w, http.StatusForbidden, dto.Error{Error: domain.ErrForbidden.Error()})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
