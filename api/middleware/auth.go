package middleware

import (
	"net/http"
	"strings"

	"github.com/doxacleaning/doxa-backend/api/responses"
	pkgAuth "github.com/doxacleaning/doxa-backend/pkg/auth"
	"github.com/doxacleaning/doxa-backend/pkg/config"
	pkgerrors "github.com/doxacleaning/doxa-backend/pkg/errors"
	"github.com/doxacleaning/doxa-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the claims.
// A request arriving without credentials is unauthorized; a request whose token
// fails verification (bad signature, expiry, garbage) is forbidden. The two
// cases are distinct on purpose.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeForbidden, err, "invalid or expired token"))
				return
			}

			ctx := WithUserID(r.Context(), claims.UserID.String())
			ctx = WithRole(ctx, string(claims.Role))

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":    claims.UserID.String(),
					"actor_role": string(claims.Role),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
