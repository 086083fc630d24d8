package middleware

import (
	"net/http"

	"github.com/doxacleaning/doxa-backend/api/responses"
	"github.com/doxacleaning/doxa-backend/api/validators"
	"github.com/doxacleaning/doxa-backend/pkg/enums"
	pkgerrors "github.com/doxacleaning/doxa-backend/pkg/errors"
	"github.com/doxacleaning/doxa-backend/pkg/logger"
)

// RequireRole rejects any authenticated actor whose role differs from the one
// given. Runs after Auth.
func RequireRole(role enums.Role, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != string(role) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireOwnerOrAdmin admits an admin unconditionally, and any other actor only
// when the employee_id query selector matches their own id. A request without a
// usable selector is rejected before the ownership comparison happens.
func RequireOwnerOrAdmin(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			selector, err := validators.QueryUUID(r, "employee_id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			if RoleFromContext(r.Context()) == string(enums.RoleAdmin) {
				next.ServeHTTP(w, r)
				return
			}
			if UserIDFromContext(r.Context()) != selector.String() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "cannot access another employee's jobs"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
