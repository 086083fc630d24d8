package controllers

import (
	"net/http"

	"github.com/doxacleaning/doxa-backend/api/responses"
	"github.com/doxacleaning/doxa-backend/api/validators"
	"github.com/doxacleaning/doxa-backend/internal/auth"
	pkgerrors "github.com/doxacleaning/doxa-backend/pkg/errors"
	"github.com/doxacleaning/doxa-backend/pkg/logger"
)

// AuthLogin exchanges credentials for a bearer token and the sanitized user.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
