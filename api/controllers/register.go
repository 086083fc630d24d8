package controllers

import (
	"net/http"

	"github.com/doxacleaning/doxa-backend/api/responses"
	"github.com/doxacleaning/doxa-backend/api/validators"
	"github.com/doxacleaning/doxa-backend/internal/auth"
	"github.com/doxacleaning/doxa-backend/internal/users"
	pkgerrors "github.com/doxacleaning/doxa-backend/pkg/errors"
	"github.com/doxacleaning/doxa-backend/pkg/logger"
)

// AuthRegister creates an account and returns it without credentials. The
// caller logs in separately; registration does not mint a token.
func AuthRegister(reg auth.RegisterService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reg == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := reg.Register(r.Context(), body)
		if err != nil {
			if logg != nil {
				logg.Error(r.Context(), "register failed", err)
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]*users.UserDTO{
			"user": created,
		})
	}
}
