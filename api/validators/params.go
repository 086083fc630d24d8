package validators

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	pkgerrors "github.com/doxacleaning/doxa-backend/pkg/errors"
)

// PathUUID parses a UUID route parameter. A malformed value is reported as a
// validation failure naming the parameter.
func PathUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, key))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be a valid UUID").
			WithDetails(map[string]any{"field": key})
	}
	return id, nil
}

// QueryUUID parses a required UUID query parameter. An absent or malformed
// selector is unprocessable, not merely invalid, so the caller can tell the
// request apart from a bad body.
func QueryUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnprocessable, key+" query parameter is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnprocessable, key+" query parameter must be a valid UUID")
	}
	return id, nil
}
