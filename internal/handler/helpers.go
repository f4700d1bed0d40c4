package handler

import (
	"errors"
	"net/http"
	"strconv"

	"learnnote/internal/domain"
	"learnnote/internal/domain/models"
	"learnnote/internal/domain/repositories"
	"learnnote/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Duplicate titles map
// to 400 alongside validation failures; only genuinely unclassified errors
// surface as a generic 500.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, domain.Message(err))
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusBadRequest, domain.Message(err))
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, domain.Message(err))
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, domain.Message(err))
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// requireIdentity extracts the authenticated identity installed by the auth
// middleware. A missing identity means the middleware chain is misconfigured.
func requireIdentity(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	identity, ok := httputil.GetIdentity(r)
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Authorization header is missing")
		return models.Identity{}, false
	}
	return identity, true
}

// pathID parses the {id} path segment. A non-numeric id names a record that
// cannot exist, so it reads as 404 rather than a validation failure.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httputil.RespondError(w, http.StatusNotFound, "Not found")
		return 0, false
	}
	return id, true
}

// listOptions reads the shared list query knobs
func listOptions(r *http.Request) repositories.ListOptions {
	q := r.URL.Query()
	opts := repositories.ListOptions{
		OrderBy:        q.Get("orderBy"),
		OrderDirection: q.Get("orderDirection"),
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		opts.Limit = limit
	}
	return opts
}

// flagEnabled reports whether a query flag is present and truthy
func flagEnabled(r *http.Request, names ...string) bool {
	for _, name := range names {
		switch r.URL.Query().Get(name) {
		case "true", "1", "yes":
			return true
		}
	}
	return false
}

// flagDisabled reports whether a query flag is explicitly falsy. Used by
// default-visible fields on single-record reads.
func flagDisabled(r *http.Request, names ...string) bool {
	for _, name := range names {
		switch r.URL.Query().Get(name) {
		case "false", "0", "no":
			return true
		}
	}
	return false
}
