// Package handlers exposes the registry and workflow operations over
// HTTP. Handlers parse and validate the request shape, call into the
// workflow layer, and map its error taxonomy onto status codes; business
// rules live in workflows, not here.
package handlers

import (
	"errors"
	"net/http"

	"gso/notify"
	"gso/storage"
	"gso/store"
	"gso/utils"
	"gso/workflows"
)

// Env carries the handler dependencies. Injected at startup rather than
// held in package globals so the HTTP layer can be exercised against the
// in-memory store.
type Env struct {
	Store   store.Store
	Service *workflows.Service
	Objects storage.ObjectStore
	Hub     *notify.Hub
	FileDir string // served at /files/, empty disables static serving
}

// actorFrom reads the authenticated user from the request context set by
// the auth middleware. Unattributed requests fall back to "System".
func actorFrom(r *http.Request) workflows.Actor {
	actor := workflows.Actor{Name: "System"}
	if v, ok := r.Context().Value("userName").(string); ok && v != "" {
		actor.Name = v
	}
	if v, ok := r.Context().Value("userOffice").(string); ok {
		actor.Office = v
	}
	if v, ok := r.Context().Value("userRole").(string); ok {
		actor.Role = v
	}
	return actor
}

// respondError maps the workflow/store error taxonomy to status codes:
// validation failures are 400, missing records 404, precondition and
// uniqueness conflicts 409, everything else 500.
func respondError(w http.ResponseWriter, err error) {
	var ve *workflows.ValidationError
	var pe *workflows.PreconditionError
	switch {
	case errors.As(err, &ve):
		utils.RespondWithError(w, http.StatusBadRequest, ve.Reason)
	case errors.As(err, &pe):
		utils.RespondWithError(w, http.StatusConflict, pe.Reason)
	case errors.Is(err, store.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrConflict):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
	}
}
