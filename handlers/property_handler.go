package handlers

import (
	"net/http"

	"gso/models"
	"gso/utils"
	"gso/workflows"
)

// ListProperties returns every real property record.
func (e *Env) ListProperties(w http.ResponseWriter, r *http.Request) {
	props, err := e.Store.ListProperties(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if props == nil {
		props = []models.Property{}
	}
	utils.RespondWithJSON(w, http.StatusOK, props)
}

func (e *Env) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid property id format")
		return
	}
	prop, err := e.Store.GetProperty(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, prop)
}

func (e *Env) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var in workflows.CreatePropertyInput
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	prop, err := e.Service.CreateProperty(r.Context(), actorFrom(r), in)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, prop)
}

func (e *Env) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid property id format")
		return
	}
	var in workflows.UpdatePropertyInput
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	prop, err := e.Service.UpdateProperty(r.Context(), actorFrom(r), id, in)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, prop)
}

func (e *Env) DisposeProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid property id format")
		return
	}
	prop, err := e.Service.DisposeProperty(r.Context(), actorFrom(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, prop)
}
