package handlers

import (
	"net/http"

	"gso/models"
	"gso/utils"
)

func (e *Env) ListOffices(w http.ResponseWriter, r *http.Request) {
	offices, err := e.Store.ListOffices(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if offices == nil {
		offices = []models.Office{}
	}
	utils.RespondWithJSON(w, http.StatusOK, offices)
}

type officeRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
	Head string `json:"head"`
}

func (e *Env) CreateOffice(w http.ResponseWriter, r *http.Request) {
	var req officeRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Code == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "name and code are required")
		return
	}
	office := models.Office{Name: req.Name, Code: req.Code, Head: req.Head}
	if err := e.Store.InsertOffice(r.Context(), &office); err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, office)
}
