package handlers

import (
	"net/http"

	"gso/utils"
)

func (e *Env) Health(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
