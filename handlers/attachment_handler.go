package handlers

import (
	"log"
	"net/http"

	"gso/models"
	"gso/utils"
)

const maxUploadSize = 10 << 20 // 10 MB

// UploadAttachment stores the uploaded file and links it to the asset
// with a history entry. The file is written before the transaction; if
// linking fails the stored object is removed again.
func (e *Env) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id format")
		return
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	key, size, err := e.Objects.Put(file, header.Filename)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	title := r.FormValue("title")
	if title == "" {
		title = header.Filename
	}
	asset, err := e.Service.AddAttachment(r.Context(), actorFrom(r), id, models.Attachment{
		Key:          key,
		Title:        title,
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Size:         size,
		UploadedBy:   actorFrom(r).Name,
	})
	if err != nil {
		if delErr := e.Objects.Delete(key); delErr != nil {
			log.Printf("Failed to remove orphaned upload %s: %v", key, delErr)
		}
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, asset)
}
