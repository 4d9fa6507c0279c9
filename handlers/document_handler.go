package handlers

import (
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gso/models"
	"gso/utils"
	"gso/workflows"
)

func parseIDList(hexes []string) ([]primitive.ObjectID, string) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, h
		}
		ids = append(ids, id)
	}
	return ids, ""
}

// ListDocuments returns issued documents, newest first, optionally
// filtered by ?kind=PAR etc.
func (e *Env) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := e.Store.ListDocuments(r.Context(), r.URL.Query().Get("kind"))
	if err != nil {
		respondError(w, err)
		return
	}
	if docs == nil {
		docs = []models.Document{}
	}
	utils.RespondWithJSON(w, http.StatusOK, docs)
}

func (e *Env) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid document id format")
		return
	}
	doc, err := e.Store.GetDocument(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, doc)
}

type assignRequest struct {
	Kind      string           `json:"kind"`
	Custodian models.Custodian `json:"custodian"`
	AssetIDs  []string         `json:"assetIds"`
}

// Assign issues a PAR or ICS covering the listed assets.
func (e *Env) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ids, bad := parseIDList(req.AssetIDs)
	if bad != "" {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id format: "+bad)
		return
	}
	doc, err := e.Service.Assign(r.Context(), actorFrom(r), workflows.AssignInput{
		Kind:      req.Kind,
		Custodian: req.Custodian,
		AssetIDs:  ids,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, doc)
}

type transferRequest struct {
	AssetIDs     []string         `json:"assetIds"`
	NewCustodian models.Custodian `json:"newCustodian"`
	TransferDate time.Time        `json:"transferDate"`
}

func (e *Env) Transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ids, bad := parseIDList(req.AssetIDs)
	if bad != "" {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id format: "+bad)
		return
	}
	doc, err := e.Service.Transfer(r.Context(), actorFrom(r), workflows.TransferInput{
		AssetIDs:     ids,
		NewCustodian: req.NewCustodian,
		TransferDate: req.TransferDate,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, doc)
}

type assetListRequest struct {
	AssetIDs []string `json:"assetIds"`
}

func (e *Env) CertifyWaste(w http.ResponseWriter, r *http.Request) {
	var req assetListRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ids, bad := parseIDList(req.AssetIDs)
	if bad != "" {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id format: "+bad)
		return
	}
	doc, err := e.Service.CertifyWaste(r.Context(), actorFrom(r), ids)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, doc)
}

func (e *Env) Inspect(w http.ResponseWriter, r *http.Request) {
	var req assetListRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ids, bad := parseIDList(req.AssetIDs)
	if bad != "" {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id format: "+bad)
		return
	}
	doc, err := e.Service.Inspect(r.Context(), actorFrom(r), ids)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, doc)
}

type receivingRequest struct {
	Supplier string                `json:"supplier"`
	Items    []models.ReceivedItem `json:"items"`
}

func (e *Env) CreateReceivingReport(w http.ResponseWriter, r *http.Request) {
	var req receivingRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	doc, err := e.Service.CreateReceivingReport(r.Context(), actorFrom(r), workflows.ReceivingInput{
		Supplier: req.Supplier,
		Items:    req.Items,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, doc)
}

// CancelDocument flips the cancelled flag. Documents are never edited
// or deleted.
func (e *Env) CancelDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid document id format")
		return
	}
	doc, err := e.Service.CancelDocument(r.Context(), actorFrom(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, doc)
}
