package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gso/models"
	"gso/store"
	"gso/utils"
	"gso/workflows"
)

type assetRequest struct {
	Description     string           `json:"description"`
	Category        string           `json:"category"`
	SubMajorGroup   string           `json:"subMajorGroup"`
	GLAccount       string           `json:"glAccount"`
	AcquisitionDate time.Time        `json:"acquisitionDate"`
	AcquisitionCost float64          `json:"acquisitionCost"`
	FundSource      string           `json:"fundSource"`
	UsefulLife      int              `json:"usefulLife"`
	SalvageValue    float64          `json:"salvageValue"`
	Condition       string           `json:"condition"`
	Remarks         string           `json:"remarks"`
	Status          string           `json:"status"`
	Custodian       models.Custodian `json:"custodian"`
}

func (in assetRequest) toInput() workflows.CreateAssetInput {
	return workflows.CreateAssetInput{
		Description:     in.Description,
		Category:        in.Category,
		SubMajorGroup:   in.SubMajorGroup,
		GLAccount:       in.GLAccount,
		AcquisitionDate: in.AcquisitionDate,
		AcquisitionCost: in.AcquisitionCost,
		FundSource:      in.FundSource,
		UsefulLife:      in.UsefulLife,
		SalvageValue:    in.SalvageValue,
		Condition:       in.Condition,
		Remarks:         in.Remarks,
		Status:          in.Status,
		Custodian:       in.Custodian,
	}
}

func pathID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	return id, err == nil
}

// ListAssets returns assets, optionally filtered by office, status or
// category query parameters.
func (e *Env) ListAssets(w http.ResponseWriter, r *http.Request) {
	f := store.AssetFilter{
		Office:   r.URL.Query().Get("office"),
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
	}
	assets, err := e.Store.ListAssets(r.Context(), f)
	if err != nil {
		respondError(w, err)
		return
	}
	if assets == nil {
		assets = []models.Asset{}
	}
	utils.RespondWithJSON(w, http.StatusOK, assets)
}

func (e *Env) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id format")
		return
	}
	asset, err := e.Store.GetAsset(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, asset)
}

func (e *Env) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	asset, err := e.Service.CreateAsset(r.Context(), actorFrom(r), req.toInput())
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, asset)
}

// BulkCreateAssets registers a batch of assets in one transaction.
func (e *Env) BulkCreateAssets(w http.ResponseWriter, r *http.Request) {
	var reqs []assetRequest
	if err := utils.ParseJSON(r, &reqs); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	inputs := make([]workflows.CreateAssetInput, 0, len(reqs))
	for _, req := range reqs {
		inputs = append(inputs, req.toInput())
	}
	assets, err := e.Service.BulkCreateAssets(r.Context(), actorFrom(r), inputs)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, assets)
}

type assetUpdateRequest struct {
	Description      *string    `json:"description"`
	Category         *string    `json:"category"`
	AcquisitionDate  *time.Time `json:"acquisitionDate"`
	AcquisitionCost  *float64   `json:"acquisitionCost"`
	FundSource       *string    `json:"fundSource"`
	UsefulLife       *int       `json:"usefulLife"`
	SalvageValue     *float64   `json:"salvageValue"`
	ImpairmentLosses *float64   `json:"impairmentLosses"`
	Condition        *string    `json:"condition"`
	Remarks          *string    `json:"remarks"`
	Status           *string    `json:"status"`
}

func (e *Env) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id format")
		return
	}
	var req assetUpdateRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	asset, err := e.Service.UpdateAsset(r.Context(), actorFrom(r), id, workflows.UpdateAssetInput{
		Description:      req.Description,
		Category:         req.Category,
		AcquisitionDate:  req.AcquisitionDate,
		AcquisitionCost:  req.AcquisitionCost,
		FundSource:       req.FundSource,
		UsefulLife:       req.UsefulLife,
		SalvageValue:     req.SalvageValue,
		ImpairmentLosses: req.ImpairmentLosses,
		Condition:        req.Condition,
		Remarks:          req.Remarks,
		Status:           req.Status,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, asset)
}

// DisposeAsset is the soft delete: status goes to Disposed, the record
// stays.
func (e *Env) DisposeAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id format")
		return
	}
	asset, err := e.Service.DisposeAsset(r.Context(), actorFrom(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, asset)
}

func (e *Env) AddRepairRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id format")
		return
	}
	var rec models.RepairRecord
	if err := utils.ParseJSON(r, &rec); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	asset, err := e.Service.AddRepairRecord(r.Context(), actorFrom(r), id, rec)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, asset)
}

type physicalCountRequest struct {
	Items []struct {
		AssetID   string `json:"assetId"`
		Status    string `json:"status"`
		Condition string `json:"condition"`
		Remarks   string `json:"remarks"`
	} `json:"items"`
}

func (e *Env) PhysicalCount(w http.ResponseWriter, r *http.Request) {
	var req physicalCountRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	items := make([]workflows.PhysicalCountItem, 0, len(req.Items))
	for _, it := range req.Items {
		id, err := primitive.ObjectIDFromHex(it.AssetID)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid asset id format: "+it.AssetID)
			return
		}
		items = append(items, workflows.PhysicalCountItem{
			AssetID:   id,
			Status:    it.Status,
			Condition: it.Condition,
			Remarks:   it.Remarks,
		})
	}
	assets, err := e.Service.PhysicalCount(r.Context(), actorFrom(r), items)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, assets)
}
