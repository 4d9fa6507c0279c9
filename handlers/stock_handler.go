package handlers

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gso/models"
	"gso/utils"
	"gso/workflows"
)

// ListStockItems returns supply items. With ?lowStock=true, only items
// at or below their reorder point.
func (e *Env) ListStockItems(w http.ResponseWriter, r *http.Request) {
	items, err := e.Store.ListStockItems(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if r.URL.Query().Get("lowStock") == "true" {
		low := make([]models.StockItem, 0, len(items))
		for _, it := range items {
			if it.Quantity <= it.ReorderPoint {
				low = append(low, it)
			}
		}
		items = low
	}
	if items == nil {
		items = []models.StockItem{}
	}
	utils.RespondWithJSON(w, http.StatusOK, items)
}

func (e *Env) GetStockItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid stock item id format")
		return
	}
	item, err := e.Store.GetStockItem(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, item)
}

type stockItemRequest struct {
	StockNumber  string  `json:"stockNumber"`
	Description  string  `json:"description"`
	Unit         string  `json:"unit"`
	Quantity     int     `json:"quantity"`
	ReorderPoint int     `json:"reorderPoint"`
	UnitCost     float64 `json:"unitCost"`
}

func (e *Env) CreateStockItem(w http.ResponseWriter, r *http.Request) {
	var req stockItemRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.StockNumber == "" || req.Description == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "stockNumber and description are required")
		return
	}
	if req.Quantity < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "quantity cannot be negative")
		return
	}
	item := models.StockItem{
		StockNumber:  req.StockNumber,
		Description:  req.Description,
		Unit:         req.Unit,
		Quantity:     req.Quantity,
		ReorderPoint: req.ReorderPoint,
		UnitCost:     req.UnitCost,
	}
	if err := e.Store.InsertStockItem(r.Context(), &item); err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, item)
}

func (e *Env) UpdateStockItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid stock item id format")
		return
	}
	var req stockItemRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "quantity cannot be negative")
		return
	}
	item, err := e.Store.GetStockItem(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	item.Description = req.Description
	item.Unit = req.Unit
	item.Quantity = req.Quantity
	item.ReorderPoint = req.ReorderPoint
	item.UnitCost = req.UnitCost
	if err := e.Store.UpdateStockItem(r.Context(), item); err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, item)
}

func (e *Env) ListRequisitions(w http.ResponseWriter, r *http.Request) {
	reqs, err := e.Store.ListRequisitions(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		respondError(w, err)
		return
	}
	if reqs == nil {
		reqs = []models.Requisition{}
	}
	utils.RespondWithJSON(w, http.StatusOK, reqs)
}

func (e *Env) GetRequisition(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid requisition id format")
		return
	}
	req, err := e.Store.GetRequisition(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, req)
}

type requisitionRequest struct {
	Requester models.Custodian `json:"requester"`
	Purpose   string           `json:"purpose"`
	Lines     []struct {
		StockItemID string `json:"stockItemId"`
		Quantity    int    `json:"quantity"`
	} `json:"lines"`
}

func (e *Env) CreateRequisition(w http.ResponseWriter, r *http.Request) {
	var req requisitionRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	lines := make([]workflows.RequisitionLineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		id, err := primitive.ObjectIDFromHex(l.StockItemID)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid stock item id format: "+l.StockItemID)
			return
		}
		lines = append(lines, workflows.RequisitionLineInput{StockItemID: id, Quantity: l.Quantity})
	}
	out, err := e.Service.CreateRequisition(r.Context(), actorFrom(r), workflows.RequisitionInput{
		Requester: req.Requester,
		Purpose:   req.Purpose,
		Lines:     lines,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, out)
}

type fulfillRequest struct {
	Status string `json:"status"` // "Issued" or "Rejected"
	Issues []struct {
		StockItemID    string `json:"stockItemId"`
		QuantityIssued int    `json:"quantityIssued"`
	} `json:"issues"`
}

// FulfillRequisition moves a pending requisition to Issued or Rejected.
// Issuing decrements stock atomically with the status change.
func (e *Env) FulfillRequisition(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid requisition id format")
		return
	}
	var req fulfillRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	issues := make([]workflows.IssueLine, 0, len(req.Issues))
	for _, l := range req.Issues {
		itemID, err := primitive.ObjectIDFromHex(l.StockItemID)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid stock item id format: "+l.StockItemID)
			return
		}
		issues = append(issues, workflows.IssueLine{StockItemID: itemID, QuantityIssued: l.QuantityIssued})
	}
	out, err := e.Service.FulfillRequisition(r.Context(), actorFrom(r), id, req.Status, issues)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

func (e *Env) CancelRequisition(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid requisition id format")
		return
	}
	out, err := e.Service.CancelRequisition(r.Context(), actorFrom(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}
