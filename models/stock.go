// models/stock.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Requisition statuses. Issued, Rejected and Cancelled are terminal.
const (
	RequisitionPending   = "Pending"
	RequisitionIssued    = "Issued"
	RequisitionRejected  = "Rejected"
	RequisitionCancelled = "Cancelled"
)

// StockItem is a supply item. Quantity must never go negative; it is
// decremented exactly once, when a requisition transitions to Issued.
type StockItem struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StockNumber  string             `bson:"stockNumber" json:"stockNumber"` // unique
	Description  string             `bson:"description" json:"description"`
	Unit         string             `bson:"unit,omitempty" json:"unit,omitempty"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	ReorderPoint int                `bson:"reorderPoint" json:"reorderPoint"`
	UnitCost     float64            `bson:"unitCost,omitempty" json:"unitCost,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RequisitionLine is one requested item on a requisition.
// QuantityIssued is recorded when the requisition is fulfilled and may be
// less than QuantityRequested.
type RequisitionLine struct {
	StockItemID       primitive.ObjectID `bson:"stockItemId" json:"stockItemId"`
	StockNumber       string             `bson:"stockNumber" json:"stockNumber"`
	Description       string             `bson:"description" json:"description"`
	QuantityRequested int                `bson:"quantityRequested" json:"quantityRequested"`
	QuantityIssued    int                `bson:"quantityIssued" json:"quantityIssued"`
}

// Requisition is a supply request (RIS). Status gates whether stock
// quantities have been decremented yet.
type Requisition struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RISNumber   string             `bson:"risNumber" json:"risNumber"` // sequence-derived
	Requester   Custodian          `bson:"requester" json:"requester"`
	Purpose     string             `bson:"purpose,omitempty" json:"purpose,omitempty"`
	Lines       []RequisitionLine  `bson:"lines" json:"lines"`
	Status      string             `bson:"status" json:"status"`
	ProcessedBy string             `bson:"processedBy,omitempty" json:"processedBy,omitempty"`
	ProcessedAt time.Time          `bson:"processedAt,omitempty" json:"processedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Terminal reports whether the requisition can no longer change state.
func (r *Requisition) Terminal() bool {
	switch r.Status {
	case RequisitionIssued, RequisitionRejected, RequisitionCancelled:
		return true
	}
	return false
}
