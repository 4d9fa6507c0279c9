// models/document.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document kinds. Slips share ~80% structure, so they live in a single
// collection discriminated by Kind, with kind-specific payload fields on
// the shared record (a closed tagged variant, not inheritance).
const (
	DocPAR   = "PAR"   // Property Acknowledgment Receipt
	DocICS   = "ICS"   // Inventory Custodian Slip
	DocPTR   = "PTR"   // Property Transfer Report
	DocIIRUP = "IIRUP" // Inventory & Inspection Report of Unserviceable Property
	DocA68   = "A68"   // Appendix 68 waste certification
	DocRR    = "RR"    // Receiving Report
	DocRIS   = "RIS"   // Requisition and Issue Slip
)

// AssetSnapshot is a point-in-time copy of an asset embedded in a slip.
// It never updates when the live asset changes later; the document
// reflects what was true when it was issued.
type AssetSnapshot struct {
	AssetID         primitive.ObjectID `bson:"assetId" json:"assetId"`
	PropertyNumber  string             `bson:"propertyNumber" json:"propertyNumber"`
	Description     string             `bson:"description" json:"description"`
	AcquisitionCost float64            `bson:"acquisitionCost" json:"acquisitionCost"`
	AcquisitionDate time.Time          `bson:"acquisitionDate" json:"acquisitionDate"`
	Condition       string             `bson:"condition,omitempty" json:"condition,omitempty"`
	Remarks         string             `bson:"remarks,omitempty" json:"remarks,omitempty"`
}

// ReceivedItem is one line of a Receiving Report.
type ReceivedItem struct {
	Description string  `bson:"description" json:"description"`
	Unit        string  `bson:"unit,omitempty" json:"unit,omitempty"`
	Quantity    int     `bson:"quantity" json:"quantity"`
	UnitCost    float64 `bson:"unitCost" json:"unitCost"`
}

// Document is a custody/transfer/disposal slip. Created once by a
// workflow, immutable afterwards except for the cancellation flag;
// never physically deleted.
type Document struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Kind   string             `bson:"kind" json:"kind"`
	Number string             `bson:"number" json:"number"` // sequence-derived, unique
	Date   time.Time          `bson:"date" json:"date"`
	Issuer string             `bson:"issuer" json:"issuer"` // issuing user's name

	Assets []AssetSnapshot `bson:"assets,omitempty" json:"assets,omitempty"`

	// PAR/ICS: the receiving custodian. PTR: the destination.
	Custodian *Custodian `bson:"custodian,omitempty" json:"custodian,omitempty"`

	// PTR only.
	FromCustodian *Custodian `bson:"fromCustodian,omitempty" json:"fromCustodian,omitempty"`
	TransferDate  time.Time  `bson:"transferDate,omitempty" json:"transferDate,omitempty"`

	// RR only.
	Supplier      string         `bson:"supplier,omitempty" json:"supplier,omitempty"`
	ReceivedItems []ReceivedItem `bson:"receivedItems,omitempty" json:"receivedItems,omitempty"`

	// RIS only: the requisition this slip was issued against.
	RequisitionID primitive.ObjectID `bson:"requisitionId,omitempty" json:"requisitionId,omitempty"`

	Cancelled   bool      `bson:"cancelled" json:"cancelled"`
	CancelledBy string    `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
	CancelledAt time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
