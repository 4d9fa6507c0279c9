// models/property.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Immovable property statuses.
const (
	PropertyInUse             = "In Use"
	PropertyUnderConstruction = "Under Construction"
	PropertyIdle              = "Idle"
	PropertyForDisposal       = "For Disposal"
	PropertyDisposed          = "Disposed"
)

// StructuralRecord describes a component of an immovable property
// (a building wing, a fence, a paved area).
type StructuralRecord struct {
	Name          string    `bson:"name" json:"name"`
	Description   string    `bson:"description,omitempty" json:"description,omitempty"`
	DateCompleted time.Time `bson:"dateCompleted,omitempty" json:"dateCompleted,omitempty"`
	Cost          float64   `bson:"cost" json:"cost"`
}

// Property is an immovable asset (land, building, structure). It shares
// the lifecycle concepts of Asset: soft deletes, an embedded custodian,
// and an append-only history ledger.
type Property struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PropertyIndexNumber string             `bson:"propertyIndexNumber" json:"propertyIndexNumber"`
	Name                string             `bson:"name" json:"name"`
	Description         string             `bson:"description,omitempty" json:"description,omitempty"`
	Classification      string             `bson:"classification" json:"classification"` // Land, Building, Other Structures
	Location            string             `bson:"location,omitempty" json:"location,omitempty"`
	AcquisitionDate     time.Time          `bson:"acquisitionDate" json:"acquisitionDate"`
	AcquisitionCost     float64            `bson:"acquisitionCost" json:"acquisitionCost"`
	FundSource          string             `bson:"fundSource,omitempty" json:"fundSource,omitempty"`
	UsefulLife          int                `bson:"usefulLife,omitempty" json:"usefulLife,omitempty"`
	SalvageValue        float64            `bson:"salvageValue,omitempty" json:"salvageValue,omitempty"`
	ImpairmentLosses    float64            `bson:"impairmentLosses,omitempty" json:"impairmentLosses,omitempty"`
	Condition           string             `bson:"condition,omitempty" json:"condition,omitempty"`
	Remarks             string             `bson:"remarks,omitempty" json:"remarks,omitempty"`
	Status              string             `bson:"status" json:"status"`
	Custodian           Custodian          `bson:"custodian" json:"custodian"`
	Structures          []StructuralRecord `bson:"structures,omitempty" json:"structures"`
	Attachments         []Attachment       `bson:"attachments,omitempty" json:"attachments"`
	History             []HistoryEntry     `bson:"history" json:"history"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Snapshot returns a copy of the property with owned slices cloned.
func (p *Property) Snapshot() Property {
	cp := *p
	cp.Structures = append([]StructuralRecord(nil), p.Structures...)
	cp.Attachments = append([]Attachment(nil), p.Attachments...)
	cp.History = append([]HistoryEntry(nil), p.History...)
	return cp
}
