// models/asset.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Movable asset statuses. Transitions are governed by the workflow layer,
// never by bare field edits.
const (
	StatusInUse     = "In Use"
	StatusInStorage = "In Storage"
	StatusForRepair = "For Repair"
	StatusMissing   = "Missing"
	StatusWaste     = "Waste"
	StatusDisposed  = "Disposed"
)

// Custodian is the person/office currently accountable for an asset.
// Embedded directly, not a reference; the office name must resolve to an
// existing Office record at assignment time.
type Custodian struct {
	Name        string `bson:"name" json:"name"`
	Office      string `bson:"office" json:"office"`
	Designation string `bson:"designation,omitempty" json:"designation,omitempty"`
}

// Attachment is file metadata owned by the asset. The binary lives in
// external object storage, referenced only by Key.
type Attachment struct {
	Key          string    `bson:"key" json:"key"`
	Title        string    `bson:"title" json:"title"`
	OriginalName string    `bson:"originalName" json:"originalName"`
	ContentType  string    `bson:"contentType" json:"contentType"`
	Size         int64     `bson:"size" json:"size"`
	UploadedBy   string    `bson:"uploadedBy" json:"uploadedBy"`
	UploadedAt   time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

// Asset is a movable property record. PropertyNumber is assigned once at
// creation and immutable thereafter; "deletion" is always a status change
// to Disposed, never physical removal.
type Asset struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PropertyNumber   string             `bson:"propertyNumber" json:"propertyNumber"`
	Description      string             `bson:"description" json:"description"`
	Category         string             `bson:"category" json:"category"`
	SubMajorGroup    string             `bson:"subMajorGroup,omitempty" json:"subMajorGroup,omitempty"`
	GLAccount        string             `bson:"glAccount,omitempty" json:"glAccount,omitempty"`
	AcquisitionDate  time.Time          `bson:"acquisitionDate" json:"acquisitionDate"`
	AcquisitionCost  float64            `bson:"acquisitionCost" json:"acquisitionCost"`
	FundSource       string             `bson:"fundSource,omitempty" json:"fundSource,omitempty"`
	UsefulLife       int                `bson:"usefulLife" json:"usefulLife"` // years
	SalvageValue     float64            `bson:"salvageValue" json:"salvageValue"`
	ImpairmentLosses float64            `bson:"impairmentLosses" json:"impairmentLosses"`
	Condition        string             `bson:"condition,omitempty" json:"condition,omitempty"`
	Remarks          string             `bson:"remarks,omitempty" json:"remarks,omitempty"`
	Status           string             `bson:"status" json:"status"`
	Custodian        Custodian          `bson:"custodian" json:"custodian"`

	// Active custody slip linkage. Cleared when the asset goes Missing;
	// the custodian is retained for accountability.
	AssignedPAR string `bson:"assignedPAR,omitempty" json:"assignedPAR,omitempty"`
	AssignedICS string `bson:"assignedICS,omitempty" json:"assignedICS,omitempty"`

	Attachments   []Attachment   `bson:"attachments,omitempty" json:"attachments"`
	History       []HistoryEntry `bson:"history" json:"history"`
	RepairHistory []RepairRecord `bson:"repairHistory,omitempty" json:"repairHistory"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AssignedDocument returns the active custody slip number, if any.
func (a *Asset) AssignedDocument() string {
	if a.AssignedPAR != "" {
		return a.AssignedPAR
	}
	return a.AssignedICS
}

// Snapshot returns a copy of the asset with owned slices cloned, suitable
// as a pre-mutation snapshot for the audit ledger.
func (a *Asset) Snapshot() Asset {
	cp := *a
	cp.Attachments = append([]Attachment(nil), a.Attachments...)
	cp.History = append([]HistoryEntry(nil), a.History...)
	cp.RepairHistory = append([]RepairRecord(nil), a.RepairHistory...)
	return cp
}
