// models/history.go
package models

import "time"

// HistoryEntry is one record in an asset's audit trail. Entries are
// append-only: once written they are never edited or removed. Display
// order is by Date, not insertion order, because imports may pre-date
// entries.
type HistoryEntry struct {
	Event   string    `bson:"event" json:"event"` // Created, Updated, Transfer, Physical Count, Disposed, Inspection, Certified as Waste, Assignment
	Details string    `bson:"details" json:"details"`
	User    string    `bson:"user" json:"user"` // actor name or "System"
	Date    time.Time `bson:"date" json:"date"`
}

// RepairRecord is one entry in an asset's repair history, append-only.
type RepairRecord struct {
	Date   time.Time `bson:"date" json:"date"`
	Nature string    `bson:"nature" json:"nature"`
	Amount float64   `bson:"amount" json:"amount"`
}
