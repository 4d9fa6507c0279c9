// Package ledger builds the append-only audit trail entries attached to
// asset records.
//
// Workflows pass the pre-mutation snapshot explicitly and append the
// returned entries inside the same transaction that persists the entity,
// so an entry can never exist without its mutation or vice versa. There
// is no save-hook interception and no second code path for bulk inserts.
//
// Entries are never edited or removed. Array-typed collections that
// workflows manage with explicit manual entries (repair history,
// attachments) are not diffed here; the owning workflow appends the
// single correct entry itself.
package ledger

import (
	"fmt"
	"sort"
	"time"

	"gso/models"
)

// SystemActor attributes entries produced without a signed-in user.
const SystemActor = "System"

// EventUpdated is the default event label when the workflow supplies none.
const EventUpdated = "Updated"

// Change is one semantically meaningful field difference, already
// rendered for display.
type Change struct {
	Field  string
	Before string
	After  string
}

func (c Change) details() string {
	return fmt.Sprintf("%s changed from '%s' to '%s'", c.Field, c.Before, c.After)
}

// Entry builds a single history entry.
func Entry(event, details, actor string, at time.Time) models.HistoryEntry {
	if actor == "" {
		actor = SystemActor
	}
	return models.HistoryEntry{Event: event, Details: details, User: actor, Date: at}
}

// Created builds the single entry a brand-new record receives instead of
// per-field diffs.
func Created(kind, number, actor string, at time.Time) models.HistoryEntry {
	return Entry("Created", fmt.Sprintf("%s %s registered", kind, number), actor, at)
}

// RecordAssetMutation diffs prev against cur and returns one entry per
// changed field. A nil prev means the asset is brand new and yields
// exactly one "Created" entry. event overrides the default "Updated"
// label (e.g. "Physical Count").
func RecordAssetMutation(prev, cur *models.Asset, actor, event string, at time.Time) []models.HistoryEntry {
	if prev == nil {
		return []models.HistoryEntry{Created("Asset", cur.PropertyNumber, actor, at)}
	}
	if event == "" {
		event = EventUpdated
	}
	changes := DiffAsset(prev, cur)
	entries := make([]models.HistoryEntry, 0, len(changes))
	for _, c := range changes {
		entries = append(entries, Entry(event, c.details(), actor, at))
	}
	return entries
}

// RecordPropertyMutation is the immovable-property counterpart of
// RecordAssetMutation.
func RecordPropertyMutation(prev, cur *models.Property, actor, event string, at time.Time) []models.HistoryEntry {
	if prev == nil {
		return []models.HistoryEntry{Created("Property", cur.PropertyIndexNumber, actor, at)}
	}
	if event == "" {
		event = EventUpdated
	}
	changes := DiffProperty(prev, cur)
	entries := make([]models.HistoryEntry, 0, len(changes))
	for _, c := range changes {
		entries = append(entries, Entry(event, c.details(), actor, at))
	}
	return entries
}

// DiffAsset compares the semantically meaningful fields of two asset
// states. Collections (history, repairs, attachments) are deliberately
// excluded.
func DiffAsset(prev, cur *models.Asset) []Change {
	var out []Change
	add := func(field, before, after string) {
		if before != after {
			out = append(out, Change{Field: field, Before: before, After: after})
		}
	}
	add("Description", renderString(prev.Description), renderString(cur.Description))
	add("Category", renderString(prev.Category), renderString(cur.Category))
	add("Acquisition Date", renderDate(prev.AcquisitionDate), renderDate(cur.AcquisitionDate))
	add("Acquisition Cost", renderCurrency(prev.AcquisitionCost), renderCurrency(cur.AcquisitionCost))
	add("Fund Source", renderString(prev.FundSource), renderString(cur.FundSource))
	add("Useful Life", renderYears(prev.UsefulLife), renderYears(cur.UsefulLife))
	add("Salvage Value", renderCurrency(prev.SalvageValue), renderCurrency(cur.SalvageValue))
	add("Impairment Losses", renderCurrency(prev.ImpairmentLosses), renderCurrency(cur.ImpairmentLosses))
	add("Condition", renderString(prev.Condition), renderString(cur.Condition))
	add("Remarks", renderString(prev.Remarks), renderString(cur.Remarks))
	add("Status", renderString(prev.Status), renderString(cur.Status))
	add("Custodian", renderCustodian(prev.Custodian), renderCustodian(cur.Custodian))
	add("Assigned PAR", renderString(prev.AssignedPAR), renderString(cur.AssignedPAR))
	add("Assigned ICS", renderString(prev.AssignedICS), renderString(cur.AssignedICS))
	return out
}

// DiffProperty compares the fields of two immovable-property states.
func DiffProperty(prev, cur *models.Property) []Change {
	var out []Change
	add := func(field, before, after string) {
		if before != after {
			out = append(out, Change{Field: field, Before: before, After: after})
		}
	}
	add("Name", renderString(prev.Name), renderString(cur.Name))
	add("Description", renderString(prev.Description), renderString(cur.Description))
	add("Classification", renderString(prev.Classification), renderString(cur.Classification))
	add("Location", renderString(prev.Location), renderString(cur.Location))
	add("Acquisition Date", renderDate(prev.AcquisitionDate), renderDate(cur.AcquisitionDate))
	add("Acquisition Cost", renderCurrency(prev.AcquisitionCost), renderCurrency(cur.AcquisitionCost))
	add("Fund Source", renderString(prev.FundSource), renderString(cur.FundSource))
	add("Useful Life", renderYears(prev.UsefulLife), renderYears(cur.UsefulLife))
	add("Salvage Value", renderCurrency(prev.SalvageValue), renderCurrency(cur.SalvageValue))
	add("Impairment Losses", renderCurrency(prev.ImpairmentLosses), renderCurrency(cur.ImpairmentLosses))
	add("Condition", renderString(prev.Condition), renderString(cur.Condition))
	add("Remarks", renderString(prev.Remarks), renderString(cur.Remarks))
	add("Status", renderString(prev.Status), renderString(cur.Status))
	add("Custodian", renderCustodian(prev.Custodian), renderCustodian(cur.Custodian))
	return out
}

// SortByDate orders entries by their Date field, the canonical history
// order. Stable so same-timestamp entries keep append order.
func SortByDate(entries []models.HistoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
}
