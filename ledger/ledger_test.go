package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gso/models"
)

var testDate = time.Date(2024, time.March, 5, 10, 30, 0, 0, time.UTC)

func snap(a *models.Asset) *models.Asset {
	cp := a.Snapshot()
	return &cp
}

func TestCreatedEntry(t *testing.T) {
	e := Created("Asset", "2024-05-06-07-0001", "Juan Dela Cruz", testDate)
	assert.Equal(t, "Created", e.Event)
	assert.Equal(t, "Asset 2024-05-06-07-0001 registered", e.Details)
	assert.Equal(t, "Juan Dela Cruz", e.User)
	assert.Equal(t, testDate, e.Date)
}

func TestEntryDefaultsActorToSystem(t *testing.T) {
	e := Entry("Updated", "something", "", testDate)
	assert.Equal(t, SystemActor, e.User)
}

func TestRecordAssetMutationNilPrevYieldsSingleCreated(t *testing.T) {
	cur := &models.Asset{PropertyNumber: "2024-05-06-07-0003"}
	entries := RecordAssetMutation(nil, cur, "Ana", "", testDate)
	require.Len(t, entries, 1)
	assert.Equal(t, "Created", entries[0].Event)
	assert.Equal(t, "Asset 2024-05-06-07-0003 registered", entries[0].Details)
}

func TestRecordAssetMutationOneEntryPerChangedField(t *testing.T) {
	prev := &models.Asset{
		Description: "Laptop",
		Status:      models.StatusInStorage,
		Condition:   "Good",
	}
	cur := prev.Snapshot()
	cur.Status = models.StatusForRepair
	cur.Condition = "Defective"

	entries := RecordAssetMutation(prev, &cur, "Ana", "", testDate)
	require.Len(t, entries, 2)
	assert.Equal(t, "Updated", entries[0].Event)
	assert.Equal(t, "Condition changed from 'Good' to 'Defective'", entries[0].Details)
	assert.Equal(t, "Status changed from 'In Storage' to 'For Repair'", entries[1].Details)
}

func TestRecordAssetMutationNoChangesNoEntries(t *testing.T) {
	prev := &models.Asset{Description: "Laptop"}
	assert.Empty(t, RecordAssetMutation(prev, snap(prev), "Ana", "", testDate))
}

func TestRecordAssetMutationEventOverride(t *testing.T) {
	prev := &models.Asset{Status: models.StatusInUse}
	cur := prev.Snapshot()
	cur.Status = models.StatusMissing

	entries := RecordAssetMutation(prev, &cur, "Ana", "Physical Count", testDate)
	require.Len(t, entries, 1)
	assert.Equal(t, "Physical Count", entries[0].Event)
}

func TestDiffAssetRendersBlanksAsEmpty(t *testing.T) {
	prev := &models.Asset{}
	cur := prev.Snapshot()
	cur.Remarks = "found dented"

	changes := DiffAsset(prev, &cur)
	require.Len(t, changes, 1)
	assert.Equal(t, "Remarks", changes[0].Field)
	assert.Equal(t, "empty", changes[0].Before)
	assert.Equal(t, "found dented", changes[0].After)
}

func TestDiffAssetRendersDatesAndMoney(t *testing.T) {
	prev := &models.Asset{
		AcquisitionDate: time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC),
		AcquisitionCost: 12345.67,
	}
	cur := prev.Snapshot()
	cur.AcquisitionDate = time.Date(2023, time.August, 15, 0, 0, 0, 0, time.UTC)
	cur.AcquisitionCost = 1500000

	changes := DiffAsset(prev, &cur)
	require.Len(t, changes, 2)
	assert.Equal(t, "Acquisition Date changed from '2023-07-01' to '2023-08-15'", changes[0].details())
	assert.Equal(t, "Acquisition Cost changed from '₱12,345.67' to '₱1,500,000.00'", changes[1].details())
}

func TestDiffAssetRendersCustodian(t *testing.T) {
	prev := &models.Asset{}
	cur := prev.Snapshot()
	cur.Custodian = models.Custodian{Name: "Juan Dela Cruz", Office: "Mayor's Office"}

	changes := DiffAsset(prev, &cur)
	require.Len(t, changes, 1)
	assert.Equal(t, "Custodian changed from 'empty' to 'Juan Dela Cruz (Mayor's Office)'", changes[0].details())
}

func TestDiffAssetIgnoresCollections(t *testing.T) {
	prev := &models.Asset{}
	cur := prev.Snapshot()
	cur.History = append(cur.History, models.HistoryEntry{Event: "Created"})
	cur.RepairHistory = append(cur.RepairHistory, models.RepairRecord{Nature: "replaced fan"})
	cur.Attachments = append(cur.Attachments, models.Attachment{Key: "abc"})

	assert.Empty(t, DiffAsset(prev, &cur))
}

func TestDiffProperty(t *testing.T) {
	prev := &models.Property{Name: "Old Hall", Status: models.PropertyInUse}
	cur := prev.Snapshot()
	cur.Status = models.PropertyForDisposal

	changes := DiffProperty(prev, &cur)
	require.Len(t, changes, 1)
	assert.Equal(t, "Status changed from 'In Use' to 'For Disposal'", changes[0].details())
}

func TestRenderYears(t *testing.T) {
	assert.Equal(t, "empty", renderYears(0))
	assert.Equal(t, "1 year", renderYears(1))
	assert.Equal(t, "10 years", renderYears(10))
}

func TestRenderCurrency(t *testing.T) {
	assert.Equal(t, "₱0.00", Currency(0))
	assert.Equal(t, "₱999.50", Currency(999.5))
	assert.Equal(t, "₱12,345.67", Currency(12345.67))
	assert.Equal(t, "₱1,500,000.00", Currency(1500000))
	assert.Equal(t, "-₱250.00", Currency(-250))
}

func TestSortByDateIsStable(t *testing.T) {
	d1 := testDate
	d2 := testDate.Add(time.Hour)
	entries := []models.HistoryEntry{
		{Event: "b", Date: d2},
		{Event: "a1", Date: d1},
		{Event: "a2", Date: d1},
	}
	SortByDate(entries)
	assert.Equal(t, "a1", entries[0].Event)
	assert.Equal(t, "a2", entries[1].Event)
	assert.Equal(t, "b", entries[2].Event)
}
