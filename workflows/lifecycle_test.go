package workflows_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gso/models"
	"gso/workflows"
)

// Walks one asset through its whole life and checks the audit trail
// reads back as the complete story, in order.
func TestAssetLifecycle(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	asset := mustCreateAsset(t, svc, juan)

	_, err := svc.Assign(ctx, staff, workflows.AssignInput{
		Kind: models.DocICS, Custodian: juan, AssetIDs: []primitive.ObjectID{asset.ID},
	})
	require.NoError(t, err)

	_, err = svc.Transfer(ctx, staff, workflows.TransferInput{
		AssetIDs: []primitive.ObjectID{asset.ID}, NewCustodian: maria, TransferDate: testNow,
	})
	require.NoError(t, err)

	_, err = svc.AddRepairRecord(ctx, staff, asset.ID, models.RepairRecord{Nature: "replaced fan", Amount: 800})
	require.NoError(t, err)

	_, err = svc.PhysicalCount(ctx, staff, []workflows.PhysicalCountItem{
		{AssetID: asset.ID, Status: models.StatusForRepair, Condition: "Defective"},
	})
	require.NoError(t, err)

	_, err = svc.CertifyWaste(ctx, staff, []primitive.ObjectID{asset.ID})
	require.NoError(t, err)

	final, err := svc.DisposeAsset(ctx, staff, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDisposed, final.Status)

	var events []string
	for _, e := range final.History {
		events = append(events, e.Event)
	}
	assert.Equal(t, []string{
		"Created",
		"Assignment",
		"Transfer",
		"Updated", // repair
		"Physical Count", "Physical Count",
		"Certified as Waste",
		"Disposed",
	}, events)

	// every workflow minted its own document
	docs, err := st.ListDocuments(ctx, "")
	require.NoError(t, err)
	kinds := map[string]int{}
	for _, d := range docs {
		kinds[d.Kind]++
	}
	assert.Equal(t, map[string]int{models.DocICS: 1, models.DocPTR: 1, models.DocA68: 1}, kinds)
}
