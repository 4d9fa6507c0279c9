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

func TestPhysicalCount(t *testing.T) {
	svc, st, rec := newTestService(t)
	ctx := context.Background()
	a := mustCreateAsset(t, svc, juan)
	b := mustCreateAsset(t, svc, juan)

	updated, err := svc.PhysicalCount(ctx, staff, []workflows.PhysicalCountItem{
		{AssetID: a.ID, Status: models.StatusForRepair, Condition: "Defective", Remarks: "screen cracked"},
		{AssetID: b.ID, Status: models.StatusInStorage, Condition: "Good"},
	})
	require.NoError(t, err)
	require.Len(t, updated, 2)

	stored, err := st.GetAsset(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusForRepair, stored.Status)
	assert.Equal(t, "Defective", stored.Condition)
	assert.Equal(t, "screen cracked", stored.Remarks)

	// entries carry the count label, not "Updated"
	for _, e := range stored.History[1:] {
		assert.Equal(t, "Physical Count", e.Event)
	}

	events := rec.all()
	counted := 0
	for _, e := range events {
		if e.Event == "asset_counted" {
			counted++
		}
	}
	assert.Equal(t, 2, counted)
}

func TestPhysicalCountMissingClearsLinkageKeepsCustodian(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()
	asset := mustCreateAsset(t, svc, juan)

	_, err := svc.Assign(ctx, staff, workflows.AssignInput{
		Kind: models.DocPAR, Custodian: juan, AssetIDs: []primitive.ObjectID{asset.ID},
	})
	require.NoError(t, err)

	_, err = svc.PhysicalCount(ctx, staff, []workflows.PhysicalCountItem{
		{AssetID: asset.ID, Status: models.StatusMissing, Condition: "Unknown", Remarks: "not found during count"},
	})
	require.NoError(t, err)

	stored, err := st.GetAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusMissing, stored.Status)
	assert.Empty(t, stored.AssignedPAR)
	assert.Empty(t, stored.AssignedICS)
	assert.Equal(t, juan, stored.Custodian)
}

func TestPhysicalCountCannotSetWorkflowStatuses(t *testing.T) {
	svc, _, _ := newTestService(t)
	asset := mustCreateAsset(t, svc, juan)

	for _, status := range []string{models.StatusWaste, models.StatusDisposed} {
		_, err := svc.PhysicalCount(context.Background(), staff, []workflows.PhysicalCountItem{
			{AssetID: asset.ID, Status: status},
		})
		var ve *workflows.ValidationError
		require.ErrorAs(t, err, &ve, "status %q", status)
	}
}

func TestPhysicalCountDisposedAssetAbortsWholeCount(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()
	good := mustCreateAsset(t, svc, juan)
	bad := mustCreateAsset(t, svc, juan)

	_, err := svc.DisposeAsset(ctx, staff, bad.ID)
	require.NoError(t, err)

	_, err = svc.PhysicalCount(ctx, staff, []workflows.PhysicalCountItem{
		{AssetID: good.ID, Status: models.StatusInStorage, Condition: "Good"},
		{AssetID: bad.ID, Condition: "Scrap"},
	})
	var pe *workflows.PreconditionError
	require.ErrorAs(t, err, &pe)

	stored, err := st.GetAsset(ctx, good.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInUse, stored.Status)
}
