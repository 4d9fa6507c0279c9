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

func TestAssignICS(t *testing.T) {
	svc, st, rec := newTestService(t)
	ctx := context.Background()
	asset := mustCreateAsset(t, svc, juan)

	doc, err := svc.Assign(ctx, staff, workflows.AssignInput{
		Kind:      models.DocICS,
		Custodian: maria,
		AssetIDs:  []primitive.ObjectID{asset.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, models.DocICS, doc.Kind)
	assert.Equal(t, "ICS-2024-0001", doc.Number)
	assert.Equal(t, staff.Name, doc.Issuer)
	require.NotNil(t, doc.Custodian)
	assert.Equal(t, maria, *doc.Custodian)
	require.Len(t, doc.Assets, 1)
	assert.Equal(t, asset.PropertyNumber, doc.Assets[0].PropertyNumber)

	stored, err := st.GetAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, maria, stored.Custodian)
	assert.Equal(t, models.StatusInUse, stored.Status)
	assert.Equal(t, "ICS-2024-0001", stored.AssignedICS)
	assert.Empty(t, stored.AssignedPAR)

	last := stored.History[len(stored.History)-1]
	assert.Equal(t, "Assignment", last.Event)
	assert.Equal(t, "Assigned to Maria Santos (Accounting Office) under ICS-2024-0001", last.Details)

	events := rec.all()
	require.NotEmpty(t, events)
	assert.Equal(t, recordedEvent{Room: maria.Office, Event: "document_issued"}, events[len(events)-1])
}

func TestAssignPARClearsICSLinkage(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()
	asset := mustCreateAsset(t, svc, juan)

	_, err := svc.Assign(ctx, staff, workflows.AssignInput{
		Kind:      models.DocICS,
		Custodian: juan,
		AssetIDs:  []primitive.ObjectID{asset.ID},
	})
	require.NoError(t, err)

	doc, err := svc.Assign(ctx, staff, workflows.AssignInput{
		Kind:      models.DocPAR,
		Custodian: juan,
		AssetIDs:  []primitive.ObjectID{asset.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "PAR-2024-0001", doc.Number)

	stored, err := st.GetAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, "PAR-2024-0001", stored.AssignedPAR)
	assert.Empty(t, stored.AssignedICS)
}

func TestAssignSequencesPerKind(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	a := mustCreateAsset(t, svc, juan)
	b := mustCreateAsset(t, svc, juan)

	ics, err := svc.Assign(ctx, staff, workflows.AssignInput{
		Kind: models.DocICS, Custodian: juan, AssetIDs: []primitive.ObjectID{a.ID},
	})
	require.NoError(t, err)
	par, err := svc.Assign(ctx, staff, workflows.AssignInput{
		Kind: models.DocPAR, Custodian: juan, AssetIDs: []primitive.ObjectID{b.ID},
	})
	require.NoError(t, err)

	// each kind keeps its own counter
	assert.Equal(t, "ICS-2024-0001", ics.Number)
	assert.Equal(t, "PAR-2024-0001", par.Number)
}

func TestAssignRejectsUnknownKind(t *testing.T) {
	svc, _, _ := newTestService(t)
	asset := mustCreateAsset(t, svc, juan)

	_, err := svc.Assign(context.Background(), staff, workflows.AssignInput{
		Kind: models.DocPTR, Custodian: juan, AssetIDs: []primitive.ObjectID{asset.ID},
	})
	var ve *workflows.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestAssignDisposedAssetAbortsWholeBatch(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	good := mustCreateAsset(t, svc, juan)
	bad := mustCreateAsset(t, svc, juan)
	_, err := svc.DisposeAsset(ctx, staff, bad.ID)
	require.NoError(t, err)

	_, err = svc.Assign(ctx, staff, workflows.AssignInput{
		Kind:      models.DocICS,
		Custodian: maria,
		AssetIDs:  []primitive.ObjectID{good.ID, bad.ID},
	})
	var pe *workflows.PreconditionError
	require.ErrorAs(t, err, &pe)

	// the good asset is untouched by the failed batch
	stored, err := st.GetAsset(ctx, good.ID)
	require.NoError(t, err)
	assert.Equal(t, juan, stored.Custodian)
	assert.Empty(t, stored.AssignedICS)

	docs, err := st.ListDocuments(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestAssignSnapshotIsFrozen(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()
	asset := mustCreateAsset(t, svc, juan)

	doc, err := svc.Assign(ctx, staff, workflows.AssignInput{
		Kind: models.DocICS, Custodian: juan, AssetIDs: []primitive.ObjectID{asset.ID},
	})
	require.NoError(t, err)

	desc := "Laptop (repainted)"
	_, err = svc.UpdateAsset(ctx, staff, asset.ID, workflows.UpdateAssetInput{Description: &desc})
	require.NoError(t, err)

	stored, err := st.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", stored.Assets[0].Description)
}
