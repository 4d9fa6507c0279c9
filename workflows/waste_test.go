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

func TestCertifyWaste(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()
	asset := mustCreateAsset(t, svc, juan)

	doc, err := svc.CertifyWaste(ctx, staff, []primitive.ObjectID{asset.ID})
	require.NoError(t, err)
	assert.Equal(t, models.DocA68, doc.Kind)
	assert.Equal(t, "A68-2024-0001", doc.Number)

	stored, err := st.GetAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaste, stored.Status)

	last := stored.History[len(stored.History)-1]
	assert.Equal(t, "Certified as Waste", last.Event)
	assert.Equal(t, "Certified as waste under A68-2024-0001", last.Details)
}

func TestCertifyWasteRejectsDisposed(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	asset := mustCreateAsset(t, svc, juan)

	_, err := svc.DisposeAsset(ctx, staff, asset.ID)
	require.NoError(t, err)

	_, err = svc.CertifyWaste(ctx, staff, []primitive.ObjectID{asset.ID})
	var pe *workflows.PreconditionError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Reason, "already disposed")
}

func TestCertifyWasteRejectsDoubleCertification(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	asset := mustCreateAsset(t, svc, juan)

	_, err := svc.CertifyWaste(ctx, staff, []primitive.ObjectID{asset.ID})
	require.NoError(t, err)

	_, err = svc.CertifyWaste(ctx, staff, []primitive.ObjectID{asset.ID})
	var pe *workflows.PreconditionError
	require.ErrorAs(t, err, &pe)
}

func TestWasteThenDisposeIsAllowed(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	asset := mustCreateAsset(t, svc, juan)

	_, err := svc.CertifyWaste(ctx, staff, []primitive.ObjectID{asset.ID})
	require.NoError(t, err)

	disposed, err := svc.DisposeAsset(ctx, staff, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDisposed, disposed.Status)
}

func TestInspectLeavesStatusUntouched(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()
	asset := mustCreateAsset(t, svc, juan)

	doc, err := svc.Inspect(ctx, staff, []primitive.ObjectID{asset.ID})
	require.NoError(t, err)
	assert.Equal(t, models.DocIIRUP, doc.Kind)
	assert.Equal(t, "IIRUP-2024-0001", doc.Number)
	require.Len(t, doc.Assets, 1)
	assert.Equal(t, "Good", doc.Assets[0].Condition)

	stored, err := st.GetAsset(ctx, asset.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInUse, stored.Status)

	last := stored.History[len(stored.History)-1]
	assert.Equal(t, "Inspection", last.Event)
	assert.Equal(t, "Inspected under IIRUP-2024-0001", last.Details)
}

func TestCancelDocument(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	asset := mustCreateAsset(t, svc, juan)

	doc, err := svc.Inspect(ctx, staff, []primitive.ObjectID{asset.ID})
	require.NoError(t, err)

	cancelled, err := svc.CancelDocument(ctx, staff, doc.ID)
	require.NoError(t, err)
	assert.True(t, cancelled.Cancelled)

	_, err = svc.CancelDocument(ctx, staff, doc.ID)
	var pe *workflows.PreconditionError
	require.ErrorAs(t, err, &pe)
}
