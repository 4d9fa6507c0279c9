package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gso/models"
	"gso/store/memstore"
	"gso/workflows"
)

func newTestEnv(t *testing.T) *Env {
	t.Helper()
	st := memstore.New()
	ctx := context.Background()
	for _, o := range []models.Office{
		{Name: "Mayor's Office", Code: "07"},
		{Name: "Accounting Office", Code: "11"},
	} {
		office := o
		require.NoError(t, st.InsertOffice(ctx, &office))
	}
	svc := workflows.New(st, nil)
	svc.SetClock(func() time.Time {
		return time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	})
	return &Env{Store: st, Service: svc}
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func createTestAsset(t *testing.T, env *Env) models.Asset {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/assets", jsonBody(t, map[string]interface{}{
		"description":   "Laptop",
		"category":      "ICT Equipment",
		"subMajorGroup": "05",
		"glAccount":     "06",
		"custodian":     map[string]string{"name": "Juan Dela Cruz", "office": "Mayor's Office"},
	}))
	rr := httptest.NewRecorder()
	env.CreateAsset(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var asset models.Asset
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &asset))
	return asset
}

func TestCreateAssetEndpoint(t *testing.T) {
	env := newTestEnv(t)
	asset := createTestAsset(t, env)
	assert.Equal(t, "2024-05-06-07-0001", asset.PropertyNumber)
	assert.Equal(t, models.StatusInUse, asset.Status)
}

func TestCreateAssetEndpointRejectsBadBody(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/api/assets", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	env.CreateAsset(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateAssetEndpointValidationIs400(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/api/assets", jsonBody(t, map[string]interface{}{
		"description": "Laptop",
	}))
	rr := httptest.NewRecorder()
	env.CreateAsset(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetAssetEndpoint(t *testing.T) {
	env := newTestEnv(t)
	asset := createTestAsset(t, env)

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/assets/x", nil),
		map[string]string{"id": asset.ID.Hex()})
	rr := httptest.NewRecorder()
	env.GetAsset(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var got models.Asset
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, asset.PropertyNumber, got.PropertyNumber)
}

func TestGetAssetEndpointBadID(t *testing.T) {
	env := newTestEnv(t)
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/assets/x", nil),
		map[string]string{"id": "not-a-hex-id"})
	rr := httptest.NewRecorder()
	env.GetAsset(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetAssetEndpointNotFound(t *testing.T) {
	env := newTestEnv(t)
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/assets/x", nil),
		map[string]string{"id": "665f1f77bcf86cd799439011"})
	rr := httptest.NewRecorder()
	env.GetAsset(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDisposeTwiceIsConflict(t *testing.T) {
	env := newTestEnv(t)
	asset := createTestAsset(t, env)
	vars := map[string]string{"id": asset.ID.Hex()}

	req := mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/api/assets/x/dispose", nil), vars)
	rr := httptest.NewRecorder()
	env.DisposeAsset(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req = mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/api/assets/x/dispose", nil), vars)
	rr = httptest.NewRecorder()
	env.DisposeAsset(rr, req)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestListAssetsEndpointFiltersByOffice(t *testing.T) {
	env := newTestEnv(t)
	createTestAsset(t, env)

	req := httptest.NewRequest(http.MethodGet, "/api/assets?office=Accounting+Office", nil)
	rr := httptest.NewRecorder()
	env.ListAssets(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var assets []models.Asset
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &assets))
	assert.Empty(t, assets)

	req = httptest.NewRequest(http.MethodGet, "/api/assets?office=Mayor%27s+Office", nil)
	rr = httptest.NewRecorder()
	env.ListAssets(rr, req)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &assets))
	assert.Len(t, assets, 1)
}

func TestAssignEndpoint(t *testing.T) {
	env := newTestEnv(t)
	asset := createTestAsset(t, env)

	req := httptest.NewRequest(http.MethodPost, "/api/documents/assign", jsonBody(t, map[string]interface{}{
		"kind":      models.DocICS,
		"custodian": map[string]string{"name": "Maria Santos", "office": "Accounting Office"},
		"assetIds":  []string{asset.ID.Hex()},
	}))
	rr := httptest.NewRecorder()
	env.Assign(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var doc models.Document
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	assert.Equal(t, "ICS-2024-0001", doc.Number)
}

func TestAssetDepreciationEndpoint(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	asset, err := env.Service.CreateAsset(ctx, workflows.Actor{Name: "System"}, workflows.CreateAssetInput{
		Description:     "Laptop",
		Category:        "ICT Equipment",
		SubMajorGroup:   "05",
		GLAccount:       "06",
		AcquisitionDate: time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC),
		AcquisitionCost: 120000,
		UsefulLife:      10,
		Custodian:       models.Custodian{Name: "Juan Dela Cruz", Office: "Mayor's Office"},
	})
	require.NoError(t, err)

	req := mux.SetURLVars(
		httptest.NewRequest(http.MethodGet, "/api/assets/x/depreciation?asOf=2023-12-31", nil),
		map[string]string{"id": asset.ID.Hex()})
	rr := httptest.NewRecorder()
	env.AssetDepreciation(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var out map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, "12000.00", out["annualDepreciation"])
	assert.Equal(t, "35991.79", out["accumulatedEnd"])
	assert.Equal(t, "84008.21", out["bookValue"])
	assert.Equal(t, "2023-12-31", out["asOf"])
}
