package workflows_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gso/models"
	"gso/store/memstore"
	"gso/workflows"
)

var testNow = time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

var (
	staff = workflows.Actor{Name: "GSO Staff", Office: "General Services Office", Role: "gso_staff"}
	juan  = models.Custodian{Name: "Juan Dela Cruz", Office: "Mayor's Office", Designation: "Admin Aide"}
	maria = models.Custodian{Name: "Maria Santos", Office: "Accounting Office", Designation: "Bookkeeper"}
)

// recorder captures notifications for assertions.
type recorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	Room  string
	Event string
}

func (r *recorder) Notify(room, event string, payload interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{Room: room, Event: event})
}

func (r *recorder) all() []recordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedEvent(nil), r.events...)
}

// newTestService wires the workflow service to a fresh in-memory store
// with the standard offices seeded and the clock pinned to testNow.
func newTestService(t *testing.T) (*workflows.Service, *memstore.Store, *recorder) {
	t.Helper()
	st := memstore.New()
	ctx := context.Background()

	for _, o := range []models.Office{
		{Name: "Mayor's Office", Code: "07"},
		{Name: "Accounting Office", Code: "11"},
		{Name: "General Services Office", Code: "01"},
	} {
		office := o
		require.NoError(t, st.InsertOffice(ctx, &office))
	}

	rec := &recorder{}
	svc := workflows.New(st, rec)
	svc.SetClock(func() time.Time { return testNow })
	return svc, st, rec
}

func laptopInput(c models.Custodian) workflows.CreateAssetInput {
	return workflows.CreateAssetInput{
		Description:     "Laptop",
		Category:        "ICT Equipment",
		SubMajorGroup:   "05",
		GLAccount:       "06",
		AcquisitionDate: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		AcquisitionCost: 55000,
		FundSource:      "General Fund",
		UsefulLife:      5,
		Condition:       "Good",
		Custodian:       c,
	}
}

func mustCreateAsset(t *testing.T, svc *workflows.Service, c models.Custodian) *models.Asset {
	t.Helper()
	asset, err := svc.CreateAsset(context.Background(), staff, laptopInput(c))
	require.NoError(t, err)
	return asset
}
