// Package memstore is an in-memory implementation of store.Store used by
// tests and ephemeral environments. A transaction clones the whole state,
// runs against the clone, and swaps it in on success, so rollback is a
// no-op and aborted workflows leave no trace (including unspent sequence
// numbers). The store mutex is held for the duration of a transaction,
// which serializes concurrent workflows the way the real store's
// transactions do.
package memstore

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gso/models"
	"gso/store"
)

var _ store.Store = (*Store)(nil)

type state struct {
	assets       map[primitive.ObjectID]models.Asset
	properties   map[primitive.ObjectID]models.Property
	documents    map[primitive.ObjectID]models.Document
	stockItems   map[primitive.ObjectID]models.StockItem
	requisitions map[primitive.ObjectID]models.Requisition
	offices      map[primitive.ObjectID]models.Office
	users        map[primitive.ObjectID]models.User
	sequences    map[string]int64
}

func newState() *state {
	return &state{
		assets:       map[primitive.ObjectID]models.Asset{},
		properties:   map[primitive.ObjectID]models.Property{},
		documents:    map[primitive.ObjectID]models.Document{},
		stockItems:   map[primitive.ObjectID]models.StockItem{},
		requisitions: map[primitive.ObjectID]models.Requisition{},
		offices:      map[primitive.ObjectID]models.Office{},
		users:        map[primitive.ObjectID]models.User{},
		sequences:    map[string]int64{},
	}
}

func (s *state) clone() *state {
	cp := newState()
	for k, v := range s.assets {
		cp.assets[k] = cloneAsset(v)
	}
	for k, v := range s.properties {
		cp.properties[k] = cloneProperty(v)
	}
	for k, v := range s.documents {
		cp.documents[k] = cloneDocument(v)
	}
	for k, v := range s.stockItems {
		cp.stockItems[k] = v
	}
	for k, v := range s.requisitions {
		cp.requisitions[k] = cloneRequisition(v)
	}
	for k, v := range s.offices {
		cp.offices[k] = v
	}
	for k, v := range s.users {
		cp.users[k] = v
	}
	for k, v := range s.sequences {
		cp.sequences[k] = v
	}
	return cp
}

func cloneAsset(a models.Asset) models.Asset          { return a.Snapshot() }
func cloneProperty(p models.Property) models.Property { return p.Snapshot() }

func cloneDocument(d models.Document) models.Document {
	d.Assets = append([]models.AssetSnapshot(nil), d.Assets...)
	d.ReceivedItems = append([]models.ReceivedItem(nil), d.ReceivedItems...)
	if d.Custodian != nil {
		c := *d.Custodian
		d.Custodian = &c
	}
	if d.FromCustodian != nil {
		c := *d.FromCustodian
		d.FromCustodian = &c
	}
	return d
}

func cloneRequisition(r models.Requisition) models.Requisition {
	r.Lines = append([]models.RequisitionLine(nil), r.Lines...)
	return r
}

// Store is the in-memory store.
type Store struct {
	mu    sync.Mutex
	state *state
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{state: newState()}
}

// InTx clones the state, runs fn against the clone, and swaps the clone
// in if fn succeeds. Holding the mutex across the callback serializes
// transactions.
func (s *Store) InTx(ctx context.Context, fn func(tx store.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.state.clone()
	if err := fn(&txn{state: staged}); err != nil {
		return err
	}
	s.state = staged
	return nil
}

// Root-level operations run as single-op transactions.

func (s *Store) run(fn func(tx *txn) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	staged := s.state.clone()
	if err := fn(&txn{state: staged}); err != nil {
		return err
	}
	s.state = staged
	return nil
}

func (s *Store) read(fn func(tx *txn)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&txn{state: s.state})
}

// txn implements store.Tx against a staged state.
type txn struct {
	state *state
}

var _ store.Tx = (*txn)(nil)

func (t *txn) NextSequence(ctx context.Context, key string, count int64) (int64, error) {
	t.state.sequences[key] += count
	return t.state.sequences[key], nil
}

// --- assets ---

func (t *txn) InsertAsset(ctx context.Context, a *models.Asset) error {
	for _, existing := range t.state.assets {
		if existing.PropertyNumber == a.PropertyNumber {
			return store.ErrConflict
		}
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	t.state.assets[a.ID] = cloneAsset(*a)
	return nil
}

func (t *txn) GetAsset(ctx context.Context, id primitive.ObjectID) (*models.Asset, error) {
	a, ok := t.state.assets[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := cloneAsset(a)
	return &cp, nil
}

func (t *txn) GetAssetByPropertyNumber(ctx context.Context, pn string) (*models.Asset, error) {
	for _, a := range t.state.assets {
		if a.PropertyNumber == pn {
			cp := cloneAsset(a)
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (t *txn) UpdateAsset(ctx context.Context, a *models.Asset) error {
	if _, ok := t.state.assets[a.ID]; !ok {
		return store.ErrNotFound
	}
	t.state.assets[a.ID] = cloneAsset(*a)
	return nil
}

func (t *txn) ListAssets(ctx context.Context, f store.AssetFilter) ([]models.Asset, error) {
	var out []models.Asset
	for _, a := range t.state.assets {
		if f.Office != "" && a.Custodian.Office != f.Office {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.Category != "" && a.Category != f.Category {
			continue
		}
		out = append(out, cloneAsset(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PropertyNumber < out[j].PropertyNumber })
	return out, nil
}

// --- properties ---

func (t *txn) InsertProperty(ctx context.Context, p *models.Property) error {
	for _, existing := range t.state.properties {
		if existing.PropertyIndexNumber == p.PropertyIndexNumber {
			return store.ErrConflict
		}
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	t.state.properties[p.ID] = cloneProperty(*p)
	return nil
}

func (t *txn) GetProperty(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	p, ok := t.state.properties[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := cloneProperty(p)
	return &cp, nil
}

func (t *txn) UpdateProperty(ctx context.Context, p *models.Property) error {
	if _, ok := t.state.properties[p.ID]; !ok {
		return store.ErrNotFound
	}
	t.state.properties[p.ID] = cloneProperty(*p)
	return nil
}

func (t *txn) ListProperties(ctx context.Context) ([]models.Property, error) {
	var out []models.Property
	for _, p := range t.state.properties {
		out = append(out, cloneProperty(p))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PropertyIndexNumber < out[j].PropertyIndexNumber
	})
	return out, nil
}

// --- documents ---

func (t *txn) InsertDocument(ctx context.Context, d *models.Document) error {
	for _, existing := range t.state.documents {
		if existing.Number == d.Number {
			return store.ErrConflict
		}
	}
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	t.state.documents[d.ID] = cloneDocument(*d)
	return nil
}

func (t *txn) GetDocument(ctx context.Context, id primitive.ObjectID) (*models.Document, error) {
	d, ok := t.state.documents[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := cloneDocument(d)
	return &cp, nil
}

func (t *txn) GetDocumentByNumber(ctx context.Context, number string) (*models.Document, error) {
	for _, d := range t.state.documents {
		if d.Number == number {
			cp := cloneDocument(d)
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (t *txn) UpdateDocument(ctx context.Context, d *models.Document) error {
	if _, ok := t.state.documents[d.ID]; !ok {
		return store.ErrNotFound
	}
	t.state.documents[d.ID] = cloneDocument(*d)
	return nil
}

func (t *txn) ListDocuments(ctx context.Context, kind string) ([]models.Document, error) {
	var out []models.Document
	for _, d := range t.state.documents {
		if kind != "" && d.Kind != kind {
			continue
		}
		out = append(out, cloneDocument(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

// --- stock items ---

func (t *txn) InsertStockItem(ctx context.Context, s *models.StockItem) error {
	for _, existing := range t.state.stockItems {
		if existing.StockNumber == s.StockNumber {
			return store.ErrConflict
		}
	}
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	t.state.stockItems[s.ID] = *s
	return nil
}

func (t *txn) GetStockItem(ctx context.Context, id primitive.ObjectID) (*models.StockItem, error) {
	s, ok := t.state.stockItems[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := s
	return &cp, nil
}

func (t *txn) UpdateStockItem(ctx context.Context, s *models.StockItem) error {
	if _, ok := t.state.stockItems[s.ID]; !ok {
		return store.ErrNotFound
	}
	t.state.stockItems[s.ID] = *s
	return nil
}

func (t *txn) ListStockItems(ctx context.Context) ([]models.StockItem, error) {
	var out []models.StockItem
	for _, s := range t.state.stockItems {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StockNumber < out[j].StockNumber })
	return out, nil
}

// --- requisitions ---

func (t *txn) InsertRequisition(ctx context.Context, r *models.Requisition) error {
	for _, existing := range t.state.requisitions {
		if existing.RISNumber == r.RISNumber {
			return store.ErrConflict
		}
	}
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	t.state.requisitions[r.ID] = cloneRequisition(*r)
	return nil
}

func (t *txn) GetRequisition(ctx context.Context, id primitive.ObjectID) (*models.Requisition, error) {
	r, ok := t.state.requisitions[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := cloneRequisition(r)
	return &cp, nil
}

func (t *txn) UpdateRequisition(ctx context.Context, r *models.Requisition) error {
	if _, ok := t.state.requisitions[r.ID]; !ok {
		return store.ErrNotFound
	}
	t.state.requisitions[r.ID] = cloneRequisition(*r)
	return nil
}

func (t *txn) ListRequisitions(ctx context.Context, status string) ([]models.Requisition, error) {
	var out []models.Requisition
	for _, r := range t.state.requisitions {
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, cloneRequisition(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RISNumber < out[j].RISNumber })
	return out, nil
}

// --- offices ---

func (t *txn) InsertOffice(ctx context.Context, o *models.Office) error {
	for _, existing := range t.state.offices {
		if existing.Name == o.Name {
			return store.ErrConflict
		}
	}
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	t.state.offices[o.ID] = *o
	return nil
}

func (t *txn) GetOfficeByName(ctx context.Context, name string) (*models.Office, error) {
	for _, o := range t.state.offices {
		if o.Name == name {
			cp := o
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (t *txn) ListOffices(ctx context.Context) ([]models.Office, error) {
	var out []models.Office
	for _, o := range t.state.offices {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// --- users ---

func (t *txn) InsertUser(ctx context.Context, u *models.User) error {
	for _, existing := range t.state.users {
		if existing.Email == u.Email {
			return store.ErrConflict
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	t.state.users[u.ID] = *u
	return nil
}

func (t *txn) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range t.state.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (t *txn) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := t.state.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := u
	return &cp, nil
}
