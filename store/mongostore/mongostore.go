// Package mongostore implements store.Store on MongoDB.
//
// Sequence counters use FindOneAndUpdate with $inc and upsert, the
// atomic find-and-increment-or-create the allocator contract requires.
// InTx runs the callback inside a session transaction; operations made
// through the transaction handle are bound to the session context, so
// everything the callback writes commits or aborts together.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gso/models"
	"gso/store"
)

var _ store.Store = (*Store)(nil)

// Store is the MongoDB-backed store.
type Store struct {
	handle
	client *mongo.Client
}

// New wraps a connected client. dbName is the database holding the GSO
// collections.
func New(client *mongo.Client, dbName string) *Store {
	return &Store{
		handle: handle{db: client.Database(dbName)},
		client: client,
	}
}

// EnsureIndexes creates the unique indexes backing identity invariants:
// property numbers, document numbers, stock numbers, office names and
// user emails. Safe to call on every startup.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	specs := []struct {
		coll string
		key  string
	}{
		{"assets", "propertyNumber"},
		{"properties", "propertyIndexNumber"},
		{"documents", "number"},
		{"stock_items", "stockNumber"},
		{"requisitions", "risNumber"},
		{"offices", "name"},
		{"users", "email"},
	}
	for _, spec := range specs {
		_, err := s.db.Collection(spec.coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: spec.key, Value: 1}},
			Options: unique,
		})
		if err != nil {
			return fmt.Errorf("creating %s.%s index: %w", spec.coll, spec.key, err)
		}
	}
	return nil
}

// InTx runs fn inside a session transaction. Reads and writes made
// through the handle are bound to the session; an error from fn aborts
// the transaction and is returned unchanged.
func (s *Store) InTx(ctx context.Context, fn func(tx store.Tx) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(&txn{h: s.handle, sc: sc})
	})
	return err
}

// txn binds handle operations to a session context.
type txn struct {
	h  handle
	sc mongo.SessionContext
}

var _ store.Tx = (*txn)(nil)

func (t *txn) NextSequence(ctx context.Context, key string, count int64) (int64, error) {
	return t.h.NextSequence(t.sc, key, count)
}
func (t *txn) InsertAsset(ctx context.Context, a *models.Asset) error {
	return t.h.InsertAsset(t.sc, a)
}
func (t *txn) GetAsset(ctx context.Context, id primitive.ObjectID) (*models.Asset, error) {
	return t.h.GetAsset(t.sc, id)
}
func (t *txn) GetAssetByPropertyNumber(ctx context.Context, pn string) (*models.Asset, error) {
	return t.h.GetAssetByPropertyNumber(t.sc, pn)
}
func (t *txn) UpdateAsset(ctx context.Context, a *models.Asset) error {
	return t.h.UpdateAsset(t.sc, a)
}
func (t *txn) ListAssets(ctx context.Context, f store.AssetFilter) ([]models.Asset, error) {
	return t.h.ListAssets(t.sc, f)
}
func (t *txn) InsertProperty(ctx context.Context, p *models.Property) error {
	return t.h.InsertProperty(t.sc, p)
}
func (t *txn) GetProperty(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	return t.h.GetProperty(t.sc, id)
}
func (t *txn) UpdateProperty(ctx context.Context, p *models.Property) error {
	return t.h.UpdateProperty(t.sc, p)
}
func (t *txn) ListProperties(ctx context.Context) ([]models.Property, error) {
	return t.h.ListProperties(t.sc)
}
func (t *txn) InsertDocument(ctx context.Context, d *models.Document) error {
	return t.h.InsertDocument(t.sc, d)
}
func (t *txn) GetDocument(ctx context.Context, id primitive.ObjectID) (*models.Document, error) {
	return t.h.GetDocument(t.sc, id)
}
func (t *txn) GetDocumentByNumber(ctx context.Context, number string) (*models.Document, error) {
	return t.h.GetDocumentByNumber(t.sc, number)
}
func (t *txn) UpdateDocument(ctx context.Context, d *models.Document) error {
	return t.h.UpdateDocument(t.sc, d)
}
func (t *txn) ListDocuments(ctx context.Context, kind string) ([]models.Document, error) {
	return t.h.ListDocuments(t.sc, kind)
}
func (t *txn) InsertStockItem(ctx context.Context, it *models.StockItem) error {
	return t.h.InsertStockItem(t.sc, it)
}
func (t *txn) GetStockItem(ctx context.Context, id primitive.ObjectID) (*models.StockItem, error) {
	return t.h.GetStockItem(t.sc, id)
}
func (t *txn) UpdateStockItem(ctx context.Context, it *models.StockItem) error {
	return t.h.UpdateStockItem(t.sc, it)
}
func (t *txn) ListStockItems(ctx context.Context) ([]models.StockItem, error) {
	return t.h.ListStockItems(t.sc)
}
func (t *txn) InsertRequisition(ctx context.Context, r *models.Requisition) error {
	return t.h.InsertRequisition(t.sc, r)
}
func (t *txn) GetRequisition(ctx context.Context, id primitive.ObjectID) (*models.Requisition, error) {
	return t.h.GetRequisition(t.sc, id)
}
func (t *txn) UpdateRequisition(ctx context.Context, r *models.Requisition) error {
	return t.h.UpdateRequisition(t.sc, r)
}
func (t *txn) ListRequisitions(ctx context.Context, status string) ([]models.Requisition, error) {
	return t.h.ListRequisitions(t.sc, status)
}
func (t *txn) InsertOffice(ctx context.Context, o *models.Office) error {
	return t.h.InsertOffice(t.sc, o)
}
func (t *txn) GetOfficeByName(ctx context.Context, name string) (*models.Office, error) {
	return t.h.GetOfficeByName(t.sc, name)
}
func (t *txn) ListOffices(ctx context.Context) ([]models.Office, error) {
	return t.h.ListOffices(t.sc)
}
func (t *txn) InsertUser(ctx context.Context, u *models.User) error {
	return t.h.InsertUser(t.sc, u)
}
func (t *txn) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return t.h.GetUserByEmail(t.sc, email)
}
func (t *txn) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return t.h.GetUser(t.sc, id)
}

// mapErr translates driver errors to the store's sentinel errors.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrConflict
	}
	return err
}
