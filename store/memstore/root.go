// Root-level Tx operations: each runs as its own one-shot transaction.
package memstore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gso/models"
	"gso/store"
)

func (s *Store) NextSequence(ctx context.Context, key string, count int64) (int64, error) {
	var v int64
	err := s.run(func(tx *txn) error {
		var err error
		v, err = tx.NextSequence(ctx, key, count)
		return err
	})
	return v, err
}

func (s *Store) InsertAsset(ctx context.Context, a *models.Asset) error {
	return s.run(func(tx *txn) error { return tx.InsertAsset(ctx, a) })
}

func (s *Store) GetAsset(ctx context.Context, id primitive.ObjectID) (*models.Asset, error) {
	var out *models.Asset
	var err error
	s.read(func(tx *txn) { out, err = tx.GetAsset(ctx, id) })
	return out, err
}

func (s *Store) GetAssetByPropertyNumber(ctx context.Context, pn string) (*models.Asset, error) {
	var out *models.Asset
	var err error
	s.read(func(tx *txn) { out, err = tx.GetAssetByPropertyNumber(ctx, pn) })
	return out, err
}

func (s *Store) UpdateAsset(ctx context.Context, a *models.Asset) error {
	return s.run(func(tx *txn) error { return tx.UpdateAsset(ctx, a) })
}

func (s *Store) ListAssets(ctx context.Context, f store.AssetFilter) ([]models.Asset, error) {
	var out []models.Asset
	var err error
	s.read(func(tx *txn) { out, err = tx.ListAssets(ctx, f) })
	return out, err
}

func (s *Store) InsertProperty(ctx context.Context, p *models.Property) error {
	return s.run(func(tx *txn) error { return tx.InsertProperty(ctx, p) })
}

func (s *Store) GetProperty(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	var out *models.Property
	var err error
	s.read(func(tx *txn) { out, err = tx.GetProperty(ctx, id) })
	return out, err
}

func (s *Store) UpdateProperty(ctx context.Context, p *models.Property) error {
	return s.run(func(tx *txn) error { return tx.UpdateProperty(ctx, p) })
}

func (s *Store) ListProperties(ctx context.Context) ([]models.Property, error) {
	var out []models.Property
	var err error
	s.read(func(tx *txn) { out, err = tx.ListProperties(ctx) })
	return out, err
}

func (s *Store) InsertDocument(ctx context.Context, d *models.Document) error {
	return s.run(func(tx *txn) error { return tx.InsertDocument(ctx, d) })
}

func (s *Store) GetDocument(ctx context.Context, id primitive.ObjectID) (*models.Document, error) {
	var out *models.Document
	var err error
	s.read(func(tx *txn) { out, err = tx.GetDocument(ctx, id) })
	return out, err
}

func (s *Store) GetDocumentByNumber(ctx context.Context, number string) (*models.Document, error) {
	var out *models.Document
	var err error
	s.read(func(tx *txn) { out, err = tx.GetDocumentByNumber(ctx, number) })
	return out, err
}

func (s *Store) UpdateDocument(ctx context.Context, d *models.Document) error {
	return s.run(func(tx *txn) error { return tx.UpdateDocument(ctx, d) })
}

func (s *Store) ListDocuments(ctx context.Context, kind string) ([]models.Document, error) {
	var out []models.Document
	var err error
	s.read(func(tx *txn) { out, err = tx.ListDocuments(ctx, kind) })
	return out, err
}

func (s *Store) InsertStockItem(ctx context.Context, it *models.StockItem) error {
	return s.run(func(tx *txn) error { return tx.InsertStockItem(ctx, it) })
}

func (s *Store) GetStockItem(ctx context.Context, id primitive.ObjectID) (*models.StockItem, error) {
	var out *models.StockItem
	var err error
	s.read(func(tx *txn) { out, err = tx.GetStockItem(ctx, id) })
	return out, err
}

func (s *Store) UpdateStockItem(ctx context.Context, it *models.StockItem) error {
	return s.run(func(tx *txn) error { return tx.UpdateStockItem(ctx, it) })
}

func (s *Store) ListStockItems(ctx context.Context) ([]models.StockItem, error) {
	var out []models.StockItem
	var err error
	s.read(func(tx *txn) { out, err = tx.ListStockItems(ctx) })
	return out, err
}

func (s *Store) InsertRequisition(ctx context.Context, r *models.Requisition) error {
	return s.run(func(tx *txn) error { return tx.InsertRequisition(ctx, r) })
}

func (s *Store) GetRequisition(ctx context.Context, id primitive.ObjectID) (*models.Requisition, error) {
	var out *models.Requisition
	var err error
	s.read(func(tx *txn) { out, err = tx.GetRequisition(ctx, id) })
	return out, err
}

func (s *Store) UpdateRequisition(ctx context.Context, r *models.Requisition) error {
	return s.run(func(tx *txn) error { return tx.UpdateRequisition(ctx, r) })
}

func (s *Store) ListRequisitions(ctx context.Context, status string) ([]models.Requisition, error) {
	var out []models.Requisition
	var err error
	s.read(func(tx *txn) { out, err = tx.ListRequisitions(ctx, status) })
	return out, err
}

func (s *Store) InsertOffice(ctx context.Context, o *models.Office) error {
	return s.run(func(tx *txn) error { return tx.InsertOffice(ctx, o) })
}

func (s *Store) GetOfficeByName(ctx context.Context, name string) (*models.Office, error) {
	var out *models.Office
	var err error
	s.read(func(tx *txn) { out, err = tx.GetOfficeByName(ctx, name) })
	return out, err
}

func (s *Store) ListOffices(ctx context.Context) ([]models.Office, error) {
	var out []models.Office
	var err error
	s.read(func(tx *txn) { out, err = tx.ListOffices(ctx) })
	return out, err
}

func (s *Store) InsertUser(ctx context.Context, u *models.User) error {
	return s.run(func(tx *txn) error { return tx.InsertUser(ctx, u) })
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var out *models.User
	var err error
	s.read(func(tx *txn) { out, err = tx.GetUserByEmail(ctx, email) })
	return out, err
}

func (s *Store) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var out *models.User
	var err error
	s.read(func(tx *txn) { out, err = tx.GetUser(ctx, id) })
	return out, err
}
