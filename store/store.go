// store/store.go
//
// The persistence boundary for the GSO core. Workflows never touch a
// database driver directly; they run against Tx inside InTx so that a
// multi-record mutation (asset updates + slip insert + history entries)
// either fully commits or fully aborts.
//
// Guarantees implementations must provide:
//   - InTx: the callback's reads and writes are atomic; any error from
//     the callback rolls every write back and is returned unchanged.
//   - NextSequence: atomic find-and-increment-or-create per key; two
//     concurrent callers on the same key receive disjoint blocks. Never
//     implemented as read-then-write.
//   - Insert* returns ErrConflict when a unique identity (property
//     number, document number, stock number, office name, email) is
//     already taken; Get* returns ErrNotFound for missing records.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gso/models"
)

// AssetFilter narrows ListAssets. Zero values mean "any".
type AssetFilter struct {
	Office   string
	Status   string
	Category string
}

// Tx is the set of record operations available inside a transaction.
// The root Store also implements Tx for single-operation reads/writes
// that need no multi-record atomicity.
type Tx interface {
	// NextSequence atomically increments the counter for key by count
	// and returns the new value; the reserved block is
	// [returned-count+1 .. returned].
	NextSequence(ctx context.Context, key string, count int64) (int64, error)

	InsertAsset(ctx context.Context, a *models.Asset) error
	GetAsset(ctx context.Context, id primitive.ObjectID) (*models.Asset, error)
	GetAssetByPropertyNumber(ctx context.Context, pn string) (*models.Asset, error)
	UpdateAsset(ctx context.Context, a *models.Asset) error
	ListAssets(ctx context.Context, f AssetFilter) ([]models.Asset, error)

	InsertProperty(ctx context.Context, p *models.Property) error
	GetProperty(ctx context.Context, id primitive.ObjectID) (*models.Property, error)
	UpdateProperty(ctx context.Context, p *models.Property) error
	ListProperties(ctx context.Context) ([]models.Property, error)

	InsertDocument(ctx context.Context, d *models.Document) error
	GetDocument(ctx context.Context, id primitive.ObjectID) (*models.Document, error)
	GetDocumentByNumber(ctx context.Context, number string) (*models.Document, error)
	UpdateDocument(ctx context.Context, d *models.Document) error
	ListDocuments(ctx context.Context, kind string) ([]models.Document, error)

	InsertStockItem(ctx context.Context, s *models.StockItem) error
	GetStockItem(ctx context.Context, id primitive.ObjectID) (*models.StockItem, error)
	UpdateStockItem(ctx context.Context, s *models.StockItem) error
	ListStockItems(ctx context.Context) ([]models.StockItem, error)

	InsertRequisition(ctx context.Context, r *models.Requisition) error
	GetRequisition(ctx context.Context, id primitive.ObjectID) (*models.Requisition, error)
	UpdateRequisition(ctx context.Context, r *models.Requisition) error
	ListRequisitions(ctx context.Context, status string) ([]models.Requisition, error)

	InsertOffice(ctx context.Context, o *models.Office) error
	GetOfficeByName(ctx context.Context, name string) (*models.Office, error)
	ListOffices(ctx context.Context) ([]models.Office, error)

	InsertUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// Store is the root persistence handle.
type Store interface {
	Tx

	// InTx runs fn inside a single atomic transaction. A non-nil error
	// from fn aborts the transaction and is returned to the caller.
	InTx(ctx context.Context, fn func(tx Tx) error) error
}
