// Collection operations shared by the root store and transactions.
package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gso/models"
	"gso/store"
)

type handle struct {
	db *mongo.Database
}

func (h handle) assets() *mongo.Collection       { return h.db.Collection("assets") }
func (h handle) properties() *mongo.Collection   { return h.db.Collection("properties") }
func (h handle) documents() *mongo.Collection    { return h.db.Collection("documents") }
func (h handle) stockItems() *mongo.Collection   { return h.db.Collection("stock_items") }
func (h handle) requisitions() *mongo.Collection { return h.db.Collection("requisitions") }
func (h handle) offices() *mongo.Collection      { return h.db.Collection("offices") }
func (h handle) users() *mongo.Collection        { return h.db.Collection("users") }
func (h handle) sequences() *mongo.Collection    { return h.db.Collection("sequences") }

func (h handle) NextSequence(ctx context.Context, key string, count int64) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter models.SequenceCounter
	err := h.sequences().FindOneAndUpdate(ctx,
		bson.M{"_id": key},
		bson.M{"$inc": bson.M{"value": count}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, mapErr(err)
	}
	return counter.Value, nil
}

// --- assets ---

func (h handle) InsertAsset(ctx context.Context, a *models.Asset) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	_, err := h.assets().InsertOne(ctx, a)
	return mapErr(err)
}

func (h handle) GetAsset(ctx context.Context, id primitive.ObjectID) (*models.Asset, error) {
	var a models.Asset
	if err := h.assets().FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

func (h handle) GetAssetByPropertyNumber(ctx context.Context, pn string) (*models.Asset, error) {
	var a models.Asset
	if err := h.assets().FindOne(ctx, bson.M{"propertyNumber": pn}).Decode(&a); err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

func (h handle) UpdateAsset(ctx context.Context, a *models.Asset) error {
	res, err := h.assets().ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (h handle) ListAssets(ctx context.Context, f store.AssetFilter) ([]models.Asset, error) {
	filter := bson.M{}
	if f.Office != "" {
		filter["custodian.office"] = f.Office
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	opts := options.Find().SetSort(bson.D{{Key: "propertyNumber", Value: 1}})
	cur, err := h.assets().Find(ctx, filter, opts)
	if err != nil {
		return nil, mapErr(err)
	}
	var out []models.Asset
	if err := cur.All(ctx, &out); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

// --- properties ---

func (h handle) InsertProperty(ctx context.Context, p *models.Property) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := h.properties().InsertOne(ctx, p)
	return mapErr(err)
}

func (h handle) GetProperty(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	var p models.Property
	if err := h.properties().FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (h handle) UpdateProperty(ctx context.Context, p *models.Property) error {
	res, err := h.properties().ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (h handle) ListProperties(ctx context.Context) ([]models.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "propertyIndexNumber", Value: 1}})
	cur, err := h.properties().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, mapErr(err)
	}
	var out []models.Property
	if err := cur.All(ctx, &out); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

// --- documents ---

func (h handle) InsertDocument(ctx context.Context, d *models.Document) error {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	_, err := h.documents().InsertOne(ctx, d)
	return mapErr(err)
}

func (h handle) GetDocument(ctx context.Context, id primitive.ObjectID) (*models.Document, error) {
	var d models.Document
	if err := h.documents().FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, mapErr(err)
	}
	return &d, nil
}

func (h handle) GetDocumentByNumber(ctx context.Context, number string) (*models.Document, error) {
	var d models.Document
	if err := h.documents().FindOne(ctx, bson.M{"number": number}).Decode(&d); err != nil {
		return nil, mapErr(err)
	}
	return &d, nil
}

func (h handle) UpdateDocument(ctx context.Context, d *models.Document) error {
	res, err := h.documents().ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (h handle) ListDocuments(ctx context.Context, kind string) ([]models.Document, error) {
	filter := bson.M{}
	if kind != "" {
		filter["kind"] = kind
	}
	opts := options.Find().SetSort(bson.D{{Key: "number", Value: 1}})
	cur, err := h.documents().Find(ctx, filter, opts)
	if err != nil {
		return nil, mapErr(err)
	}
	var out []models.Document
	if err := cur.All(ctx, &out); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

// --- stock items ---

func (h handle) InsertStockItem(ctx context.Context, it *models.StockItem) error {
	if it.ID.IsZero() {
		it.ID = primitive.NewObjectID()
	}
	_, err := h.stockItems().InsertOne(ctx, it)
	return mapErr(err)
}

func (h handle) GetStockItem(ctx context.Context, id primitive.ObjectID) (*models.StockItem, error) {
	var it models.StockItem
	if err := h.stockItems().FindOne(ctx, bson.M{"_id": id}).Decode(&it); err != nil {
		return nil, mapErr(err)
	}
	return &it, nil
}

func (h handle) UpdateStockItem(ctx context.Context, it *models.StockItem) error {
	res, err := h.stockItems().ReplaceOne(ctx, bson.M{"_id": it.ID}, it)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (h handle) ListStockItems(ctx context.Context) ([]models.StockItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "stockNumber", Value: 1}})
	cur, err := h.stockItems().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, mapErr(err)
	}
	var out []models.StockItem
	if err := cur.All(ctx, &out); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

// --- requisitions ---

func (h handle) InsertRequisition(ctx context.Context, r *models.Requisition) error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	_, err := h.requisitions().InsertOne(ctx, r)
	return mapErr(err)
}

func (h handle) GetRequisition(ctx context.Context, id primitive.ObjectID) (*models.Requisition, error) {
	var r models.Requisition
	if err := h.requisitions().FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		return nil, mapErr(err)
	}
	return &r, nil
}

func (h handle) UpdateRequisition(ctx context.Context, r *models.Requisition) error {
	res, err := h.requisitions().ReplaceOne(ctx, bson.M{"_id": r.ID}, r)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (h handle) ListRequisitions(ctx context.Context, status string) ([]models.Requisition, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "risNumber", Value: 1}})
	cur, err := h.requisitions().Find(ctx, filter, opts)
	if err != nil {
		return nil, mapErr(err)
	}
	var out []models.Requisition
	if err := cur.All(ctx, &out); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

// --- offices ---

func (h handle) InsertOffice(ctx context.Context, o *models.Office) error {
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	_, err := h.offices().InsertOne(ctx, o)
	return mapErr(err)
}

func (h handle) GetOfficeByName(ctx context.Context, name string) (*models.Office, error) {
	var o models.Office
	if err := h.offices().FindOne(ctx, bson.M{"name": name}).Decode(&o); err != nil {
		return nil, mapErr(err)
	}
	return &o, nil
}

func (h handle) ListOffices(ctx context.Context) ([]models.Office, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := h.offices().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, mapErr(err)
	}
	var out []models.Office
	if err := cur.All(ctx, &out); err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

// --- users ---

func (h handle) InsertUser(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	_, err := h.users().InsertOne(ctx, u)
	return mapErr(err)
}

func (h handle) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := h.users().FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (h handle) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := h.users().FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}
