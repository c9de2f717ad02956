package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/senura-medagoda/UniMate-sub005/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Storage-level failure kinds. Conditional writes report why they did not
// match so callers can map them without a second taxonomy.
var (
	ErrNotFound      = errors.New("order not found")
	ErrAlreadyExists = errors.New("order already exists")
	// ErrConflict means a concurrent writer changed the order between the
	// caller's read and this write.
	ErrConflict = errors.New("order was modified concurrently")
	// ErrStaleUpdate means a location write carried an observation older
	// than the one already stored.
	ErrStaleUpdate = errors.New("stale location update")
	// ErrInvalidState means a delete was attempted on a non-delivered order.
	ErrInvalidState = errors.New("order is not in a deletable state")
)

// Mongo implementation
type MongoOrderRepository struct {
	col *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{col: db.Collection("orders")}
}

func (m *MongoOrderRepository) Insert(ctx context.Context, o *model.Order) error {
	o.UpdatedAt = time.Now().UTC()
	_, err := m.col.InsertOne(ctx, o)
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyExists
	}
	return err
}

func (m *MongoOrderRepository) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var res model.Order
	err := m.col.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

// UpdateStatus advances the order from the status the caller read to the
// target. The expected status rides in the filter, so two racing
// transitions cannot both apply; the loser gets ErrConflict.
func (m *MongoOrderRepository) UpdateStatus(ctx context.Context, orderID string, from, to model.Status, rec model.StatusRecord) error {
	filter := bson.M{
		"order_id": orderID,
		"status":   from,
	}
	update := bson.M{
		"$set": bson.M{
			"status":     to,
			"updated_at": time.Now().UTC(),
		},
		"$push": bson.M{
			"history": rec,
		},
	}

	r, err := m.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if r.MatchedCount == 0 {
		return m.explainMiss(ctx, orderID, ErrConflict)
	}
	return nil
}

// UpdateLocation replaces the latest snapshot and appends it to the
// tracking history. The stored timestamp guard rides in the filter, so an
// out-of-order write can never regress the displayed position, even
// against a concurrent writer.
func (m *MongoOrderRepository) UpdateLocation(ctx context.Context, orderID string, p model.TrackingPoint) error {
	filter := bson.M{
		"order_id": orderID,
		"$or": bson.A{
			bson.M{"last_location": bson.M{"$exists": false}},
			bson.M{"last_location": nil},
			bson.M{"last_location.updated_at": bson.M{"$lte": p.UpdatedAt}},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"last_location": p,
			"updated_at":    time.Now().UTC(),
		},
		"$push": bson.M{
			"tracking": p,
		},
	}

	r, err := m.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if r.MatchedCount == 0 {
		return m.explainMiss(ctx, orderID, ErrStaleUpdate)
	}
	return nil
}

// Delete removes the order only when it has been delivered.
func (m *MongoOrderRepository) Delete(ctx context.Context, orderID string) error {
	r, err := m.col.DeleteOne(ctx, bson.M{
		"order_id": orderID,
		"status":   model.StatusDelivered,
	})
	if err != nil {
		return err
	}
	if r.DeletedCount == 0 {
		return m.explainMiss(ctx, orderID, ErrInvalidState)
	}
	return nil
}

func (m *MongoOrderRepository) FindAll(ctx context.Context) ([]*model.Order, error) {
	cur, err := m.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*model.Order
	for cur.Next(ctx) {
		var v model.Order
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}

// ListPage returns one page of orders, newest first, with an opaque cursor
// to the next page.
func (m *MongoOrderRepository) ListPage(ctx context.Context, cursor string, limit int) (Page, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	c, err := DecodeCursor(cursor)
	if err != nil {
		return Page{}, fmt.Errorf("decode cursor: %w", err)
	}

	filter := bson.M{
		"$or": bson.A{
			bson.M{"placed_at": bson.M{"$lt": c.PlacedAt}},
			bson.M{"placed_at": c.PlacedAt, "order_id": bson.M{"$lt": c.ID}},
		},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "placed_at", Value: -1}, {Key: "order_id", Value: -1}}).
		SetLimit(int64(limit + 1))

	cur, err := m.col.Find(ctx, filter, opts)
	if err != nil {
		return Page{}, err
	}
	defer cur.Close(ctx)

	var orders []*model.Order
	for cur.Next(ctx) {
		var v model.Order
		if err := cur.Decode(&v); err != nil {
			return Page{}, err
		}
		orders = append(orders, &v)
	}
	if err := cur.Err(); err != nil {
		return Page{}, err
	}

	page := Page{Orders: orders}
	if len(orders) > limit {
		page.Orders = orders[:limit]
		page.HasMore = true
		last := page.Orders[limit-1]
		page.NextCursor = EncodeCursor(Cursor{PlacedAt: last.PlacedAt, ID: last.ID})
	}
	return page, nil
}

// EnsureIndexes creates the unique order id index. Called once at startup.
func (m *MongoOrderRepository) EnsureIndexes(ctx context.Context) error {
	_, err := m.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "placed_at", Value: -1}, {Key: "order_id", Value: -1}},
		},
	})
	return err
}

// explainMiss disambiguates a zero-match conditional write: either the
// order does not exist, or it exists and the write's precondition failed.
func (m *MongoOrderRepository) explainMiss(ctx context.Context, orderID string, failed error) error {
	_, err := m.FindByID(ctx, orderID)
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return failed
}
