package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/domain/model"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/infra/db"
	domainrepo "github.com/vivekmanjrekar09-star/BOOK4U/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type orderItemDocument struct {
	BookID     string `bson:"bookId"`
	Title      string `bson:"title"`
	Price      string `bson:"price"`
	PriceCents int64  `bson:"priceCents"`
}

type paymentProofDocument struct {
	Key         string `bson:"key"`
	FileName    string `bson:"fileName"`
	ContentType string `bson:"contentType"`
	Size        int64  `bson:"size"`
}

type orderDocument struct {
	ID         string               `bson:"_id"`
	UserID     string               `bson:"userId,omitempty"`
	Items      []orderItemDocument  `bson:"items"`
	ItemCount  int                  `bson:"itemCount"`
	TotalCents int64                `bson:"totalCents"`
	Proof      paymentProofDocument `bson:"paymentProof"`
	CreatedAt  time.Time            `bson:"createdAt"`
}

type OrderMongoRepository struct {
	coll *mongo.Collection
}

// DI
func NewOrderMongoRepository(mdb *mongo.Database) *OrderMongoRepository {
	return &OrderMongoRepository{coll: mdb.Collection(db.OrdersCollection)}
}

func (r *OrderMongoRepository) Create(ctx context.Context, order *model.Order) error {
	if _, err := r.coll.InsertOne(ctx, toOrderDocument(order)); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderMongoRepository) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	var doc orderDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": orderID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Order{}, domainrepo.ErrNotFound
		}
		return model.Order{}, fmt.Errorf("find order: %w", err)
	}
	return doc.toModel(), nil
}

// 新しい順
func (r *OrderMongoRepository) ListByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	cur, err := r.coll.Find(ctx,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cur.Close(ctx)

	var docs []orderDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	orders := make([]model.Order, 0, len(docs))
	for _, d := range docs {
		orders = append(orders, d.toModel())
	}
	return orders, nil
}

func toOrderDocument(o *model.Order) orderDocument {
	items := make([]orderItemDocument, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemDocument(it))
	}
	return orderDocument{
		ID:         o.ID,
		UserID:     o.UserID,
		Items:      items,
		ItemCount:  o.ItemCount,
		TotalCents: o.TotalCents,
		Proof:      paymentProofDocument(o.Proof),
		CreatedAt:  o.CreatedAt.UTC(),
	}
}

func (d orderDocument) toModel() model.Order {
	items := make([]model.OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, model.OrderItem(it))
	}
	return model.Order{
		ID:         d.ID,
		UserID:     d.UserID,
		Items:      items,
		ItemCount:  d.ItemCount,
		TotalCents: d.TotalCents,
		Proof:      model.PaymentProof(d.Proof),
		CreatedAt:  d.CreatedAt,
	}
}
