package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vivekmanjrekar09-star/BOOK4U/internal/domain/model"
	"github.com/vivekmanjrekar09-star/BOOK4U/internal/infra/db"
	domainrepo "github.com/vivekmanjrekar09-star/BOOK4U/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bookDocument struct {
	ID          string `bson:"_id"`
	Title       string `bson:"title"`
	Author      string `bson:"author"`
	Description string `bson:"description"`
	Category    string `bson:"category"`
	Price       string `bson:"price"`
	Cover       string `bson:"cover"`
}

type BookMongoRepository struct {
	coll *mongo.Collection
}

// DI
func NewBookMongoRepository(mdb *mongo.Database) *BookMongoRepository {
	return &BookMongoRepository{coll: mdb.Collection(db.BooksCollection)}
}

// カテゴリで絞ってタイトル順に返す
func (r *BookMongoRepository) List(ctx context.Context, category string) ([]model.Book, error) {
	filter := bson.M{}
	if category != "" && category != model.CategoryAll {
		filter["category"] = category
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	defer cur.Close(ctx)

	var docs []bookDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}

	books := make([]model.Book, 0, len(docs))
	for _, d := range docs {
		books = append(books, d.toModel())
	}
	return books, nil
}

func (r *BookMongoRepository) FindByID(ctx context.Context, id string) (model.Book, error) {
	var doc bookDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.Book{}, domainrepo.ErrNotFound
		}
		return model.Book{}, fmt.Errorf("find book: %w", err)
	}
	return doc.toModel(), nil
}

// _idで置き換え（無ければ作る）
func (r *BookMongoRepository) Upsert(ctx context.Context, books []model.Book) error {
	if len(books) == 0 {
		return nil
	}

	writes := make([]mongo.WriteModel, 0, len(books))
	for _, b := range books {
		doc := bookDocument(b)
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": b.ID}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	if _, err := r.coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("upsert books: %w", err)
	}
	return nil
}

func (d bookDocument) toModel() model.Book {
	return model.Book(d)
}
