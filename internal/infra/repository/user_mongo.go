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
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// createdAtはJSのtoISOString()と同じ形で保存する
const isoMillis = "2006-01-02T15:04:05.000Z"

// usersコレクションのドキュメント
type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FullName  string             `bson:"fullname"`
	Username  string             `bson:"username"`
	Email     string             `bson:"email"`
	Address   string             `bson:"address"`
	Password  string             `bson:"password"`
	CreatedAt string             `bson:"createdAt"`
}

type userMongoRepository struct {
	coll *mongo.Collection
}

// DI
func NewUserMongoRepository(mdb *mongo.Database) domainrepo.UserRepository {
	return &userMongoRepository{coll: mdb.Collection(db.UsersCollection)}
}

// Create はユーザーを新規作成（_idはMongoが振る）
func (r *userMongoRepository) Create(ctx context.Context, user *model.User) error {
	doc := userDocument{
		FullName:  user.FullName,
		Username:  user.Username,
		Email:     user.Email,
		Address:   user.Address,
		Password:  user.Password,
		CreatedAt: user.CreatedAt.UTC().Format(isoMillis),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainrepo.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid.Hex()
	}
	return nil
}

// emailでユーザーを1件取得
func (r *userMongoRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// IDでユーザーを1件取得
func (r *userMongoRepository) FindByID(ctx context.Context, userID string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domainrepo.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *userMongoRepository) findOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainrepo.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toModel(), nil
}

func (d userDocument) toModel() *model.User {
	u := &model.User{
		ID:       d.ID.Hex(),
		FullName: d.FullName,
		Username: d.Username,
		Email:    d.Email,
		Address:  d.Address,
		Password: d.Password,
	}
	// 古いデータで形式が違っても読めるようにする
	if t, err := time.Parse(time.RFC3339Nano, d.CreatedAt); err == nil {
		u.CreatedAt = t
	}
	return u
}
