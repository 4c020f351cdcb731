package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"voya/internal/infra"
	"voya/internal/models/db_models"
	"voya/pkg/utils"
)

type accountMongoRepository struct {
	coll *mongo.Collection
}

func NewAccountMongoRepository(db *mongo.Database) AccountRepository {
	return &accountMongoRepository{coll: db.Collection(infra.AccountsCollection)}
}

func (a *accountMongoRepository) Create(ctx context.Context, account *db_models.Account) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	_, err := a.coll.InsertOne(ctx, account)
	if mongo.IsDuplicateKeyError(err) {
		return utils.ErrAccountExists
	}
	return err
}

func (a *accountMongoRepository) FindByUsername(ctx context.Context, username string) (*db_models.Account, error) {
	var account db_models.Account
	err := a.coll.FindOne(ctx, bson.M{"username": username}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}
