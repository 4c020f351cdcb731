package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"voya/internal/infra"
	"voya/internal/models/db_models"
	"voya/pkg/utils"
)

type accountFileRepository struct {
	file *infra.JSONFile[db_models.Account]
}

func NewAccountFileRepository(file *infra.JSONFile[db_models.Account]) AccountRepository {
	return &accountFileRepository{file: file}
}

func (a *accountFileRepository) Create(_ context.Context, account *db_models.Account) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	return a.file.Mutate(func(items []db_models.Account) ([]db_models.Account, error) {
		for _, existing := range items {
			if existing.Username == account.Username {
				return nil, utils.ErrAccountExists
			}
		}
		return append(items, *account), nil
	})
}

func (a *accountFileRepository) FindByUsername(_ context.Context, username string) (*db_models.Account, error) {
	all, err := a.file.Load()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Username == username {
			return &all[i], nil
		}
	}
	return nil, nil
}
