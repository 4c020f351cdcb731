package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voya/internal/models/db_models"
	"voya/internal/models/request_models"
	"voya/internal/repositories"
	"voya/pkg/utils"
)

type memAccountRepo struct {
	accounts map[string]db_models.Account
}

var _ repositories.AccountRepository = (*memAccountRepo)(nil)

func (m *memAccountRepo) Create(_ context.Context, account *db_models.Account) error {
	if _, ok := m.accounts[account.Username]; ok {
		return utils.ErrAccountExists
	}
	m.accounts[account.Username] = *account
	return nil
}

func (m *memAccountRepo) FindByUsername(_ context.Context, username string) (*db_models.Account, error) {
	acc, ok := m.accounts[username]
	if !ok {
		return nil, nil
	}
	return &acc, nil
}

func TestAccountService_RegisterAndLogin(t *testing.T) {
	issuer := utils.NewTokenIssuer("secret")
	svc := NewAccountService(&memAccountRepo{accounts: map[string]db_models.Account{}}, issuer)
	ctx := context.Background()

	registered, err := svc.Register(ctx, request_models.RegisterRequest{Username: " Maria ", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "maria", registered.Account.Username)

	claims, err := issuer.ValidateToken(registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.Account.ID, claims.UserID)

	loggedIn, err := svc.Login(ctx, request_models.LoginRequest{Username: "MARIA", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, registered.Account.ID, loggedIn.Account.ID)

	_, err = svc.Login(ctx, request_models.LoginRequest{Username: "maria", Password: "wrong password"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = svc.Login(ctx, request_models.LoginRequest{Username: "nobody", Password: "whatever1"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = svc.Register(ctx, request_models.RegisterRequest{Username: "maria", Password: "another one"})
	assert.ErrorIs(t, err, utils.ErrAccountExists)
}

func TestAccountService_RequiresSecret(t *testing.T) {
	svc := NewAccountService(&memAccountRepo{accounts: map[string]db_models.Account{}}, utils.NewTokenIssuer(""))

	_, err := svc.Register(context.Background(), request_models.RegisterRequest{Username: "maria", Password: "password1"})
	assert.ErrorIs(t, err, utils.ErrServiceUnavailable)
}
