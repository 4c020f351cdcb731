package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"voya/internal/models/db_models"
	"voya/internal/models/request_models"
	"voya/internal/models/response_models"
	"voya/internal/repositories"
	"voya/pkg/utils"
)

type AccountServiceInterface interface {
	Register(ctx context.Context, request request_models.RegisterRequest) (*response_models.AuthResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AuthResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	tokens      *utils.TokenIssuer
}

func NewAccountService(accountRepo repositories.AccountRepository, tokens *utils.TokenIssuer) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		tokens:      tokens,
	}
}

func (a *AccountService) Register(ctx context.Context, request request_models.RegisterRequest) (*response_models.AuthResponse, error) {
	if !a.tokens.Enabled() {
		return nil, utils.NotConfigured("JWT_SECRET")
	}

	username := strings.ToLower(strings.TrimSpace(request.Username))
	if len(username) < 3 {
		return nil, fmt.Errorf("%w: username must be at least 3 characters", utils.ErrInvalidInput)
	}

	hash, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
	}

	account := &db_models.Account{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := a.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, utils.ErrAccountExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	log.WithField("account_id", account.ID).Info("account registered")
	return a.issue(account)
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AuthResponse, error) {
	if !a.tokens.Enabled() {
		return nil, utils.NotConfigured("JWT_SECRET")
	}

	account, err := a.accountRepo.FindByUsername(ctx, strings.ToLower(strings.TrimSpace(request.Username)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	return a.issue(account)
}

func (a *AccountService) issue(account *db_models.Account) (*response_models.AuthResponse, error) {
	token, err := a.tokens.CreateToken(account.ID, account.Username)
	if err != nil {
		return nil, err
	}
	return &response_models.AuthResponse{
		Token: token,
		Account: response_models.AccountResponse{
			ID:        account.ID,
			Username:  account.Username,
			CreatedAt: account.CreatedAt,
		},
	}, nil
}
