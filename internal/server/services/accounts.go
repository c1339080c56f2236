package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/repomanager"
)

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

type TokenIssuer interface {
	Issue(accountID string) (string, error)
}

type RegisterInput struct {
	Username string  `json:"username" validate:"required,max=50"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Password string  `json:"password" validate:"required,max=256"`
	Bio      *string `json:"bio" validate:"omitempty,max=500"`
}

type Registration struct {
	AccountID string
	Token     string
}

type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenIssuer
	dummyDigest string
}

// NewAccountService wires the account operations. It hashes a throwaway
// password up front so that logins for unknown emails can pay the same
// verification cost as real ones.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, tokens TokenIssuer) (*AccountService, error) {
	dummy, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, fmt.Errorf("generate dummy password: %w", err)
	}
	digest, err := hasher.Hash(dummy)
	if err != nil {
		return nil, fmt.Errorf("hash dummy password: %w", err)
	}

	return &AccountService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		dummyDigest: digest,
	}, nil
}

// Register creates an account and returns a session token for it.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*Registration, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = normalizeEmail(in.Email)

	if err := validateStruct(in); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account, err := s.repomanager.Accounts(s.db).Create(ctx, &models.Account{
		Username:       in.Username,
		Email:          in.Email,
		PasswordDigest: digest,
		Bio:            in.Bio,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	return &Registration{AccountID: account.ID, Token: token}, nil
}

// Login exchanges credentials for a session token. An unknown email and a
// wrong password both fail with common.ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", fmt.Errorf("email and password are required: %w", common.ErrValidation)
	}

	account, err := s.repomanager.Accounts(s.db).FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.hasher.Verify(password, s.dummyDigest)
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("error loading account: %w", err)
	}

	if !s.hasher.Verify(password, account.PasswordDigest) {
		return "", common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.ID)
	if err != nil {
		return "", fmt.Errorf("error issuing token: %w", err)
	}

	return token, nil
}

// GetProfile returns the public view of the account.
func (s *AccountService) GetProfile(ctx context.Context, accountID string) (*models.Profile, error) {
	account, err := s.repomanager.Accounts(s.db).FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error loading account: %w", err)
	}
	return account.Profile(), nil
}
