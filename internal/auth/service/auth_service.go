package service

import (
	"context"
	"errors"

	accountdomain "github.com/AlibekovAA/sunzone-forum/internal/account/domain"
	accountservice "github.com/AlibekovAA/sunzone-forum/internal/account/service"
	commoncrypto "github.com/AlibekovAA/sunzone-forum/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/sunzone-forum/internal/common/errors"
	"github.com/AlibekovAA/sunzone-forum/internal/common/logger"
	"github.com/AlibekovAA/sunzone-forum/internal/common/validation"
	"github.com/AlibekovAA/sunzone-forum/internal/observability/metrics"
)

// Accounts is the slice of an account store that registration and login
// need.
type Accounts interface {
	Kind() accountdomain.Kind
	Create(ctx context.Context, input accountservice.CreateInput) (accountdomain.Public, error)
	Credentials(ctx context.Context, email string) (accountdomain.Account, error)
}

type AuthService struct {
	accounts map[accountdomain.Kind]Accounts
	hasher   commoncrypto.PasswordHasher
	log      *logger.Logger
}

type AuthServiceDeps struct {
	Hasher commoncrypto.PasswordHasher
	Log    *logger.Logger
}

func NewAuthService(deps AuthServiceDeps, accounts ...Accounts) *AuthService {
	byKind := make(map[accountdomain.Kind]Accounts, len(accounts))
	for _, a := range accounts {
		byKind[a.Kind()] = a
	}
	return &AuthService{
		accounts: byKind,
		hasher:   deps.Hasher,
		log:      deps.Log,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Secret   string
}

type LoginInput struct {
	Email  string `json:"email" validate:"required"`
	Secret string `json:"secret"`
}

func (s *AuthService) Register(ctx context.Context, kind accountdomain.Kind, input RegisterInput) (accountdomain.Public, error) {
	store, err := s.store(kind)
	if err != nil {
		return accountdomain.Public{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"kind":   string(kind),
		"email":  input.Email,
		"action": "register_attempt",
	}).Debug("register attempt")

	return store.Create(ctx, accountservice.CreateInput{
		Username: input.Username,
		Email:    input.Email,
		Secret:   input.Secret,
	})
}

// Login answers an unknown email and a wrong secret with the same error.
// The hash comparison only runs once an account was found.
func (s *AuthService) Login(ctx context.Context, kind accountdomain.Kind, input LoginInput) (accountdomain.Public, error) {
	store, err := s.store(kind)
	if err != nil {
		return accountdomain.Public{}, err
	}

	if err := validation.Struct(input); err != nil {
		return accountdomain.Public{}, err
	}

	fields := logger.Fields{
		"kind":   string(kind),
		"email":  input.Email,
		"action": "login_attempt",
	}

	// An empty secret can never match, so it is reported like a wrong one.
	if input.Secret == "" {
		metrics.LoginAttemptsTotal.WithLabelValues(string(kind), "wrong_secret").Inc()
		s.log.WithFields(ctx, fields).Info("login failed: empty secret")
		return accountdomain.Public{}, commonerrors.ErrInvalidCredentials
	}

	account, err := store.Credentials(ctx, input.Email)
	if err != nil {
		if errors.Is(err, commonerrors.ErrAccountNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues(string(kind), "unknown_email").Inc()
			s.log.WithFields(ctx, fields).Info("login failed: unknown email")
			return accountdomain.Public{}, commonerrors.ErrInvalidCredentials
		}
		metrics.LoginAttemptsTotal.WithLabelValues(string(kind), "error").Inc()
		return accountdomain.Public{}, err
	}

	if err := s.hasher.Compare(account.SecretHash, input.Secret); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(string(kind), "wrong_secret").Inc()
		s.log.WithFields(ctx, fields).Info("login failed: wrong secret")
		return accountdomain.Public{}, commonerrors.ErrInvalidCredentials
	}

	metrics.LoginAttemptsTotal.WithLabelValues(string(kind), "success").Inc()
	s.log.WithFields(ctx, logger.Fields{
		"kind":       string(kind),
		"account_id": string(account.ID),
		"action":     "login_success",
	}).Info("login succeeded")

	return account.Public(), nil
}

func (s *AuthService) store(kind accountdomain.Kind) (Accounts, error) {
	store, ok := s.accounts[kind]
	if !ok {
		return nil, commonerrors.ErrRouteNotFound
	}
	return store, nil
}
