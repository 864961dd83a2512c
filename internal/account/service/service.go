package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlibekovAA/sunzone-forum/internal/account/domain"
	"github.com/AlibekovAA/sunzone-forum/internal/account/repository"
	"github.com/AlibekovAA/sunzone-forum/internal/common/clock"
	"github.com/AlibekovAA/sunzone-forum/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/sunzone-forum/internal/common/crypto"
	"github.com/AlibekovAA/sunzone-forum/internal/common/db"
	commonerrors "github.com/AlibekovAA/sunzone-forum/internal/common/errors"
	"github.com/AlibekovAA/sunzone-forum/internal/common/logger"
	"github.com/AlibekovAA/sunzone-forum/internal/common/validation"
	"github.com/AlibekovAA/sunzone-forum/internal/observability/metrics"
)

// AccountService is the store for a single account kind. Posters and
// responders each get their own instance over their own repository.
type AccountService struct {
	kind        domain.Kind
	repo        repository.Repository
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

type AccountServiceDeps struct {
	Repo        repository.Repository
	Hasher      commoncrypto.PasswordHasher
	IDGenerator commoncrypto.IDGenerator
	Clock       clock.Clock
	Log         *logger.Logger
}

func NewAccountService(kind domain.Kind, deps AccountServiceDeps) *AccountService {
	clk := deps.Clock
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &AccountService{
		kind:        kind,
		repo:        deps.Repo,
		hasher:      deps.Hasher,
		idGenerator: deps.IDGenerator,
		clock:       clk,
		log:         deps.Log,
	}
}

type CreateInput struct {
	Username string
	Email    string
	Secret   string
}

type UpdateInput struct {
	Username *string
	Email    *string
	Secret   *string
}

func (s *AccountService) Kind() domain.Kind {
	return s.kind
}

func (s *AccountService) ListAll(ctx context.Context) ([]domain.Public, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Public, 0, len(accounts))
	for _, a := range accounts {
		result = append(result, a.Public())
	}
	return result, nil
}

func (s *AccountService) GetByID(ctx context.Context, id string) (domain.Public, error) {
	account, err := s.repo.FindByID(ctx, domain.ID(id))
	if err != nil {
		return domain.Public{}, s.mapRepoError(err)
	}
	return account.Public(), nil
}

func (s *AccountService) GetByEmail(ctx context.Context, email string) (domain.Public, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return domain.Public{}, s.mapRepoError(err)
	}
	return account.Public(), nil
}

// Credentials returns the full record including the secret hash. It is
// meant for credential checks only and never reaches a response.
func (s *AccountService) Credentials(ctx context.Context, email string) (domain.Account, error) {
	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, s.mapRepoError(err)
	}
	return account, nil
}

func (s *AccountService) Create(ctx context.Context, input CreateInput) (domain.Public, error) {
	fields := logger.Fields{
		"kind":   string(s.kind),
		"email":  input.Email,
		"action": "account_create",
	}

	if err := s.validateCreate(input); err != nil {
		s.log.WithFields(ctx, fields).Debugf("account validation failed: %v", err)
		return domain.Public{}, err
	}

	hash, err := s.hasher.Hash(input.Secret)
	if err != nil {
		s.log.WithFields(ctx, fields).Errorf("account create failed: hash error: %v", err)
		return domain.Public{}, fmt.Errorf("hash secret: %w", err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return domain.Public{}, fmt.Errorf("generate id: %w", err)
	}

	now := clock.Timestamp(s.clock)
	account := domain.Account{
		ID:         domain.ID(id),
		Kind:       s.kind,
		Username:   input.Username,
		Email:      input.Email,
		SecretHash: hash,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, account); err != nil {
		mapped := s.mapRepoError(err)
		if commonerrors.IsDomainError(mapped) {
			s.log.WithFields(ctx, fields).Infof("account create rejected: %v", mapped)
		} else {
			s.log.WithFields(ctx, fields).Errorf("account create failed: %v", err)
		}
		return domain.Public{}, mapped
	}

	metrics.AccountsRegisteredTotal.WithLabelValues(string(s.kind)).Inc()
	s.log.WithFields(ctx, logger.Fields{
		"kind":       string(s.kind),
		"account_id": id,
		"action":     "account_created",
	}).Info("account created")

	return account.Public(), nil
}

func (s *AccountService) Update(ctx context.Context, id string, input UpdateInput) (domain.Public, error) {
	if _, err := s.repo.FindByID(ctx, domain.ID(id)); err != nil {
		return domain.Public{}, s.mapRepoError(err)
	}

	if err := s.validateUpdate(input); err != nil {
		return domain.Public{}, err
	}

	changes := domain.Changes{
		Username:  input.Username,
		Email:     input.Email,
		UpdatedAt: clock.Timestamp(s.clock),
	}
	if input.Secret != nil {
		hash, err := s.hasher.Hash(*input.Secret)
		if err != nil {
			return domain.Public{}, fmt.Errorf("hash secret: %w", err)
		}
		changes.SecretHash = &hash
	}

	if err := s.repo.Update(ctx, domain.ID(id), changes); err != nil {
		mapped := s.mapRepoError(err)
		if !commonerrors.IsDomainError(mapped) {
			s.log.WithFields(ctx, logger.Fields{
				"kind":       string(s.kind),
				"account_id": id,
				"action":     "account_update_failed",
			}).Errorf("account update failed: %v", err)
		}
		return domain.Public{}, mapped
	}

	updated, err := s.repo.FindByID(ctx, domain.ID(id))
	if err != nil {
		return domain.Public{}, s.mapRepoError(err)
	}
	return updated.Public(), nil
}

func (s *AccountService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, domain.ID(id)); err != nil {
		return s.mapRepoError(err)
	}

	if err := s.repo.Delete(ctx, domain.ID(id)); err != nil {
		return s.mapRepoError(err)
	}

	metrics.ResourcesDeletedTotal.WithLabelValues(string(s.kind)).Inc()
	s.log.WithFields(ctx, logger.Fields{
		"kind":       string(s.kind),
		"account_id": id,
		"action":     "account_deleted",
	}).Info("account deleted")
	return nil
}

func (s *AccountService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *AccountService) validateCreate(input CreateInput) error {
	if err := validation.Var("username", input.Username, s.kind.UsernameRule()); err != nil {
		return err
	}
	if err := validation.Var("email", input.Email, "required,email"); err != nil {
		return err
	}
	return validateSecret(s.kind, input.Secret)
}

func (s *AccountService) validateUpdate(input UpdateInput) error {
	if input.Username != nil {
		if err := validation.Var("username", *input.Username, s.kind.UsernameRule()); err != nil {
			return err
		}
	}
	if input.Email != nil {
		if err := validation.Var("email", *input.Email, "required,email"); err != nil {
			return err
		}
	}
	if input.Secret != nil {
		return validateSecret(s.kind, *input.Secret)
	}
	return nil
}

// bcrypt reads at most 72 bytes; the validator counts characters.
func validateSecret(kind domain.Kind, secret string) error {
	if err := validation.Var("secret", secret, kind.SecretRule()); err != nil {
		return err
	}
	if len(secret) > constants.SecretMaxLength {
		return commonerrors.ErrValidation.WithMessage(fmt.Sprintf("secret must be at most %d bytes", constants.SecretMaxLength))
	}
	return nil
}

func (s *AccountService) mapRepoError(err error) error {
	if errors.Is(err, repository.ErrAccountNotFound) {
		return commonerrors.ErrAccountNotFound
	}
	if column, ok := db.UniqueViolation(err); ok {
		if column == "username" {
			return commonerrors.ErrUsernameTaken.WithCause(err)
		}
		return commonerrors.ErrEmailTaken.WithCause(err)
	}
	return err
}
