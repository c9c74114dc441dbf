package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinemind/studio-api/internal/core/domain"
	"github.com/cinemind/studio-api/internal/core/ports"
	"github.com/cinemind/studio-api/internal/pkg/metrics"
)

// AuthService implements the demo login: unknown emails are registered on
// the spot and passwords are never checked.
type AuthService struct {
	repo      ports.AccountRepository
	tokens    ports.TokenIssuer
	passwords ports.PasswordPolicy
	activity  ports.ActivityRecorder
	log       zerolog.Logger
}

func NewAuthService(
	repo ports.AccountRepository,
	tokens ports.TokenIssuer,
	passwords ports.PasswordPolicy,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		repo:      repo,
		tokens:    tokens,
		passwords: passwords,
		activity:  orNop(activity),
		log:       log,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByEmail(ctx, email)
	registered := false
	switch {
	case err == nil:
		// Existing account: the password is not checked.
	case errors.Is(err, domain.ErrAccountNotFound):
		account, registered, err = s.register(ctx, email, password)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("login: find account: %w", err)
	}

	token, err := s.tokens.Issue(account)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	result := "existing"
	if registered {
		result = "registered"
	}
	metrics.LoginsTotal.WithLabelValues(result).Inc()
	s.activity.Record(domain.Activity{
		Kind:       domain.ActivityLogin,
		AccountID:  account.ID,
		Details:    map[string]string{"result": result},
		OccurredAt: time.Now().UTC(),
	})
	s.log.Info().Int64("account_id", account.ID).Str("result", result).Msg("login")

	return &ports.LoginResult{Account: account, Token: token, Registered: registered}, nil
}

// register creates the account for a first login. When a concurrent login
// for the same email wins the insert, the winner's row is returned instead.
func (s *AuthService) register(ctx context.Context, email, password string) (*domain.Account, bool, error) {
	stored, err := s.passwords.Prepare(password)
	if err != nil {
		return nil, false, fmt.Errorf("login: prepare password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.Account{
		Name:     domain.DisplayNameFromEmail(email),
		Email:    email,
		Password: stored,
		Role:     domain.DefaultRole,
	})
	if err == nil {
		s.log.Info().Int64("account_id", created.ID).Str("name", created.Name).Msg("account registered")
		return created, true, nil
	}
	if !errors.Is(err, domain.ErrAccountExists) {
		return nil, false, fmt.Errorf("login: create account: %w", err)
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, false, fmt.Errorf("login: reread account: %w", err)
	}
	s.log.Debug().Int64("account_id", existing.ID).Msg("concurrent registration resolved to existing account")
	return existing, false, nil
}
