package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/sevaconnect/booking-api/internal/model"
	"github.com/sevaconnect/booking-api/internal/repository"
	"github.com/sevaconnect/booking-api/pkg/auth"
	"github.com/sevaconnect/booking-api/pkg/security"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const bcryptCost = 12

// Service authenticates doctor dashboard accounts and issues bearer tokens.
type Service struct {
	accounts repository.DoctorAccountRepository
	jwtSvc   auth.JWTService
	hasher   security.PasswordHasher
}

func NewService(accounts repository.DoctorAccountRepository, jwtSvc auth.JWTService) *Service {
	return &Service{
		accounts: accounts,
		jwtSvc:   jwtSvc,
		hasher:   security.NewBcryptHasher(bcryptCost),
	}
}

func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if err := s.hasher.Compare(account.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtSvc.GenerateToken(account)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *Service) ValidateToken(_ context.Context, token string) (*model.TokenClaims, error) {
	return s.jwtSvc.ValidateToken(token)
}
