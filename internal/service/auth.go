package service

import (
	"context"
	"errors"
	"log/slog"

	"learnnote/internal/auth"
	"learnnote/internal/domain"
	"learnnote/internal/domain/models"
	"learnnote/internal/domain/repositories"
)

// AuthService verifies credentials and issues bearer tokens
type AuthService interface {
	// Login checks email/password and returns the user with a fresh token
	Login(ctx context.Context, email, password string) (*models.User, string, error)

	// Refresh re-signs a token for an already-verified identity
	Refresh(identity models.Identity) (string, error)
}

type authService struct {
	users  repositories.UserRepository
	issuer *auth.TokenIssuer
	logger *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users repositories.UserRepository, issuer *auth.TokenIssuer, logger *slog.Logger) AuthService {
	return &authService{users: users, issuer: issuer, logger: logger}
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Unknown email and wrong password are indistinguishable
			return nil, "", domain.ErrUnauthorized
		}
		return nil, "", err
	}

	if !auth.VerifyPassword(user.Password, password) {
		return nil, "", domain.ErrUnauthorized
	}

	token, err := s.issuer.Issue(models.Identity{ID: user.ID, Email: user.Email, Name: user.Name})
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user logged in", "id", user.ID)
	return user, token, nil
}

func (s *authService) Refresh(identity models.Identity) (string, error) {
	return s.issuer.Issue(identity)
}
