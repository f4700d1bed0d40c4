package repositories

import (
	"context"
	"encoding/json"

	"learnnote/internal/domain/models"
)

// UserRepository defines data access operations for users
type UserRepository interface {
	// Create inserts a new user and assigns its id
	Create(ctx context.Context, user *models.User) error

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID retrieves a user by id
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// UpdateTopicOrder replaces the user's topic ordering
	UpdateTopicOrder(ctx context.Context, userID int64, order json.RawMessage) (*models.User, error)
}
