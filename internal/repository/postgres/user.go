package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"learnnote/internal/domain"
	"learnnote/internal/domain/models"
	"learnnote/internal/domain/repositories"
)

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{pool: config.Pool}
}

// Create inserts a new user and assigns its id
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, name, password, topic_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		user.Email,
		user.Name,
		user.Password,
		user.TopicOrder,
	).Scan(&user.ID)

	if err != nil {
		if isPgDuplicateError(err) {
			return &domain.ConflictError{Message: "Email already exists", Field: "email"}
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, name, password, topic_order
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Password,
		&user.TopicOrder,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// GetByID retrieves a user by id
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, email, name, password, topic_order
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Password,
		&user.TopicOrder,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// UpdateTopicOrder replaces the user's topic ordering
func (r *PostgresUserRepository) UpdateTopicOrder(ctx context.Context, userID int64, order json.RawMessage) (*models.User, error) {
	query := `
		UPDATE users
		SET topic_order = $1
		WHERE id = $2
		RETURNING id, email, name, password, topic_order
	`

	var user models.User
	err := r.pool.QueryRow(ctx, query, order, userID).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Password,
		&user.TopicOrder,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update topic order: %w", err)
	}

	return &user, nil
}
