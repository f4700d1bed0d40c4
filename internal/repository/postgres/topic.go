package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"learnnote/internal/domain"
	"learnnote/internal/domain/models"
	"learnnote/internal/domain/repositories"
)

// topicColumns maps API order-by field names to columns. Joined queries
// qualify with the topics table to keep title unambiguous.
var topicColumns = map[string]string{
	"id":        "topics.id",
	"title":     "topics.title",
	"createdAt": "topics.created_at",
	"updatedAt": "topics.updated_at",
}

// PostgresTopicRepository implements the TopicRepository interface
type PostgresTopicRepository struct {
	pool *pgxpool.Pool
}

// NewTopicRepository creates a new topic repository
func NewTopicRepository(config *RepositoryConfig) repositories.TopicRepository {
	return &PostgresTopicRepository{pool: config.Pool}
}

// Create inserts a new topic
func (r *PostgresTopicRepository) Create(ctx context.Context, topic *models.Topic) error {
	query := `
		INSERT INTO topics (user_id, title, parent, notebook, resource_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		topic.UserID,
		topic.Title,
		topic.Parent,
		topic.Notebook,
		topic.ResourceOrder,
	).Scan(&topic.ID, &topic.CreatedAt, &topic.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return &domain.ConflictError{Message: "Topic with this title already exists", Field: "title"}
		}
		if isPgForeignKeyError(err) {
			return domain.Validationf("Parent id is invalid")
		}
		return fmt.Errorf("create topic: %w", err)
	}

	return nil
}

// GetByID retrieves a topic owned by the user, joined with the parent
// folder's title for response normalization.
func (r *PostgresTopicRepository) GetByID(ctx context.Context, id, userID int64) (*models.Topic, error) {
	query := `
		SELECT topics.id, topics.user_id, topics.title, topics.parent,
		       folders.title, topics.notebook, topics.resource_order,
		       topics.created_at, topics.updated_at
		FROM topics
		LEFT JOIN folders ON folders.id = topics.parent
		WHERE topics.id = $1 AND topics.user_id = $2
	`

	var topic models.Topic
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&topic.ID,
		&topic.UserID,
		&topic.Title,
		&topic.Parent,
		&topic.FolderTitle,
		&topic.Notebook,
		&topic.ResourceOrder,
		&topic.CreatedAt,
		&topic.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("topic %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get topic: %w", err)
	}

	return &topic, nil
}

// List retrieves all of the user's topics, with parent folder titles
func (r *PostgresTopicRepository) List(ctx context.Context, userID int64, opts repositories.ListOptions) ([]models.Topic, error) {
	query := `
		SELECT topics.id, topics.user_id, topics.title, topics.parent,
		       folders.title, topics.notebook, topics.resource_order,
		       topics.created_at, topics.updated_at
		FROM topics
		LEFT JOIN folders ON folders.id = topics.parent
		WHERE topics.user_id = $1
	` + orderClause(opts, topicColumns, "topics.id")

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	topics := []models.Topic{}
	for rows.Next() {
		var topic models.Topic
		if err := rows.Scan(
			&topic.ID,
			&topic.UserID,
			&topic.Title,
			&topic.Parent,
			&topic.FolderTitle,
			&topic.Notebook,
			&topic.ResourceOrder,
			&topic.CreatedAt,
			&topic.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, topic)
	}

	return topics, rows.Err()
}

// Update rewrites a topic's mutable columns
func (r *PostgresTopicRepository) Update(ctx context.Context, topic *models.Topic) error {
	query := `
		UPDATE topics
		SET title = $1, parent = $2, notebook = $3, resource_order = $4, updated_at = now()
		WHERE id = $5 AND user_id = $6
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		topic.Title,
		topic.Parent,
		topic.Notebook,
		topic.ResourceOrder,
		topic.ID,
		topic.UserID,
	).Scan(&topic.UpdatedAt)

	if err != nil {
		if isPgNoRowsError(err) {
			return fmt.Errorf("topic %d: %w", topic.ID, domain.ErrNotFound)
		}
		if isPgDuplicateError(err) {
			return &domain.ConflictError{Message: "Topic with this title already exists", Field: "title"}
		}
		if isPgForeignKeyError(err) {
			return domain.Validationf("Parent id is invalid")
		}
		return fmt.Errorf("update topic: %w", err)
	}

	return nil
}

// Delete removes a topic. Child resources are removed by the foreign-key
// ON DELETE CASCADE rule.
func (r *PostgresTopicRepository) Delete(ctx context.Context, id, userID int64) error {
	query := `
		DELETE FROM topics
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete topic: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("topic %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// FindByTitle returns the user's topic with the given title, or nil
func (r *PostgresTopicRepository) FindByTitle(ctx context.Context, userID int64, title string) (*models.Topic, error) {
	query := `
		SELECT id, user_id, title, parent, notebook, resource_order, created_at, updated_at
		FROM topics
		WHERE user_id = $1 AND title = $2
	`

	var topic models.Topic
	err := r.pool.QueryRow(ctx, query, userID, title).Scan(
		&topic.ID,
		&topic.UserID,
		&topic.Title,
		&topic.Parent,
		&topic.Notebook,
		&topic.ResourceOrder,
		&topic.CreatedAt,
		&topic.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find topic by title: %w", err)
	}

	return &topic, nil
}

// Exists reports whether the topic exists and is owned by the user
func (r *PostgresTopicRepository) Exists(ctx context.Context, id, userID int64) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM topics WHERE id = $1 AND user_id = $2)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check topic: %w", err)
	}

	return exists, nil
}
