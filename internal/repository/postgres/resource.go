package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"learnnote/internal/domain"
	"learnnote/internal/domain/models"
	"learnnote/internal/domain/repositories"
)

var resourceColumns = map[string]string{
	"id":         "resources.id",
	"title":      "resources.title",
	"lastOpened": "resources.last_opened",
	"completed":  "resources.completed",
}

// PostgresResourceRepository implements the ResourceRepository interface
type PostgresResourceRepository struct {
	pool *pgxpool.Pool
}

// NewResourceRepository creates a new resource repository
func NewResourceRepository(config *RepositoryConfig) repositories.ResourceRepository {
	return &PostgresResourceRepository{pool: config.Pool}
}

// Create inserts a new resource
func (r *PostgresResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	// last_opened falls back to the column default when unset
	query := `
		INSERT INTO resources (user_id, parent, title, uri, type, completed, last_opened)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, now()))
		RETURNING id, completed, last_opened
	`

	var lastOpened interface{}
	if !resource.LastOpened.IsZero() {
		lastOpened = resource.LastOpened
	}

	err := r.pool.QueryRow(ctx, query,
		resource.UserID,
		resource.Parent,
		resource.Title,
		resource.URI,
		resource.Type,
		resource.Completed,
		lastOpened,
	).Scan(&resource.ID, &resource.Completed, &resource.LastOpened)

	if err != nil {
		if isPgDuplicateError(err) {
			return &domain.ConflictError{Message: "Resource with this title already exists", Field: "title"}
		}
		if isPgForeignKeyError(err) {
			return domain.Validationf("Topic id is invalid")
		}
		return fmt.Errorf("create resource: %w", err)
	}

	return nil
}

// GetByID retrieves a resource owned by the user, joined with the parent
// topic's title for response normalization.
func (r *PostgresResourceRepository) GetByID(ctx context.Context, id, userID int64) (*models.Resource, error) {
	query := `
		SELECT resources.id, resources.user_id, resources.parent, topics.title,
		       resources.title, resources.uri, resources.type,
		       resources.completed, resources.last_opened
		FROM resources
		LEFT JOIN topics ON topics.id = resources.parent
		WHERE resources.id = $1 AND resources.user_id = $2
	`

	var resource models.Resource
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&resource.ID,
		&resource.UserID,
		&resource.Parent,
		&resource.TopicTitle,
		&resource.Title,
		&resource.URI,
		&resource.Type,
		&resource.Completed,
		&resource.LastOpened,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("resource %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get resource: %w", err)
	}

	return &resource, nil
}

// List retrieves all of the user's resources, with parent topic titles
func (r *PostgresResourceRepository) List(ctx context.Context, userID int64, opts repositories.ListOptions) ([]models.Resource, error) {
	query := `
		SELECT resources.id, resources.user_id, resources.parent, topics.title,
		       resources.title, resources.uri, resources.type,
		       resources.completed, resources.last_opened
		FROM resources
		LEFT JOIN topics ON topics.id = resources.parent
		WHERE resources.user_id = $1
	` + orderClause(opts, resourceColumns, "resources.id")

	return r.queryResources(ctx, query, userID)
}

// ListByTopic retrieves the resources under one topic, most recently opened first
func (r *PostgresResourceRepository) ListByTopic(ctx context.Context, topicID, userID int64) ([]models.Resource, error) {
	query := `
		SELECT resources.id, resources.user_id, resources.parent, topics.title,
		       resources.title, resources.uri, resources.type,
		       resources.completed, resources.last_opened
		FROM resources
		LEFT JOIN topics ON topics.id = resources.parent
		WHERE resources.parent = $2 AND resources.user_id = $1
		ORDER BY resources.last_opened DESC
	`

	return r.queryResources(ctx, query, userID, topicID)
}

func (r *PostgresResourceRepository) queryResources(ctx context.Context, query string, args ...interface{}) ([]models.Resource, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	resources := []models.Resource{}
	for rows.Next() {
		var resource models.Resource
		if err := rows.Scan(
			&resource.ID,
			&resource.UserID,
			&resource.Parent,
			&resource.TopicTitle,
			&resource.Title,
			&resource.URI,
			&resource.Type,
			&resource.Completed,
			&resource.LastOpened,
		); err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		resources = append(resources, resource)
	}

	return resources, rows.Err()
}

// Update rewrites a resource's mutable columns
func (r *PostgresResourceRepository) Update(ctx context.Context, resource *models.Resource) error {
	query := `
		UPDATE resources
		SET parent = $1, title = $2, uri = $3, type = $4, completed = $5, last_opened = $6
		WHERE id = $7 AND user_id = $8
	`

	result, err := r.pool.Exec(ctx, query,
		resource.Parent,
		resource.Title,
		resource.URI,
		resource.Type,
		resource.Completed,
		resource.LastOpened,
		resource.ID,
		resource.UserID,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return &domain.ConflictError{Message: "Resource with this title already exists", Field: "title"}
		}
		if isPgForeignKeyError(err) {
			return domain.Validationf("Topic id is invalid")
		}
		return fmt.Errorf("update resource: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("resource %d: %w", resource.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a resource
func (r *PostgresResourceRepository) Delete(ctx context.Context, id, userID int64) error {
	query := `
		DELETE FROM resources
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("resource %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// FindByTitle returns the resource with the given title under one topic, or nil.
// Resource titles are unique per (user, topic), not per user.
func (r *PostgresResourceRepository) FindByTitle(ctx context.Context, userID, parentID int64, title string) (*models.Resource, error) {
	query := `
		SELECT id, user_id, parent, title, uri, type, completed, last_opened
		FROM resources
		WHERE user_id = $1 AND parent = $2 AND title = $3
	`

	var resource models.Resource
	err := r.pool.QueryRow(ctx, query, userID, parentID, title).Scan(
		&resource.ID,
		&resource.UserID,
		&resource.Parent,
		&resource.Title,
		&resource.URI,
		&resource.Type,
		&resource.Completed,
		&resource.LastOpened,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find resource by title: %w", err)
	}

	return &resource, nil
}
