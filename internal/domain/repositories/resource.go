package repositories

import (
	"context"

	"learnnote/internal/domain/models"
)

// ResourceRepository defines data access operations for resources.
// Standalone reads join the parent topic's title for response normalization.
type ResourceRepository interface {
	// Create inserts a new resource and assigns its id
	Create(ctx context.Context, resource *models.Resource) error

	// GetByID retrieves a resource owned by the user, with the parent topic title
	GetByID(ctx context.Context, id, userID int64) (*models.Resource, error)

	// List retrieves all of the user's resources, with parent topic titles
	List(ctx context.Context, userID int64, opts ListOptions) ([]models.Resource, error)

	// ListByTopic retrieves the resources under one topic, most recently opened first
	ListByTopic(ctx context.Context, topicID, userID int64) ([]models.Resource, error)

	// Update rewrites a resource's mutable columns
	Update(ctx context.Context, resource *models.Resource) error

	// Delete removes a resource
	Delete(ctx context.Context, id, userID int64) error

	// FindByTitle returns the resource with the given title under one topic, or nil
	FindByTitle(ctx context.Context, userID, parentID int64, title string) (*models.Resource, error)
}
