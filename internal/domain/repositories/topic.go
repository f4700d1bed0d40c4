package repositories

import (
	"context"

	"learnnote/internal/domain/models"
)

// TopicRepository defines data access operations for topics.
// Reads join the parent folder's title for response normalization.
type TopicRepository interface {
	// Create inserts a new topic and assigns its id
	Create(ctx context.Context, topic *models.Topic) error

	// GetByID retrieves a topic owned by the user, with the parent folder title
	GetByID(ctx context.Context, id, userID int64) (*models.Topic, error)

	// List retrieves all of the user's topics, with parent folder titles
	List(ctx context.Context, userID int64, opts ListOptions) ([]models.Topic, error)

	// Update rewrites a topic's mutable columns
	Update(ctx context.Context, topic *models.Topic) error

	// Delete removes a topic; child resources are removed by cascade
	Delete(ctx context.Context, id, userID int64) error

	// FindByTitle returns the user's topic with the given title, or nil
	FindByTitle(ctx context.Context, userID int64, title string) (*models.Topic, error)

	// Exists reports whether the topic exists and is owned by the user
	Exists(ctx context.Context, id, userID int64) (bool, error)
}
