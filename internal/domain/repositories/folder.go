package repositories

import (
	"context"

	"learnnote/internal/domain/models"
)

// FolderRepository defines data access operations for folders.
// Every read and write is scoped by the owning user's id.
type FolderRepository interface {
	// Create inserts a new folder and assigns its id
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder owned by the user
	GetByID(ctx context.Context, id, userID int64) (*models.Folder, error)

	// List retrieves all of the user's folders
	List(ctx context.Context, userID int64, opts ListOptions) ([]models.Folder, error)

	// Update rewrites a folder's mutable columns
	Update(ctx context.Context, folder *models.Folder) error

	// Delete removes a folder; child topics keep existing with parent NULL
	Delete(ctx context.Context, id, userID int64) error

	// FindByTitle returns the user's folder with the given title, or nil
	FindByTitle(ctx context.Context, userID int64, title string) (*models.Folder, error)

	// Exists reports whether the folder exists and is owned by the user
	Exists(ctx context.Context, id, userID int64) (bool, error)
}
