package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"learnnote/internal/domain"
	"learnnote/internal/domain/models"
	"learnnote/internal/domain/repositories"
)

// folderColumns maps API order-by field names to columns.
var folderColumns = map[string]string{
	"id":        "id",
	"title":     "title",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool *pgxpool.Pool
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{pool: config.Pool}
}

// Create inserts a new folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := `
		INSERT INTO folders (user_id, title)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		folder.UserID,
		folder.Title,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return &domain.ConflictError{Message: "Folder with this title already exists", Field: "title"}
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder owned by the user
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id, userID int64) (*models.Folder, error) {
	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM folders
		WHERE id = $1 AND user_id = $2
	`

	var folder models.Folder
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&folder.ID,
		&folder.UserID,
		&folder.Title,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// List retrieves all of the user's folders
func (r *PostgresFolderRepository) List(ctx context.Context, userID int64, opts repositories.ListOptions) ([]models.Folder, error) {
	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM folders
		WHERE user_id = $1
	` + orderClause(opts, folderColumns, "id")

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	folders := []models.Folder{}
	for rows.Next() {
		var folder models.Folder
		if err := rows.Scan(
			&folder.ID,
			&folder.UserID,
			&folder.Title,
			&folder.CreatedAt,
			&folder.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	return folders, rows.Err()
}

// Update rewrites a folder's mutable columns
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := `
		UPDATE folders
		SET title = $1, updated_at = now()
		WHERE id = $2 AND user_id = $3
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		folder.Title,
		folder.ID,
		folder.UserID,
	).Scan(&folder.UpdatedAt)

	if err != nil {
		if isPgNoRowsError(err) {
			return fmt.Errorf("folder %d: %w", folder.ID, domain.ErrNotFound)
		}
		if isPgDuplicateError(err) {
			return &domain.ConflictError{Message: "Folder with this title already exists", Field: "title"}
		}
		return fmt.Errorf("update folder: %w", err)
	}

	return nil
}

// Delete removes a folder. Child topics survive with parent set to NULL by
// the foreign-key ON DELETE SET NULL rule.
func (r *PostgresFolderRepository) Delete(ctx context.Context, id, userID int64) error {
	query := `
		DELETE FROM folders
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// FindByTitle returns the user's folder with the given title, or nil
func (r *PostgresFolderRepository) FindByTitle(ctx context.Context, userID int64, title string) (*models.Folder, error) {
	query := `
		SELECT id, user_id, title, created_at, updated_at
		FROM folders
		WHERE user_id = $1 AND title = $2
	`

	var folder models.Folder
	err := r.pool.QueryRow(ctx, query, userID, title).Scan(
		&folder.ID,
		&folder.UserID,
		&folder.Title,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find folder by title: %w", err)
	}

	return &folder, nil
}

// Exists reports whether the folder exists and is owned by the user
func (r *PostgresFolderRepository) Exists(ctx context.Context, id, userID int64) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM folders WHERE id = $1 AND user_id = $2)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check folder: %w", err)
	}

	return exists, nil
}
