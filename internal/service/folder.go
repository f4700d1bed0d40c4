package service

import (
	"context"
	"log/slog"
	"strings"

	"learnnote/internal/domain"
	"learnnote/internal/domain/models"
	"learnnote/internal/domain/repositories"
	"learnnote/internal/httputil"
)

// FolderRequest is the body of folder create and rename calls
type FolderRequest struct {
	Title httputil.FlexString `json:"title"`
}

// FolderService manages the user's folders
type FolderService interface {
	List(ctx context.Context, userID int64, opts repositories.ListOptions) ([]models.Folder, error)
	Create(ctx context.Context, userID int64, req *FolderRequest) (*models.Folder, error)
	Update(ctx context.Context, userID, folderID int64, req *FolderRequest) (*models.Folder, error)
	Delete(ctx context.Context, userID, folderID int64) error
}

type folderService struct {
	repo   repositories.FolderRepository
	logger *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(repo repositories.FolderRepository, logger *slog.Logger) FolderService {
	return &folderService{repo: repo, logger: logger}
}

func (s *folderService) List(ctx context.Context, userID int64, opts repositories.ListOptions) ([]models.Folder, error) {
	return s.repo.List(ctx, userID, opts)
}

func (s *folderService) Create(ctx context.Context, userID int64, req *FolderRequest) (*models.Folder, error) {
	title, err := requireTitle(req.Title, "Folder")
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, userID, title, 0); err != nil {
		return nil, err
	}

	folder := &models.Folder{UserID: userID, Title: title}
	if err := s.repo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created", "id", folder.ID, "title", folder.Title)
	return folder, nil
}

func (s *folderService) Update(ctx context.Context, userID, folderID int64, req *FolderRequest) (*models.Folder, error) {
	title, err := requireTitle(req.Title, "Folder")
	if err != nil {
		return nil, err
	}

	folder, err := s.repo.GetByID(ctx, folderID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, userID, title, folder.ID); err != nil {
		return nil, err
	}

	folder.Title = title
	if err := s.repo.Update(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder renamed", "id", folder.ID, "title", folder.Title)
	return folder, nil
}

func (s *folderService) Delete(ctx context.Context, userID, folderID int64) error {
	if err := s.repo.Delete(ctx, folderID, userID); err != nil {
		return err
	}

	s.logger.Info("folder deleted", "id", folderID)
	return nil
}

// checkUnique enforces per-user folder title uniqueness, excluding the
// record being updated.
func (s *folderService) checkUnique(ctx context.Context, userID int64, title string, excludeID int64) error {
	existing, err := s.repo.FindByTitle(ctx, userID, title)
	if err != nil {
		return err
	}
	var existingID *int64
	if existing != nil {
		existingID = &existing.ID
	}
	return titleConflict(existingID, excludeID, "Folder with this title already exists")
}

// requireTitle applies the shared title rules: the value must be present and
// coercible to a string, and must not be blank after trimming.
func requireTitle(f httputil.FlexString, entity string) (string, error) {
	if !f.Present {
		return "", domain.Validationf("Missing title in request body")
	}
	if !f.Valid {
		return "", domain.Validationf("%s title is invalid", entity)
	}
	if strings.TrimSpace(f.Value) == "" {
		return "", domain.Validationf("%s title is required", entity)
	}
	return f.Value, nil
}
