package service

import (
	"context"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"learnnote/internal/domain"
	"learnnote/internal/domain/models"
	"learnnote/internal/domain/repositories"
	"learnnote/internal/httputil"
)

// ResourceRequest is the body of resource create and update calls
type ResourceRequest struct {
	Title      httputil.FlexString `json:"title"`
	Parent     httputil.FlexInt64  `json:"parent"`
	URI        *string             `json:"uri"`
	Type       *string             `json:"type"`
	Completed  *bool               `json:"completed"`
	LastOpened *time.Time          `json:"lastOpened"`
}

// ResourceService manages the user's resources and their type classification
type ResourceService interface {
	List(ctx context.Context, userID int64, opts repositories.ListOptions) ([]models.Resource, error)
	Get(ctx context.Context, userID, resourceID int64) (*models.Resource, error)
	Create(ctx context.Context, userID int64, req *ResourceRequest) (*models.Resource, error)
	Update(ctx context.Context, userID, resourceID int64, req *ResourceRequest) (*models.Resource, error)
	Delete(ctx context.Context, userID, resourceID int64) error
}

type resourceService struct {
	repo    repositories.ResourceRepository
	parents parentRule
	logger  *slog.Logger
}

// NewResourceService creates a new resource service. The topic repository
// backs the mandatory parent-ownership check.
func NewResourceService(
	repo repositories.ResourceRepository,
	topicRepo repositories.TopicRepository,
	logger *slog.Logger,
) ResourceService {
	return &resourceService{
		repo: repo,
		parents: parentRule{
			required: true,
			exists:   topicRepo.Exists,
			message:  "Topic id is invalid",
		},
		logger: logger,
	}
}

func (s *resourceService) List(ctx context.Context, userID int64, opts repositories.ListOptions) ([]models.Resource, error) {
	return s.repo.List(ctx, userID, opts)
}

func (s *resourceService) Get(ctx context.Context, userID, resourceID int64) (*models.Resource, error) {
	return s.repo.GetByID(ctx, resourceID, userID)
}

func (s *resourceService) Create(ctx context.Context, userID int64, req *ResourceRequest) (*models.Resource, error) {
	title, err := requireTitle(req.Title, "Resource")
	if err != nil {
		return nil, err
	}

	parent, err := parseParent(req.Parent)
	if err != nil {
		return nil, err
	}
	if err := s.parents.check(ctx, userID, parent); err != nil {
		return nil, err
	}

	if req.URI == nil {
		return nil, domain.Validationf("Missing uri in request body")
	}
	if err := validation.Validate(*req.URI, validation.Required, is.URL); err != nil {
		return nil, domain.Validationf("Uri is invalid")
	}

	typ, uri, err := resolveType(req.Type, *req.URI)
	if err != nil {
		return nil, err
	}

	if err := s.checkUnique(ctx, userID, *parent, title, 0); err != nil {
		return nil, err
	}

	resource := &models.Resource{
		UserID: userID,
		Parent: *parent,
		Title:  title,
		URI:    uri,
		Type:   typ,
	}
	if req.Completed != nil {
		resource.Completed = *req.Completed
	}
	if req.LastOpened != nil {
		resource.LastOpened = *req.LastOpened
	}

	if err := s.repo.Create(ctx, resource); err != nil {
		return nil, err
	}

	s.logger.Info("resource created", "id", resource.ID, "title", resource.Title, "type", resource.Type, "parent", resource.Parent)

	// Re-read to resolve the parent topic title for normalization
	return s.repo.GetByID(ctx, resource.ID, userID)
}

func (s *resourceService) Update(ctx context.Context, userID, resourceID int64, req *ResourceRequest) (*models.Resource, error) {
	resource, err := s.repo.GetByID(ctx, resourceID, userID)
	if err != nil {
		return nil, err
	}

	if req.Parent.Present {
		parent, err := parseParent(req.Parent)
		if err != nil {
			return nil, err
		}
		if err := s.parents.check(ctx, userID, parent); err != nil {
			return nil, err
		}
		resource.Parent = *parent
		resource.TopicTitle = nil
	}

	if req.Title.Present {
		title, err := requireTitle(req.Title, "Resource")
		if err != nil {
			return nil, err
		}
		resource.Title = title
	}

	// Uniqueness is scoped to the (possibly changed) parent topic
	if req.Title.Present || req.Parent.Present {
		if err := s.checkUnique(ctx, userID, resource.Parent, resource.Title, resource.ID); err != nil {
			return nil, err
		}
	}

	if req.URI != nil {
		if err := validation.Validate(*req.URI, validation.Required, is.URL); err != nil {
			return nil, domain.Validationf("Uri is invalid")
		}
		typ, uri, err := resolveType(req.Type, *req.URI)
		if err != nil {
			return nil, err
		}
		resource.URI = uri
		resource.Type = typ
	} else if req.Type != nil {
		if !models.ValidType(*req.Type) {
			return nil, domain.Validationf("Only allowed values for `type` are `youtube` and `other`")
		}
		if *req.Type == models.ResourceTypeYouTube && resource.Type != models.ResourceTypeYouTube {
			// The stored uri is a full URL; reduce it to the video id
			id, err := ExtractYouTubeID(resource.URI)
			if err != nil {
				return nil, err
			}
			resource.URI = id
		}
		resource.Type = *req.Type
	}

	if req.Completed != nil {
		resource.Completed = *req.Completed
	}
	if req.LastOpened != nil {
		resource.LastOpened = *req.LastOpened
	}

	if err := s.repo.Update(ctx, resource); err != nil {
		return nil, err
	}

	s.logger.Info("resource updated", "id", resource.ID, "title", resource.Title, "type", resource.Type, "parent", resource.Parent)

	// Re-read to resolve the (possibly changed) parent topic title
	return s.repo.GetByID(ctx, resource.ID, userID)
}

func (s *resourceService) Delete(ctx context.Context, userID, resourceID int64) error {
	if err := s.repo.Delete(ctx, resourceID, userID); err != nil {
		return err
	}

	s.logger.Info("resource deleted", "id", resourceID)
	return nil
}

// checkUnique enforces resource title uniqueness within one topic, excluding
// the record being updated.
func (s *resourceService) checkUnique(ctx context.Context, userID, parentID int64, title string, excludeID int64) error {
	existing, err := s.repo.FindByTitle(ctx, userID, parentID, title)
	if err != nil {
		return err
	}
	var existingID *int64
	if existing != nil {
		existingID = &existing.ID
	}
	return titleConflict(existingID, excludeID, "Resource with this title already exists")
}

// resolveType reconciles a client-supplied type tag with the classifier.
// An absent tag is inferred from the uri; an explicit youtube tag must come
// with an extractable watch URL.
func resolveType(claimed *string, uri string) (string, string, error) {
	if claimed == nil {
		return Classify(uri)
	}

	if !models.ValidType(*claimed) {
		return "", "", domain.Validationf("Only allowed values for `type` are `youtube` and `other`")
	}

	if *claimed == models.ResourceTypeYouTube {
		id, err := ExtractYouTubeID(uri)
		if err != nil {
			return "", "", err
		}
		return models.ResourceTypeYouTube, id, nil
	}

	return models.ResourceTypeOther, uri, nil
}
