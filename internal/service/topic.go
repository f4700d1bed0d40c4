package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"learnnote/internal/domain"
	"learnnote/internal/domain/models"
	"learnnote/internal/domain/repositories"
	"learnnote/internal/httputil"
)

// TopicRequest is the body of topic create and update calls. Every field is
// optional on update; presence is tracked so partial updates only touch what
// the client sent.
type TopicRequest struct {
	Title         httputil.FlexString `json:"title"`
	Parent        httputil.FlexInt64  `json:"parent"`
	Notebook      json.RawMessage     `json:"notebook"`
	ResourceOrder json.RawMessage     `json:"resourceOrder"`
}

// TopicService manages the user's topics and their notebook content
type TopicService interface {
	List(ctx context.Context, userID int64, opts repositories.ListOptions) ([]models.Topic, error)
	Get(ctx context.Context, userID, topicID int64, withResources bool) (*models.Topic, error)
	Create(ctx context.Context, userID int64, req *TopicRequest) (*models.Topic, error)
	Update(ctx context.Context, userID, topicID int64, req *TopicRequest) (*models.Topic, error)
	Delete(ctx context.Context, userID, topicID int64) error
}

type topicService struct {
	repo         repositories.TopicRepository
	resourceRepo repositories.ResourceRepository
	parents      parentRule
	logger       *slog.Logger
}

// NewTopicService creates a new topic service. The folder repository backs
// the optional parent-ownership check.
func NewTopicService(
	repo repositories.TopicRepository,
	resourceRepo repositories.ResourceRepository,
	folderRepo repositories.FolderRepository,
	logger *slog.Logger,
) TopicService {
	return &topicService{
		repo:         repo,
		resourceRepo: resourceRepo,
		parents: parentRule{
			required: false,
			exists:   folderRepo.Exists,
			message:  "Parent id is invalid",
		},
		logger: logger,
	}
}

func (s *topicService) List(ctx context.Context, userID int64, opts repositories.ListOptions) ([]models.Topic, error) {
	return s.repo.List(ctx, userID, opts)
}

func (s *topicService) Get(ctx context.Context, userID, topicID int64, withResources bool) (*models.Topic, error) {
	topic, err := s.repo.GetByID(ctx, topicID, userID)
	if err != nil {
		return nil, err
	}

	if withResources {
		resources, err := s.resourceRepo.ListByTopic(ctx, topicID, userID)
		if err != nil {
			return nil, err
		}
		topic.Resources = resources
	}

	return topic, nil
}

func (s *topicService) Create(ctx context.Context, userID int64, req *TopicRequest) (*models.Topic, error) {
	title, err := requireTitle(req.Title, "Topic")
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

	if req.Notebook != nil {
		if err := validateNotebook(req.Notebook); err != nil {
			return nil, err
		}
	}

	if err := s.checkUnique(ctx, userID, title, 0); err != nil {
		return nil, err
	}

	topic := &models.Topic{
		UserID:        userID,
		Title:         title,
		Parent:        parent,
		Notebook:      normalizeJSON(req.Notebook),
		ResourceOrder: normalizeJSON(req.ResourceOrder),
	}
	if err := s.repo.Create(ctx, topic); err != nil {
		return nil, err
	}

	s.logger.Info("topic created", "id", topic.ID, "title", topic.Title, "parent", topic.Parent)

	// Re-read to resolve the parent folder title for normalization
	return s.repo.GetByID(ctx, topic.ID, userID)
}

func (s *topicService) Update(ctx context.Context, userID, topicID int64, req *TopicRequest) (*models.Topic, error) {
	topic, err := s.repo.GetByID(ctx, topicID, userID)
	if err != nil {
		return nil, err
	}

	if req.Title.Present {
		title, err := requireTitle(req.Title, "Topic")
		if err != nil {
			return nil, err
		}
		if err := s.checkUnique(ctx, userID, title, topic.ID); err != nil {
			return nil, err
		}
		topic.Title = title
	}

	if req.Parent.Present {
		parent, err := parseParent(req.Parent)
		if err != nil {
			return nil, err
		}
		if err := s.parents.check(ctx, userID, parent); err != nil {
			return nil, err
		}
		topic.Parent = parent
		topic.FolderTitle = nil
	}

	if req.Notebook != nil {
		if err := validateNotebook(req.Notebook); err != nil {
			return nil, err
		}
		topic.Notebook = normalizeJSON(req.Notebook)
	}

	if req.ResourceOrder != nil {
		topic.ResourceOrder = normalizeJSON(req.ResourceOrder)
	}

	if err := s.repo.Update(ctx, topic); err != nil {
		return nil, err
	}

	s.logger.Info("topic updated", "id", topic.ID, "title", topic.Title, "parent", topic.Parent)

	// Re-read to resolve the (possibly changed) parent folder title
	return s.repo.GetByID(ctx, topic.ID, userID)
}

func (s *topicService) Delete(ctx context.Context, userID, topicID int64) error {
	if err := s.repo.Delete(ctx, topicID, userID); err != nil {
		return err
	}

	s.logger.Info("topic deleted", "id", topicID)
	return nil
}

// checkUnique enforces per-user topic title uniqueness, excluding the record
// being updated.
func (s *topicService) checkUnique(ctx context.Context, userID int64, title string, excludeID int64) error {
	existing, err := s.repo.FindByTitle(ctx, userID, title)
	if err != nil {
		return err
	}
	var existingID *int64
	if existing != nil {
		existingID = &existing.ID
	}
	return titleConflict(existingID, excludeID, "Topic with this title already exists")
}

// parseParent turns the flexible parent field into a nullable id. Absent and
// explicit null both mean "no parent".
func parseParent(f httputil.FlexInt64) (*int64, error) {
	if !f.Present || f.Null {
		return nil, nil
	}
	if !f.Valid {
		return nil, domain.Validationf("Parent is invalid")
	}
	v := f.Value
	return &v, nil
}

// validateNotebook applies the shallow delta-document shape check: the blob
// must be a JSON object whose ops field is a list. The interior is opaque.
func validateNotebook(raw json.RawMessage) error {
	if isJSONNull(raw) {
		return nil
	}

	var doc struct {
		Ops json.RawMessage `json:"ops"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil || doc.Ops == nil {
		return domain.Validationf("Notebook must contain an ops list")
	}

	var ops []json.RawMessage
	if err := json.Unmarshal(doc.Ops, &ops); err != nil {
		return domain.Validationf("Notebook must contain an ops list")
	}

	return nil
}

// normalizeJSON maps an explicit JSON null to a stored NULL
func normalizeJSON(raw json.RawMessage) json.RawMessage {
	if isJSONNull(raw) {
		return nil
	}
	return raw
}

func isJSONNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}
