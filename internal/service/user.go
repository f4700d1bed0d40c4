package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"learnnote/internal/auth"
	"learnnote/internal/domain"
	"learnnote/internal/domain/models"
	"learnnote/internal/domain/repositories"
)

// CreateUserRequest is the body of the signup call
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Validate applies the signup field rules
func (r *CreateUserRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email,
			validation.Required.Error("Missing email in request body"),
			is.EmailFormat.Error("Email is not valid"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("Missing password in request body"),
			validation.By(noEdgeWhitespace("password")),
			validation.Length(8, 72).Error("password must be between 8 and 72 characters long"),
		),
		validation.Field(&r.Name,
			validation.Required.Error("Missing name in request body"),
			validation.By(notBlank("name")),
		),
	)
}

// UserService manages account creation and user-level customization
type UserService interface {
	Create(ctx context.Context, req *CreateUserRequest) (*models.User, error)
	UpdateTopicOrder(ctx context.Context, userID int64, order json.RawMessage) (*models.User, error)
}

type userService struct {
	repo   repositories.UserRepository
	logger *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(repo repositories.UserRepository, logger *slog.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) Create(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, domain.Validationf("%s", err.Error())
	}

	// Friendly fast path; the unique index on email is the real guard
	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.ConflictError{Message: "Email already exists", Field: "email"}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    req.Email,
		Name:     req.Name,
		Password: hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created", "id", user.ID, "email", user.Email)
	return user, nil
}

func (s *userService) UpdateTopicOrder(ctx context.Context, userID int64, order json.RawMessage) (*models.User, error) {
	if order == nil {
		return nil, domain.Validationf("Missing topicOrder in request body")
	}

	var ids []int64
	if err := json.Unmarshal(order, &ids); err != nil {
		return nil, domain.Validationf("topicOrder must be a list of topic ids")
	}

	user, err := s.repo.UpdateTopicOrder(ctx, userID, order)
	if err != nil {
		return nil, err
	}

	s.logger.Info("topic order updated", "id", userID, "topics", len(ids))
	return user, nil
}

// noEdgeWhitespace rejects values with leading or trailing whitespace
func noEdgeWhitespace(field string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != strings.TrimSpace(s) {
			return errors.New(field + " cannot start or end with whitespace")
		}
		return nil
	}
}

// notBlank rejects values that are empty after trimming
func notBlank(field string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}
