package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"learnnote/internal/domain"
	"learnnote/internal/domain/models"
	"learnnote/internal/domain/repositories"
	"learnnote/internal/httputil"
)

const testTokenTTL = time.Hour

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func flexStr(s string) httputil.FlexString {
	return httputil.FlexString{Present: true, Valid: true, Value: s}
}

func flexInt(n int64) httputil.FlexInt64 {
	return httputil.FlexInt64{Present: true, Valid: true, Value: n}
}

func flexNull() httputil.FlexInt64 {
	return httputil.FlexInt64{Present: true, Null: true}
}

func folderFor(userID int64, title string) *models.Folder {
	return &models.Folder{UserID: userID, Title: title}
}

func seedResource(t *testing.T, repo *fakeResourceRepo, userID, parent int64, title string) *models.Resource {
	t.Helper()
	r := &models.Resource{
		UserID: userID,
		Parent: parent,
		Title:  title,
		URI:    "https://example.com/" + title,
		Type:   models.ResourceTypeOther,
	}
	if err := repo.Create(context.Background(), r); err != nil {
		t.Fatalf("seed resource: %v", err)
	}
	return r
}

// In-memory repository fakes. They mirror the store's scoping and constraint
// behavior: every lookup filters by user id, duplicates surface as
// ConflictError, missing rows as ErrNotFound.

type fakeFolderRepo struct {
	folders map[int64]*models.Folder
	nextID  int64
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: map[int64]*models.Folder{}, nextID: 1}
}

func (f *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	for _, existing := range f.folders {
		if existing.UserID == folder.UserID && existing.Title == folder.Title {
			return &domain.ConflictError{Message: "Folder with this title already exists", Field: "title"}
		}
	}
	folder.ID = f.nextID
	f.nextID++
	folder.CreatedAt = time.Now()
	folder.UpdatedAt = folder.CreatedAt
	copied := *folder
	f.folders[folder.ID] = &copied
	return nil
}

func (f *fakeFolderRepo) GetByID(ctx context.Context, id, userID int64) (*models.Folder, error) {
	folder, ok := f.folders[id]
	if !ok || folder.UserID != userID {
		return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}
	copied := *folder
	return &copied, nil
}

func (f *fakeFolderRepo) List(ctx context.Context, userID int64, opts repositories.ListOptions) ([]models.Folder, error) {
	out := []models.Folder{}
	for _, folder := range f.folders {
		if folder.UserID == userID {
			out = append(out, *folder)
		}
	}
	return out, nil
}

func (f *fakeFolderRepo) Update(ctx context.Context, folder *models.Folder) error {
	existing, ok := f.folders[folder.ID]
	if !ok || existing.UserID != folder.UserID {
		return fmt.Errorf("folder %d: %w", folder.ID, domain.ErrNotFound)
	}
	existing.Title = folder.Title
	existing.UpdatedAt = time.Now()
	return nil
}

func (f *fakeFolderRepo) Delete(ctx context.Context, id, userID int64) error {
	folder, ok := f.folders[id]
	if !ok || folder.UserID != userID {
		return fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}
	delete(f.folders, id)
	return nil
}

func (f *fakeFolderRepo) FindByTitle(ctx context.Context, userID int64, title string) (*models.Folder, error) {
	for _, folder := range f.folders {
		if folder.UserID == userID && folder.Title == title {
			copied := *folder
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeFolderRepo) Exists(ctx context.Context, id, userID int64) (bool, error) {
	folder, ok := f.folders[id]
	return ok && folder.UserID == userID, nil
}

type fakeTopicRepo struct {
	topics  map[int64]*models.Topic
	folders *fakeFolderRepo // resolves joined parent folder titles
	nextID  int64
}

func newFakeTopicRepo(folders *fakeFolderRepo) *fakeTopicRepo {
	return &fakeTopicRepo{topics: map[int64]*models.Topic{}, folders: folders, nextID: 1}
}

func (f *fakeTopicRepo) Create(ctx context.Context, topic *models.Topic) error {
	for _, existing := range f.topics {
		if existing.UserID == topic.UserID && existing.Title == topic.Title {
			return &domain.ConflictError{Message: "Topic with this title already exists", Field: "title"}
		}
	}
	topic.ID = f.nextID
	f.nextID++
	topic.CreatedAt = time.Now()
	topic.UpdatedAt = topic.CreatedAt
	copied := *topic
	f.topics[topic.ID] = &copied
	return nil
}

func (f *fakeTopicRepo) GetByID(ctx context.Context, id, userID int64) (*models.Topic, error) {
	topic, ok := f.topics[id]
	if !ok || topic.UserID != userID {
		return nil, fmt.Errorf("topic %d: %w", id, domain.ErrNotFound)
	}
	copied := *topic
	copied.FolderTitle = f.folderTitle(topic)
	return &copied, nil
}

func (f *fakeTopicRepo) folderTitle(topic *models.Topic) *string {
	if topic.Parent == nil || f.folders == nil {
		return nil
	}
	if folder, ok := f.folders.folders[*topic.Parent]; ok {
		title := folder.Title
		return &title
	}
	return nil
}

func (f *fakeTopicRepo) List(ctx context.Context, userID int64, opts repositories.ListOptions) ([]models.Topic, error) {
	out := []models.Topic{}
	for _, topic := range f.topics {
		if topic.UserID == userID {
			copied := *topic
			copied.FolderTitle = f.folderTitle(topic)
			out = append(out, copied)
		}
	}
	return out, nil
}

func (f *fakeTopicRepo) Update(ctx context.Context, topic *models.Topic) error {
	existing, ok := f.topics[topic.ID]
	if !ok || existing.UserID != topic.UserID {
		return fmt.Errorf("topic %d: %w", topic.ID, domain.ErrNotFound)
	}
	existing.Title = topic.Title
	existing.Parent = topic.Parent
	existing.Notebook = topic.Notebook
	existing.ResourceOrder = topic.ResourceOrder
	existing.UpdatedAt = time.Now()
	return nil
}

func (f *fakeTopicRepo) Delete(ctx context.Context, id, userID int64) error {
	topic, ok := f.topics[id]
	if !ok || topic.UserID != userID {
		return fmt.Errorf("topic %d: %w", id, domain.ErrNotFound)
	}
	delete(f.topics, id)
	return nil
}

func (f *fakeTopicRepo) FindByTitle(ctx context.Context, userID int64, title string) (*models.Topic, error) {
	for _, topic := range f.topics {
		if topic.UserID == userID && topic.Title == title {
			copied := *topic
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeTopicRepo) Exists(ctx context.Context, id, userID int64) (bool, error) {
	topic, ok := f.topics[id]
	return ok && topic.UserID == userID, nil
}

type fakeResourceRepo struct {
	resources map[int64]*models.Resource
	topics    *fakeTopicRepo // resolves joined parent topic titles
	nextID    int64
}

func newFakeResourceRepo(topics *fakeTopicRepo) *fakeResourceRepo {
	return &fakeResourceRepo{resources: map[int64]*models.Resource{}, topics: topics, nextID: 1}
}

func (f *fakeResourceRepo) Create(ctx context.Context, resource *models.Resource) error {
	for _, existing := range f.resources {
		if existing.UserID == resource.UserID && existing.Parent == resource.Parent && existing.Title == resource.Title {
			return &domain.ConflictError{Message: "Resource with this title already exists", Field: "title"}
		}
	}
	resource.ID = f.nextID
	f.nextID++
	if resource.LastOpened.IsZero() {
		resource.LastOpened = time.Now()
	}
	copied := *resource
	f.resources[resource.ID] = &copied
	return nil
}

func (f *fakeResourceRepo) GetByID(ctx context.Context, id, userID int64) (*models.Resource, error) {
	resource, ok := f.resources[id]
	if !ok || resource.UserID != userID {
		return nil, fmt.Errorf("resource %d: %w", id, domain.ErrNotFound)
	}
	copied := *resource
	copied.TopicTitle = f.topicTitle(resource)
	return &copied, nil
}

func (f *fakeResourceRepo) topicTitle(resource *models.Resource) *string {
	if f.topics == nil {
		return nil
	}
	if topic, ok := f.topics.topics[resource.Parent]; ok {
		title := topic.Title
		return &title
	}
	return nil
}

func (f *fakeResourceRepo) List(ctx context.Context, userID int64, opts repositories.ListOptions) ([]models.Resource, error) {
	out := []models.Resource{}
	for _, resource := range f.resources {
		if resource.UserID == userID {
			copied := *resource
			copied.TopicTitle = f.topicTitle(resource)
			out = append(out, copied)
		}
	}
	return out, nil
}

func (f *fakeResourceRepo) ListByTopic(ctx context.Context, topicID, userID int64) ([]models.Resource, error) {
	out := []models.Resource{}
	for _, resource := range f.resources {
		if resource.UserID == userID && resource.Parent == topicID {
			copied := *resource
			copied.TopicTitle = f.topicTitle(resource)
			out = append(out, copied)
		}
	}
	return out, nil
}

func (f *fakeResourceRepo) Update(ctx context.Context, resource *models.Resource) error {
	existing, ok := f.resources[resource.ID]
	if !ok || existing.UserID != resource.UserID {
		return fmt.Errorf("resource %d: %w", resource.ID, domain.ErrNotFound)
	}
	existing.Parent = resource.Parent
	existing.Title = resource.Title
	existing.URI = resource.URI
	existing.Type = resource.Type
	existing.Completed = resource.Completed
	existing.LastOpened = resource.LastOpened
	return nil
}

func (f *fakeResourceRepo) Delete(ctx context.Context, id, userID int64) error {
	resource, ok := f.resources[id]
	if !ok || resource.UserID != userID {
		return fmt.Errorf("resource %d: %w", id, domain.ErrNotFound)
	}
	delete(f.resources, id)
	return nil
}

func (f *fakeResourceRepo) FindByTitle(ctx context.Context, userID, parentID int64, title string) (*models.Resource, error) {
	for _, resource := range f.resources {
		if resource.UserID == userID && resource.Parent == parentID && resource.Title == title {
			copied := *resource
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return &domain.ConflictError{Message: "Email already exists", Field: "email"}
		}
	}
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) UpdateTopicOrder(ctx context.Context, userID int64, order json.RawMessage) (*models.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}
	user.TopicOrder = order
	copied := *user
	return &copied, nil
}
