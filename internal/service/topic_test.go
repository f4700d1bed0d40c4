package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"learnnote/internal/domain"
	"learnnote/internal/httputil"
)

func newTopicFixture() (TopicService, *fakeFolderRepo, *fakeTopicRepo, *fakeResourceRepo) {
	folders := newFakeFolderRepo()
	topics := newFakeTopicRepo(folders)
	resources := newFakeResourceRepo(topics)
	svc := NewTopicService(topics, resources, folders, testLogger())
	return svc, folders, topics, resources
}

func TestTopicCreate(t *testing.T) {
	ctx := context.Background()
	svc, folders, _, _ := newTopicFixture()

	if err := folders.Create(ctx, folderFor(1, "School")); err != nil {
		t.Fatalf("seed folder: %v", err)
	}

	topic, err := svc.Create(ctx, 1, &TopicRequest{
		Title:  flexStr("Calculus"),
		Parent: flexInt(1),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if topic.Parent == nil || *topic.Parent != 1 {
		t.Errorf("parent = %v, want 1", topic.Parent)
	}
	if topic.FolderTitle == nil || *topic.FolderTitle != "School" {
		t.Errorf("folder title = %v, want School", topic.FolderTitle)
	}
}

func TestTopicCreateWithoutParent(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTopicFixture()

	topic, err := svc.Create(ctx, 1, &TopicRequest{Title: flexStr("Scratchpad")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if topic.Parent != nil {
		t.Errorf("parent = %v, want nil", topic.Parent)
	}
}

func TestTopicCreateParentChecks(t *testing.T) {
	ctx := context.Background()
	svc, folders, _, _ := newTopicFixture()

	if err := folders.Create(ctx, folderFor(2, "Theirs")); err != nil {
		t.Fatalf("seed folder: %v", err)
	}

	tests := []struct {
		name    string
		parent  httputil.FlexInt64
		wantMsg string
	}{
		{"unknown folder", flexInt(99), "Parent id is invalid"},
		{"another user's folder", flexInt(1), "Parent id is invalid"},
		{"uncoercible parent", httputil.FlexInt64{Present: true}, "Parent is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, 1, &TopicRequest{Title: flexStr("T"), Parent: tt.parent})
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("error = %v, want ErrValidation", err)
			}
			if got := domain.Message(err); got != tt.wantMsg {
				t.Errorf("message = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestTopicCreateNotebookShape(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTopicFixture()

	bad := []json.RawMessage{
		json.RawMessage(`"not an object"`),
		json.RawMessage(`{"text":"no ops"}`),
		json.RawMessage(`{"ops":"not a list"}`),
		json.RawMessage(`[1,2,3]`),
	}
	for _, raw := range bad {
		_, err := svc.Create(ctx, 1, &TopicRequest{Title: flexStr("T"), Notebook: raw})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("notebook %s: error = %v, want ErrValidation", raw, err)
		}
	}

	topic, err := svc.Create(ctx, 1, &TopicRequest{
		Title:    flexStr("T"),
		Notebook: json.RawMessage(`{"ops":[{"insert":"hello\n"}]}`),
	})
	if err != nil {
		t.Fatalf("valid notebook: %v", err)
	}
	if topic.Notebook == nil {
		t.Error("notebook was not stored")
	}
}

func TestTopicCreateDuplicateTitle(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTopicFixture()

	if _, err := svc.Create(ctx, 1, &TopicRequest{Title: flexStr("Calculus")}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.Create(ctx, 1, &TopicRequest{Title: flexStr("Calculus")})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("error = %v, want ErrConflict", err)
	}
	if got := domain.Message(err); got != "Topic with this title already exists" {
		t.Errorf("message = %q", got)
	}
}

func TestTopicUpdatePartial(t *testing.T) {
	ctx := context.Background()
	svc, folders, _, _ := newTopicFixture()

	if err := folders.Create(ctx, folderFor(1, "School")); err != nil {
		t.Fatalf("seed folder: %v", err)
	}
	topic, err := svc.Create(ctx, 1, &TopicRequest{
		Title:    flexStr("Calculus"),
		Parent:   flexInt(1),
		Notebook: json.RawMessage(`{"ops":[]}`),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// A title-only update leaves the parent and notebook alone
	updated, err := svc.Update(ctx, 1, topic.ID, &TopicRequest{Title: flexStr("Calculus II")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Calculus II" {
		t.Errorf("title = %q", updated.Title)
	}
	if updated.Parent == nil || *updated.Parent != 1 {
		t.Errorf("parent = %v, want 1", updated.Parent)
	}
	if updated.Notebook == nil {
		t.Error("notebook was cleared by an unrelated update")
	}

	// An explicit null parent detaches the topic from its folder
	detached, err := svc.Update(ctx, 1, topic.ID, &TopicRequest{Parent: flexNull()})
	if err != nil {
		t.Fatalf("detach: %v", err)
	}
	if detached.Parent != nil {
		t.Errorf("parent = %v, want nil", detached.Parent)
	}
	if detached.FolderTitle != nil {
		t.Errorf("folder title = %v, want nil", detached.FolderTitle)
	}
}

func TestTopicUpdateDuplicateExcludesSelf(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTopicFixture()

	topic, err := svc.Create(ctx, 1, &TopicRequest{Title: flexStr("Calculus")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, 1, &TopicRequest{Title: flexStr("Algebra")}); err != nil {
		t.Fatalf("second create: %v", err)
	}

	if _, err := svc.Update(ctx, 1, topic.ID, &TopicRequest{Title: flexStr("Calculus")}); err != nil {
		t.Errorf("same-title update: %v", err)
	}
	if _, err := svc.Update(ctx, 1, topic.ID, &TopicRequest{Title: flexStr("Algebra")}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestTopicGetWithResources(t *testing.T) {
	ctx := context.Background()
	svc, _, _, resources := newTopicFixture()

	topic, err := svc.Create(ctx, 1, &TopicRequest{Title: flexStr("Calculus")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	seedResource(t, resources, 1, topic.ID, "Lecture 1")
	seedResource(t, resources, 1, topic.ID, "Lecture 2")

	got, err := svc.Get(ctx, 1, topic.ID, true)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Resources) != 2 {
		t.Errorf("resources = %d, want 2", len(got.Resources))
	}

	bare, err := svc.Get(ctx, 1, topic.ID, false)
	if err != nil {
		t.Fatalf("get without resources: %v", err)
	}
	if bare.Resources != nil {
		t.Errorf("resources = %v, want nil", bare.Resources)
	}

	if _, err := svc.Get(ctx, 2, topic.ID, false); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("cross-user get error = %v, want ErrNotFound", err)
	}
}
