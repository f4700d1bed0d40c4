package service

import (
	"context"
	"errors"
	"testing"

	"learnnote/internal/domain"
	"learnnote/internal/httputil"
)

func TestFolderCreate(t *testing.T) {
	ctx := context.Background()
	svc := NewFolderService(newFakeFolderRepo(), testLogger())

	folder, err := svc.Create(ctx, 1, &FolderRequest{Title: flexStr("Math")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if folder.ID == 0 {
		t.Error("expected an assigned id")
	}
	if folder.Title != "Math" {
		t.Errorf("title = %q, want %q", folder.Title, "Math")
	}
}

func TestFolderCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		title   httputil.FlexString
		wantMsg string
	}{
		{"missing title", httputil.FlexString{}, "Missing title in request body"},
		{"uncoercible title", httputil.FlexString{Present: true}, "Folder title is invalid"},
		{"blank title", flexStr("   "), "Folder title is required"},
	}

	ctx := context.Background()
	svc := NewFolderService(newFakeFolderRepo(), testLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, 1, &FolderRequest{Title: tt.title})
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("error = %v, want ErrValidation", err)
			}
			if got := domain.Message(err); got != tt.wantMsg {
				t.Errorf("message = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestFolderCreateDuplicateTitle(t *testing.T) {
	ctx := context.Background()
	svc := NewFolderService(newFakeFolderRepo(), testLogger())

	if _, err := svc.Create(ctx, 1, &FolderRequest{Title: flexStr("Math")}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.Create(ctx, 1, &FolderRequest{Title: flexStr("Math")})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("error = %v, want ErrConflict", err)
	}
	if got := domain.Message(err); got != "Folder with this title already exists" {
		t.Errorf("message = %q", got)
	}

	// A different user may reuse the title
	if _, err := svc.Create(ctx, 2, &FolderRequest{Title: flexStr("Math")}); err != nil {
		t.Errorf("other user create: %v", err)
	}
}

func TestFolderUpdate(t *testing.T) {
	ctx := context.Background()
	svc := NewFolderService(newFakeFolderRepo(), testLogger())

	folder, err := svc.Create(ctx, 1, &FolderRequest{Title: flexStr("Math")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Renaming to its own title is not a conflict
	renamed, err := svc.Update(ctx, 1, folder.ID, &FolderRequest{Title: flexStr("Math")})
	if err != nil {
		t.Fatalf("same-title rename: %v", err)
	}
	if renamed.Title != "Math" {
		t.Errorf("title = %q", renamed.Title)
	}

	if _, err := svc.Create(ctx, 1, &FolderRequest{Title: flexStr("Physics")}); err != nil {
		t.Fatalf("second create: %v", err)
	}

	// Renaming onto a sibling's title is
	if _, err := svc.Update(ctx, 1, folder.ID, &FolderRequest{Title: flexStr("Physics")}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestFolderUpdateNotOwned(t *testing.T) {
	ctx := context.Background()
	svc := NewFolderService(newFakeFolderRepo(), testLogger())

	folder, err := svc.Create(ctx, 1, &FolderRequest{Title: flexStr("Math")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(ctx, 2, folder.ID, &FolderRequest{Title: flexStr("Stolen")}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, 2, folder.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("delete error = %v, want ErrNotFound", err)
	}
}

func TestFolderDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewFolderService(newFakeFolderRepo(), testLogger())

	folder, err := svc.Create(ctx, 1, &FolderRequest{Title: flexStr("Math")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, 1, folder.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, 1, folder.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}
