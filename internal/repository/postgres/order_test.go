package postgres

import (
	"testing"

	"learnnote/internal/domain/repositories"
)

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name string
		opts repositories.ListOptions
		want string
	}{
		{
			name: "defaults",
			opts: repositories.ListOptions{},
			want: " ORDER BY id ASC",
		},
		{
			name: "known field without direction sorts descending",
			opts: repositories.ListOptions{OrderBy: "createdAt"},
			want: " ORDER BY created_at DESC",
		},
		{
			name: "explicit ascending",
			opts: repositories.ListOptions{OrderBy: "title", OrderDirection: "asc"},
			want: " ORDER BY title ASC",
		},
		{
			name: "explicit descending",
			opts: repositories.ListOptions{OrderBy: "title", OrderDirection: "desc"},
			want: " ORDER BY title DESC",
		},
		{
			name: "unknown field falls back to the default column",
			opts: repositories.ListOptions{OrderBy: "password; DROP TABLE users"},
			want: " ORDER BY id DESC",
		},
		{
			name: "limit",
			opts: repositories.ListOptions{OrderBy: "updatedAt", Limit: 10},
			want: " ORDER BY updated_at DESC LIMIT 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := orderClause(tt.opts, folderColumns, "id")
			if got != tt.want {
				t.Errorf("orderClause() = %q, want %q", got, tt.want)
			}
		})
	}
}
