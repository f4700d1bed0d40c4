package models

import (
	"encoding/json"
	"time"
)

// Topic is a named subject holding ordered resources and a free-form
// notebook. parent references a folder owned by the same user, or NULL.
type Topic struct {
	ID            int64           `db:"id"`
	UserID        int64           `db:"user_id"`
	Title         string          `db:"title"`
	Parent        *int64          `db:"parent"`
	FolderTitle   *string         // joined from folders; nil when parent is NULL or unresolved
	Notebook      json.RawMessage `db:"notebook"`
	ResourceOrder json.RawMessage `db:"resource_order"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`

	// Resources is populated on single-topic retrieval unless suppressed.
	Resources []Resource
}

// ParentRef is the nested parent object exposed by the API. Title stays nil
// when the reference could not be resolved (deletions null references out,
// so an orphaned id is tolerated rather than failing the response).
type ParentRef struct {
	ID    int64   `json:"id"`
	Title *string `json:"title"`
}

// TopicView is the public response shape for a topic. Notebook and
// ResourceOrder are raw JSON so a stored NULL still serializes as null when
// the field is included; a nil slice means the field was excluded entirely.
type TopicView struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Parent        *ParentRef      `json:"parent"`
	Notebook      json.RawMessage `json:"notebook,omitempty"`
	ResourceOrder json.RawMessage `json:"resourceOrder,omitempty"`
	Resources     *[]ResourceView `json:"resources,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// TopicViewFlags controls which optional fields a normalized topic carries.
type TopicViewFlags struct {
	Notebook      bool
	ResourceOrder bool
	Resources     bool
}

// View reshapes the flat record into the API contract.
func (t *Topic) View(flags TopicViewFlags) TopicView {
	v := TopicView{
		ID:        t.ID,
		Title:     t.Title,
		Parent:    t.parentRef(),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if flags.Notebook {
		v.Notebook = orJSONNull(t.Notebook)
	}
	if flags.ResourceOrder {
		v.ResourceOrder = orJSONNull(t.ResourceOrder)
	}
	if flags.Resources {
		views := make([]ResourceView, 0, len(t.Resources))
		for i := range t.Resources {
			views = append(views, t.Resources[i].NestedView())
		}
		v.Resources = &views
	}
	return v
}

func (t *Topic) parentRef() *ParentRef {
	if t.Parent == nil {
		return nil
	}
	return &ParentRef{ID: *t.Parent, Title: t.FolderTitle}
}

// orJSONNull keeps included-but-NULL jsonb columns visible as JSON null.
// An empty RawMessage would otherwise be dropped by omitempty.
func orJSONNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}
