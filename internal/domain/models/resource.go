package models

import (
	"time"
)

// Resource type tags. YouTube resources store the bare video id as uri.
const (
	ResourceTypeYouTube = "youtube"
	ResourceTypeOther   = "other"
)

// Resource is a single link/video reference under a topic. Unlike topics,
// the parent reference is mandatory. (user_id, parent, title) is unique.
type Resource struct {
	ID         int64     `db:"id"`
	UserID     int64     `db:"user_id"`
	Parent     int64     `db:"parent"`
	TopicTitle *string   // joined from topics; nil when not fetched
	Title      string    `db:"title"`
	URI        string    `db:"uri"`
	Type       string    `db:"type"`
	Completed  bool      `db:"completed"`
	LastOpened time.Time `db:"last_opened"`
}

// ResourceView is the public response shape for a resource. Parent is the
// nested {id, title} object on standalone reads and omitted when the
// resource is nested under its topic.
type ResourceView struct {
	ID         int64      `json:"id"`
	Parent     *ParentRef `json:"parent,omitempty"`
	Title      string     `json:"title"`
	URI        string     `json:"uri"`
	Type       string     `json:"type"`
	Completed  bool       `json:"completed"`
	LastOpened time.Time  `json:"lastOpened"`
}

// View reshapes the flat record, nesting the parent topic reference.
func (r *Resource) View() ResourceView {
	v := r.NestedView()
	v.Parent = &ParentRef{ID: r.Parent, Title: r.TopicTitle}
	return v
}

// NestedView is the shape used inside a topic's resources array, where the
// parent reference would be redundant.
func (r *Resource) NestedView() ResourceView {
	return ResourceView{
		ID:         r.ID,
		Title:      r.Title,
		URI:        r.URI,
		Type:       r.Type,
		Completed:  r.Completed,
		LastOpened: r.LastOpened,
	}
}

// ValidType reports whether a client-supplied type tag is allowed.
func ValidType(t string) bool {
	return t == ResourceTypeYouTube || t == ResourceTypeOther
}
