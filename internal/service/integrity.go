package service

import (
	"context"

	"learnnote/internal/domain"
)

// parentRule is the shared "owned parent container" check. Topics reference
// an optional folder, resources a mandatory topic; everything else about the
// check is identical, so it is written once and configured per entity.
type parentRule struct {
	// required rejects a nil parent instead of short-circuiting to ok
	required bool
	// exists resolves the claimed parent scoped by the acting user. A missing
	// row and a row owned by someone else are indistinguishable on purpose,
	// so cross-user ids cannot be probed.
	exists func(ctx context.Context, id, userID int64) (bool, error)
	// message is the user-facing text when the reference cannot be resolved
	message string
}

// check validates a claimed parent id against the rule. parent is nil when
// the field was absent or explicitly null.
func (r parentRule) check(ctx context.Context, userID int64, parent *int64) error {
	if parent == nil {
		if r.required {
			return domain.Validationf("Parent id is required")
		}
		return nil
	}

	ok, err := r.exists(ctx, *parent, userID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.Validationf("%s", r.message)
	}
	return nil
}

// titleConflict is the shared uniqueness verdict: a sibling with the same
// title that is not the record being updated is a conflict. existingID is
// nil when no sibling matched.
func titleConflict(existingID *int64, excludeID int64, message string) error {
	if existingID == nil {
		return nil
	}
	if *existingID == excludeID {
		return nil
	}
	return &domain.ConflictError{Message: message, Field: "title"}
}
