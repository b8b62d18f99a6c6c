package domain

import (
	"encoding/json"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Design is a user's saved canvas. Data is the editor document, kept as raw
// JSON and never interpreted here.
type Design struct {
	ID        uuid.UUID
	UserID    string
	Name      string
	Data      json.RawMessage
	Thumbnail string
	IsPublic  bool

	CreatedAt time.Time
}

// VisibleTo reports whether userID may read the design.
func (d Design) VisibleTo(userID string) bool {
	return d.UserID == userID || d.IsPublic
}

func (d Design) Validate() error {
	if strings.TrimSpace(d.UserID) == "" {
		return NewValidationError("userId", "is required")
	}
	if strings.TrimSpace(d.Name) == "" {
		return NewValidationError("name", "is required")
	}
	if len(d.Data) == 0 || !json.Valid(d.Data) {
		return NewValidationError("designData", "must be a JSON document")
	}
	return nil
}

// DesignUpdate holds the fields of a partial design update; nil fields are left untouched.
type DesignUpdate struct {
	Name      *string
	Data      json.RawMessage
	Thumbnail *string
	IsPublic  *bool
}

func (u DesignUpdate) Apply(d Design) Design {
	if u.Name != nil {
		d.Name = *u.Name
	}
	if u.Data != nil {
		d.Data = slices.Clone(u.Data)
	}
	if u.Thumbnail != nil {
		d.Thumbnail = *u.Thumbnail
	}
	if u.IsPublic != nil {
		d.IsPublic = *u.IsPublic
	}
	return d
}
