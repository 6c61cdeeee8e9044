package task

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrNotFound covers both "no such task" and "task owned by someone else";
// callers must not be able to tell the two apart.
var ErrNotFound = errors.New("task not found")

type Task struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// a full update payload; partial patches are not supported.
type UpdateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

const (
	minTitleLen       = 3
	minDescriptionLen = 5
)

type FieldViolation struct {
	Field   string
	Rule    string
	Param   string
	Message string
}

// ValidateContent checks the trimmed title/description lengths. Binding tags
// only cover presence; the length rules apply after trimming, so they live
// here rather than in struct tags. Lengths count runes, not bytes, so a
// two-character CJK title is still too short.
func ValidateContent(title, description string) *FieldViolation {
	if utf8.RuneCountInString(strings.TrimSpace(title)) < minTitleLen {
		return &FieldViolation{
			Field:   "title",
			Rule:    "min",
			Param:   "3",
			Message: "must be at least 3 characters",
		}
	}

	if utf8.RuneCountInString(strings.TrimSpace(description)) < minDescriptionLen {
		return &FieldViolation{
			Field:   "description",
			Rule:    "min",
			Param:   "5",
			Message: "must be at least 5 characters",
		}
	}

	return nil
}

func (r *CreateTaskRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
}

func (r *UpdateTaskRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
}
