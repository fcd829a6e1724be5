package models

import (
	"strings"
	"time"
)

// Priority represents how urgent a task is
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

const (
	// MaxTitleLength is the maximum length for a task title
	MaxTitleLength = 200
	// MaxTagLength is the maximum length for a single tag
	MaxTagLength = 50
)

// Task represents a single trackable to-do item
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	Tags        []string   `json:"tags"`
	Memo        string     `json:"memo,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// TaskInput represents the fields accepted when creating a task
type TaskInput struct {
	Title    string   `json:"title" validate:"required,min=1,max=200"`
	Priority Priority `json:"priority,omitempty" validate:"omitempty,priority"`
	Tags     []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=50"`
	Memo     string   `json:"memo,omitempty"`
}

// TaskPatch represents a partial update; nil fields are left unchanged
type TaskPatch struct {
	Title    *string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Priority *Priority `json:"priority,omitempty" validate:"omitempty,priority"`
	Tags     []string  `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=50"`
	Memo     *string   `json:"memo,omitempty"`
}

// MarkCompleted sets the completion flag and timestamp together.
// CompletedAt is non-nil exactly when Completed is true.
func (t *Task) MarkCompleted(at time.Time) {
	t.Completed = true
	t.CompletedAt = &at
	t.UpdatedAt = at
}

// MarkPending clears the completion flag and timestamp together
func (t *Task) MarkPending(at time.Time) {
	t.Completed = false
	t.CompletedAt = nil
	t.UpdatedAt = at
}

// HasTag reports whether the task carries the tag, comparing case-insensitively
func (t *Task) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if strings.EqualFold(existing, tag) {
			return true
		}
	}
	return false
}

// NormalizeTags deduplicates tags case-insensitively, preserving the first
// occurrence's casing and the original relative order.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, tag)
	}
	return result
}
