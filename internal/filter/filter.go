// Package filter implements the multi-criteria task filter: the model, the
// predicate evaluator, and persistence of the active filter preference.
package filter

import (
	"net/url"
	"strings"

	"github.com/taskdeck/taskdeck/internal/models"
)

// Status narrows tasks by completion state
type Status string

const (
	StatusAll       Status = "all"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Filter represents the active filter criteria. The zero value means
// "no constraint on any axis".
type Filter struct {
	Status   Status           `json:"status,omitempty"`
	Priority *models.Priority `json:"priority,omitempty"`
	Tags     []string         `json:"tags,omitempty"`
	Search   string           `json:"search,omitempty"`
}

// IsActive reports whether at least one field carries a non-default value
func (f Filter) IsActive() bool {
	if f.Status != "" && f.Status != StatusAll {
		return true
	}
	if f.Priority != nil {
		return true
	}
	if len(f.Tags) > 0 {
		return true
	}
	if strings.TrimSpace(f.Search) != "" {
		return true
	}
	return false
}

// Matches reports whether the task passes every predicate of the filter.
// The predicates are independent and combined with logical AND.
func (f Filter) Matches(task models.Task) bool {
	return f.matchesStatus(task) &&
		f.matchesPriority(task) &&
		f.matchesTags(task) &&
		f.matchesSearch(task)
}

func (f Filter) matchesStatus(task models.Task) bool {
	switch f.Status {
	case StatusPending:
		return !task.Completed
	case StatusCompleted:
		return task.Completed
	default:
		return true
	}
}

func (f Filter) matchesPriority(task models.Task) bool {
	if f.Priority == nil {
		return true
	}
	return task.Priority == *f.Priority
}

func (f Filter) matchesTags(task models.Task) bool {
	if len(f.Tags) == 0 {
		return true
	}
	for _, wanted := range f.Tags {
		if task.HasTag(wanted) {
			return true
		}
	}
	return false
}

func (f Filter) matchesSearch(task models.Task) bool {
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(task.Title), needle) {
		return true
	}
	// An absent memo behaves like an empty string
	if strings.Contains(strings.ToLower(task.Memo), needle) {
		return true
	}
	for _, tag := range task.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Apply returns the tasks matching the filter as a new slice, preserving
// the original relative order. The input is never mutated.
func Apply(tasks []models.Task, f Filter) []models.Task {
	result := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if f.Matches(task) {
			result = append(result, task)
		}
	}
	return result
}

// Query serializes the filter as backend query parameters: status,
// priority, repeated tags, and search.
func (f Filter) Query() url.Values {
	q := url.Values{}
	if f.Status != "" && f.Status != StatusAll {
		q.Set("status", string(f.Status))
	}
	if f.Priority != nil {
		q.Set("priority", string(*f.Priority))
	}
	for _, tag := range f.Tags {
		q.Add("tags", tag)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		q.Set("search", search)
	}
	return q
}
