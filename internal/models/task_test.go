package models

import (
	"reflect"
	"testing"
	"time"
)

func TestTask_CompletionTimestampInvariant(t *testing.T) {
	t.Parallel()

	task := Task{ID: "1", Title: "test"}
	now := time.Now().UTC()

	task.MarkCompleted(now)
	if !task.Completed || task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
		t.Errorf("Expected completed with timestamp, got %+v", task)
	}
	if !task.UpdatedAt.Equal(now) {
		t.Error("Expected MarkCompleted to refresh UpdatedAt")
	}

	later := now.Add(time.Minute)
	task.MarkPending(later)
	if task.Completed || task.CompletedAt != nil {
		t.Errorf("Expected pending with cleared timestamp, got %+v", task)
	}
	if !task.UpdatedAt.Equal(later) {
		t.Error("Expected MarkPending to refresh UpdatedAt")
	}
}

func TestTask_HasTag(t *testing.T) {
	t.Parallel()

	task := Task{Tags: []string{"Work", "urgent"}}
	if !task.HasTag("work") {
		t.Error("Expected case-insensitive tag match")
	}
	if task.HasTag("home") {
		t.Error("Expected miss for absent tag")
	}
}

func TestNormalizeTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, nil},
		{"dedup case-insensitive", []string{"Work", "work", "home"}, []string{"Work", "home"}},
		{"trims and drops blanks", []string{" a ", "", "  "}, []string{"a"}},
		{"order preserved", []string{"c", "a", "b"}, []string{"c", "a", "b"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeTags(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTags(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTempIDs(t *testing.T) {
	t.Parallel()

	id := NewTempID()
	if !IsTempID(id) {
		t.Errorf("Expected %q to be recognized as temporary", id)
	}
	if IsTempID("c7f9e8d0-1234-5678-9abc-def012345678") {
		t.Error("Expected a bare UUID to not look temporary")
	}
	if id == NewTempID() {
		t.Error("Expected unique temporary ids")
	}
}
