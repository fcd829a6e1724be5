package filter

import (
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/internal/models"
)

func sampleTask(title string, completed bool, priority models.Priority, tags []string, memo string) models.Task {
	task := models.Task{
		ID:        "task-1",
		Title:     title,
		Completed: completed,
		Priority:  priority,
		Tags:      tags,
		Memo:      memo,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if completed {
		now := time.Now()
		task.CompletedAt = &now
	}
	return task
}

func priorityPtr(p models.Priority) *models.Priority {
	return &p
}

func TestFilter_Matches_EmptyFilterAcceptsEverything(t *testing.T) {
	t.Parallel()

	tasks := []models.Task{
		sampleTask("Complete project", false, models.PriorityHigh, []string{"work"}, ""),
		sampleTask("Buy groceries", true, models.PriorityLow, nil, "milk, eggs"),
		sampleTask("", false, "", nil, ""),
	}

	for _, task := range tasks {
		if !(Filter{}).Matches(task) {
			t.Errorf("Expected empty filter to accept task %q", task.Title)
		}
	}
}

func TestFilter_Matches_Status(t *testing.T) {
	t.Parallel()

	pending := sampleTask("pending task", false, models.PriorityMedium, nil, "")
	completed := sampleTask("completed task", true, models.PriorityMedium, nil, "")

	tests := []struct {
		name   string
		filter Filter
		task   models.Task
		want   bool
	}{
		{"pending filter accepts pending", Filter{Status: StatusPending}, pending, true},
		{"pending filter rejects completed", Filter{Status: StatusPending}, completed, false},
		{"completed filter accepts completed", Filter{Status: StatusCompleted}, completed, true},
		{"completed filter rejects pending", Filter{Status: StatusCompleted}, pending, false},
		{"all accepts pending", Filter{Status: StatusAll}, pending, true},
		{"all accepts completed", Filter{Status: StatusAll}, completed, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.filter.Matches(tt.task); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Matches_Tags(t *testing.T) {
	t.Parallel()

	workTask := sampleTask("one", false, models.PriorityMedium, []string{"work", "urgent"}, "")
	personalTask := sampleTask("two", false, models.PriorityMedium, []string{"personal"}, "")

	f := Filter{Tags: []string{"work"}}
	if !f.Matches(workTask) {
		t.Error("Expected tag filter to accept task carrying the tag")
	}
	if f.Matches(personalTask) {
		t.Error("Expected tag filter to reject task without the tag")
	}

	// Tag comparison is case-insensitive
	upper := Filter{Tags: []string{"WORK"}}
	if !upper.Matches(workTask) {
		t.Error("Expected tag matching to be case-insensitive")
	}
}

func TestFilter_Matches_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		search string
		task   models.Task
		want   bool
	}{
		{"title substring", "proj", sampleTask("Complete project", false, "", nil, ""), true},
		{"title miss", "proj", sampleTask("Buy groceries", false, "", nil, ""), false},
		{"case insensitive", "PROJ", sampleTask("complete project", false, "", nil, ""), true},
		{"memo substring", "eggs", sampleTask("Buy groceries", false, "", nil, "milk and eggs"), true},
		{"tag substring", "urg", sampleTask("one", false, "", []string{"urgent"}, ""), true},
		{"blank search accepts", "   ", sampleTask("anything", false, "", nil, ""), true},
		{"empty memo treated as empty string", "x", sampleTask("abc", false, "", nil, ""), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := Filter{Search: tt.search}
			if got := f.Matches(tt.task); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Matches_Conjunction(t *testing.T) {
	t.Parallel()

	task := sampleTask("Complete project", false, models.PriorityHigh, []string{"work"}, "")

	matching := Filter{
		Status:   StatusPending,
		Priority: priorityPtr(models.PriorityHigh),
		Tags:     []string{"work"},
		Search:   "project",
	}
	if !matching.Matches(task) {
		t.Error("Expected all-predicate filter to accept matching task")
	}

	// One failing predicate rejects the task even if the rest pass
	oneMiss := matching
	oneMiss.Priority = priorityPtr(models.PriorityLow)
	if oneMiss.Matches(task) {
		t.Error("Expected one failing predicate to reject the task")
	}
}

func TestApply_PreservesOrderAndInput(t *testing.T) {
	t.Parallel()

	tasks := []models.Task{
		sampleTask("a", false, models.PriorityHigh, nil, ""),
		sampleTask("b", true, models.PriorityLow, nil, ""),
		sampleTask("c", false, models.PriorityLow, nil, ""),
	}

	result := Apply(tasks, Filter{Status: StatusPending})
	if len(result) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(result))
	}
	if result[0].Title != "a" || result[1].Title != "c" {
		t.Errorf("Expected order preserved, got %q then %q", result[0].Title, result[1].Title)
	}
	if len(tasks) != 3 {
		t.Error("Expected input slice to be unchanged")
	}
}

func TestFilter_IsActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty", Filter{}, false},
		{"status all is default", Filter{Status: StatusAll}, false},
		{"status pending", Filter{Status: StatusPending}, true},
		{"priority", Filter{Priority: priorityPtr(models.PriorityLow)}, true},
		{"tags", Filter{Tags: []string{"work"}}, true},
		{"blank search", Filter{Search: "   "}, false},
		{"search", Filter{Search: "x"}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.filter.IsActive(); got != tt.want {
				t.Errorf("IsActive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Query(t *testing.T) {
	t.Parallel()

	f := Filter{
		Status:   StatusCompleted,
		Priority: priorityPtr(models.PriorityHigh),
		Tags:     []string{"work", "urgent"},
		Search:   " project ",
	}

	q := f.Query()
	if got := q.Get("status"); got != "completed" {
		t.Errorf("Expected status 'completed', got %q", got)
	}
	if got := q.Get("priority"); got != "high" {
		t.Errorf("Expected priority 'high', got %q", got)
	}
	if got := q["tags"]; len(got) != 2 || got[0] != "work" || got[1] != "urgent" {
		t.Errorf("Expected repeated tags parameters, got %v", got)
	}
	if got := q.Get("search"); got != "project" {
		t.Errorf("Expected trimmed search 'project', got %q", got)
	}

	if encoded := (Filter{}).Query().Encode(); encoded != "" {
		t.Errorf("Expected empty filter to encode to empty query, got %q", encoded)
	}
}
