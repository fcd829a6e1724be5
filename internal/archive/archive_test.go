package archive

import (
	"reflect"
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/internal/filter"
	"github.com/taskdeck/taskdeck/internal/models"
)

func completedTask(id string, completedAt time.Time, priority models.Priority, tags ...string) models.Task {
	return models.Task{
		ID:          id,
		Title:       "task " + id,
		Completed:   true,
		Priority:    priority,
		Tags:        tags,
		CompletedAt: &completedAt,
	}
}

func TestGroupByDay(t *testing.T) {
	t.Parallel()

	day1Morning := time.Date(2026, 8, 23, 9, 0, 0, 0, time.UTC)
	day1Evening := time.Date(2026, 8, 23, 21, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	tasks := []models.Task{
		completedTask("a", day1Morning, models.PriorityLow),
		completedTask("b", day2, models.PriorityHigh),
		completedTask("c", day1Evening, models.PriorityMedium),
		{ID: "d", Title: "still pending"},
	}

	groups := GroupByDay(tasks)
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}

	// Newest day first
	if groups[0].Date != "2026-08-24" || groups[0].Count != 1 {
		t.Errorf("Unexpected first group: %+v", groups[0])
	}
	if groups[1].Date != "2026-08-23" || groups[1].Count != 2 {
		t.Errorf("Unexpected second group: %+v", groups[1])
	}

	// Within a day, most recent completion first
	if groups[1].Tasks[0].ID != "c" || groups[1].Tasks[1].ID != "a" {
		t.Errorf("Unexpected in-day order: %+v", groups[1].Tasks)
	}
}

func TestGroupByDay_TruncatesToUTCDay(t *testing.T) {
	t.Parallel()

	zone := time.FixedZone("UTC+9", 9*3600)
	// 23:30 local on Aug 23 is Aug 23 14:30 UTC
	local := time.Date(2026, 8, 23, 23, 30, 0, 0, zone)

	groups := GroupByDay([]models.Task{completedTask("a", local, models.PriorityLow)})
	if len(groups) != 1 || groups[0].Date != "2026-08-23" {
		t.Errorf("Expected UTC day key, got %+v", groups)
	}
}

func TestAvailableTags(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	groups := []models.ArchiveGroup{
		{Date: "2026-08-24", Count: 2, Tasks: []models.Task{
			completedTask("a", now, models.PriorityLow, "Work", "urgent"),
			completedTask("b", now, models.PriorityLow, "home"),
		}},
		{Date: "2026-08-23", Count: 1, Tasks: []models.Task{
			completedTask("c", now, models.PriorityLow, "work", "errands"),
		}},
	}

	tags := AvailableTags(groups)
	want := []string{"Work", "errands", "home", "urgent"}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("AvailableTags = %v, want %v", tags, want)
	}
}

func TestFilteredGroups_RecomputesCountsAndDropsEmpty(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	groups := []models.ArchiveGroup{
		{Date: "2026-08-24", Count: 2, Tasks: []models.Task{
			completedTask("a", now, models.PriorityHigh),
			completedTask("b", now, models.PriorityLow),
		}},
		{Date: "2026-08-23", Count: 1, Tasks: []models.Task{
			completedTask("c", now, models.PriorityLow),
		}},
	}

	priority := models.PriorityHigh
	filtered := FilteredGroups(groups, filter.Filter{Priority: &priority})

	if len(filtered) != 1 {
		t.Fatalf("Expected the empty group dropped, got %d groups", len(filtered))
	}
	if filtered[0].Date != "2026-08-24" || filtered[0].Count != 1 {
		t.Errorf("Expected recomputed count 1, got %+v", filtered[0])
	}

	// Input groups are untouched
	if groups[0].Count != 2 || len(groups[0].Tasks) != 2 {
		t.Error("Expected input groups unchanged")
	}
}

func TestFilteredGroups_InactiveFilterIsIdentity(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	groups := []models.ArchiveGroup{
		{Date: "2026-08-24", Count: 1, Tasks: []models.Task{completedTask("a", now, models.PriorityLow)}},
	}

	filtered := FilteredGroups(groups, filter.Filter{})
	if len(filtered) != 1 || &filtered[0] != &groups[0] {
		// Identity return is permitted and expected for the inactive filter
		if !reflect.DeepEqual(filtered, groups) {
			t.Errorf("Expected groups unchanged, got %+v", filtered)
		}
	}
}

func TestComputeTotals_SumMatchesIndividualMatches(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	groups := []models.ArchiveGroup{
		{Date: "2026-08-24", Count: 2, Tasks: []models.Task{
			completedTask("a", now, models.PriorityHigh, "work"),
			completedTask("b", now, models.PriorityLow, "home"),
		}},
		{Date: "2026-08-23", Count: 2, Tasks: []models.Task{
			completedTask("c", now, models.PriorityHigh, "work"),
			completedTask("d", now, models.PriorityMedium),
		}},
	}

	f := filter.Filter{Tags: []string{"work"}}
	filtered := FilteredGroups(groups, f)
	totals := ComputeTotals(groups, filtered)

	individual := 0
	for _, group := range groups {
		for _, task := range group.Tasks {
			if f.Matches(task) {
				individual++
			}
		}
	}

	if totals.FilteredTotal != individual {
		t.Errorf("FilteredTotal = %d, want %d", totals.FilteredTotal, individual)
	}
	if totals.Total != 4 {
		t.Errorf("Total = %d, want 4", totals.Total)
	}
	if !totals.IsFiltering() {
		t.Error("Expected IsFiltering true when counts differ")
	}

	unfiltered := ComputeTotals(groups, groups)
	if unfiltered.IsFiltering() {
		t.Error("Expected IsFiltering false when counts match")
	}
}
