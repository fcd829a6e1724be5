// Package archive derives date-grouped views of completed tasks: grouping,
// available tags, filtered groups, and totals. Everything here is pure
// computation over snapshots; groups are never mutated in place.
package archive

import (
	"sort"
	"strings"

	"github.com/taskdeck/taskdeck/internal/filter"
	"github.com/taskdeck/taskdeck/internal/models"
)

// DateLayout is the grouping key format. Completion timestamps are
// truncated to the UTC calendar day.
const DateLayout = "2006-01-02"

// GroupByDay groups completed tasks by UTC completion day, newest day
// first; within a day, most recent completion first. Tasks without a
// completion timestamp are skipped.
func GroupByDay(tasks []models.Task) []models.ArchiveGroup {
	byDay := make(map[string][]models.Task)
	for _, task := range tasks {
		if !task.Completed || task.CompletedAt == nil {
			continue
		}
		day := task.CompletedAt.UTC().Format(DateLayout)
		byDay[day] = append(byDay[day], task)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	groups := make([]models.ArchiveGroup, 0, len(days))
	for _, day := range days {
		dayTasks := byDay[day]
		sort.SliceStable(dayTasks, func(i, j int) bool {
			return dayTasks[i].CompletedAt.After(*dayTasks[j].CompletedAt)
		})
		groups = append(groups, models.ArchiveGroup{
			Date:  day,
			Count: len(dayTasks),
			Tasks: dayTasks,
		})
	}
	return groups
}

// AvailableTags returns the union of all tags across all groups,
// deduplicated case-insensitively (first casing wins) and sorted
// lexicographically.
func AvailableTags(groups []models.ArchiveGroup) []string {
	seen := make(map[string]string)
	for _, group := range groups {
		for _, task := range group.Tasks {
			for _, tag := range task.Tags {
				key := strings.ToLower(tag)
				if _, ok := seen[key]; !ok {
					seen[key] = tag
				}
			}
		}
	}

	tags := make([]string, 0, len(seen))
	for _, tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// FilteredGroups applies the filter to each group's tasks, recomputes the
// counts, and drops groups left empty. With no active filter the input is
// returned unchanged.
func FilteredGroups(groups []models.ArchiveGroup, f filter.Filter) []models.ArchiveGroup {
	if !f.IsActive() {
		return groups
	}

	filtered := make([]models.ArchiveGroup, 0, len(groups))
	for _, group := range groups {
		tasks := filter.Apply(group.Tasks, f)
		if len(tasks) == 0 {
			continue
		}
		filtered = append(filtered, models.ArchiveGroup{
			Date:  group.Date,
			Count: len(tasks),
			Tasks: tasks,
		})
	}
	return filtered
}

// Totals summarizes unfiltered and filtered task counts for "X of Y"
// displays.
type Totals struct {
	Total         int `json:"total"`
	FilteredTotal int `json:"filtered_total"`
}

// IsFiltering is true when the filter is hiding at least one task
func (t Totals) IsFiltering() bool {
	return t.FilteredTotal != t.Total
}

// ComputeTotals sums per-group counts for the unfiltered and filtered views
func ComputeTotals(groups, filtered []models.ArchiveGroup) Totals {
	var totals Totals
	for _, group := range groups {
		totals.Total += group.Count
	}
	for _, group := range filtered {
		totals.FilteredTotal += group.Count
	}
	return totals
}
