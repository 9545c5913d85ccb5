package services

import (
	"sort"
	"time"

	"team-planner-backend/pkg/models"
)

// SortForDisplay orders a day's task list for rendering. Completed tasks
// always sort after incomplete ones; with byPriority set, priority rank
// (highest first) is the secondary key. Both modes are stable, so storage
// order breaks ties.
func SortForDisplay(tasks []models.Task, byPriority bool) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Completed != out[j].Completed {
			return !out[i].Completed
		}
		if byPriority {
			return out[i].Priority.Rank() < out[j].Priority.Rank()
		}
		return false
	})
	return out
}

// TodaySummary derives the "today's tasks" widget data: the user's tasks
// dated the current local calendar day plus a completed/total pair.
func (s *TaskService) TodaySummary(ownerEmail string, now time.Time) (*models.TodaySummary, error) {
	today := now.Format(DateLayout)
	tasks, err := s.ListForDate(ownerEmail, today)
	if err != nil {
		return nil, err
	}

	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}

	return &models.TodaySummary{
		Tasks:     tasks,
		Completed: completed,
		Total:     len(tasks),
	}, nil
}
