package services

import (
	"sort"
	"time"

	"team-planner-backend/pkg/models"
)

// ViewMode selects the date range of a team schedule view.
type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// ParseViewMode validates a view-mode string, defaulting to week.
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case ViewDay, ViewWeek, ViewMonth:
		return ViewMode(s), nil
	case "":
		return ViewWeek, nil
	}
	return "", validationErr("view", "view must be day, week or month")
}

// ScheduleService merges multiple members' shareable tasks into per-day
// buckets for the team calendar.
type ScheduleService struct {
	tasks *TaskService
}

func NewScheduleService(tasks *TaskService) *ScheduleService {
	return &ScheduleService{tasks: tasks}
}

// SharableTasks returns the member's tasks in the shareable categories
// (work and social).
func (s *ScheduleService) SharableTasks(email string) ([]models.Task, error) {
	tasks, err := s.tasks.ListForUser(email)
	if err != nil {
		return nil, err
	}

	var out []models.Task
	for _, t := range tasks {
		if t.Category.Shareable() {
			out = append(out, t)
		}
	}
	return out, nil
}

// DateRange expands a view mode around the selected date. Day is the single
// selected date; week runs from the Sunday on or before it through the
// following Saturday; month covers every calendar day of its month.
func DateRange(mode ViewMode, selected time.Time) []time.Time {
	switch mode {
	case ViewDay:
		return []time.Time{selected}

	case ViewWeek:
		start := selected.AddDate(0, 0, -int(selected.Weekday()))
		dates := make([]time.Time, 0, 7)
		for i := 0; i < 7; i++ {
			dates = append(dates, start.AddDate(0, 0, i))
		}
		return dates

	case ViewMonth:
		first := time.Date(selected.Year(), selected.Month(), 1, 0, 0, 0, 0, selected.Location())
		var dates []time.Time
		for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d)
		}
		return dates
	}
	return nil
}

// BucketByDate builds the per-day schedule for the selected members. Each
// bucket holds, per member with at least one match, the member's
// non-completed shareable tasks dated exactly that day, sorted ascending by
// time of day ("00:00" when a task has no time). An empty member set yields
// empty buckets for every date.
func (s *ScheduleService) BucketByDate(memberEmails []string, dates []time.Time) (map[string][]models.MemberDayTasks, error) {
	buckets := make(map[string][]models.MemberDayTasks, len(dates))
	for _, d := range dates {
		buckets[d.Format(DateLayout)] = nil
	}
	if len(memberEmails) == 0 {
		return buckets, nil
	}

	// Deterministic member order within each bucket.
	members := make([]string, len(memberEmails))
	copy(members, memberEmails)
	sort.Strings(members)

	shareable := make(map[string][]models.Task, len(members))
	for _, email := range members {
		tasks, err := s.SharableTasks(email)
		if err != nil {
			return nil, err
		}
		shareable[email] = tasks
	}

	for _, d := range dates {
		dateStr := d.Format(DateLayout)
		for _, email := range members {
			var dayTasks []models.Task
			for _, t := range shareable[email] {
				if t.Date == dateStr && !t.Completed {
					dayTasks = append(dayTasks, t)
				}
			}
			if len(dayTasks) == 0 {
				continue
			}

			sort.SliceStable(dayTasks, func(i, j int) bool {
				return sortTime(dayTasks[i].Time) < sortTime(dayTasks[j].Time)
			})

			buckets[dateStr] = append(buckets[dateStr], models.MemberDayTasks{
				Email: email,
				Name:  localPart(email),
				Tasks: dayTasks,
			})
		}
	}

	return buckets, nil
}

// sortTime is the ascending time-of-day sort key; tasks without a time sort
// first.
func sortTime(t string) string {
	if t == "" {
		return "00:00"
	}
	return t
}
