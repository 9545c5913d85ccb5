package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-planner-backend/pkg/models"
)

func TestScheduleWorkbook(t *testing.T) {
	dates := []string{"2026-03-10", "2026-03-11"}
	buckets := map[string][]models.MemberDayTasks{
		"2026-03-10": {
			{
				Email: "alice@example.com",
				Name:  "alice",
				Tasks: []models.Task{
					{Title: "Standup", Category: models.CategoryWork, Priority: models.PriorityHigh, Time: "09:30"},
					{Title: "Lunch", Category: models.CategorySocial, Priority: models.PriorityLow, Time: "12:00"},
				},
			},
		},
		"2026-03-11": {
			{
				Email: "bob@example.com",
				Name:  "bob",
				Tasks: []models.Task{
					{Title: "Review", Category: models.CategoryWork, Priority: models.PriorityMedium, Time: "14:00"},
				},
			},
		},
	}

	f, err := ScheduleWorkbook(dates, buckets)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(scheduleSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4, "header plus one row per task")

	assert.Equal(t, scheduleHeader, rows[0])
	assert.Equal(t, []string{"2026-03-10", "alice@example.com", "09:30", "Standup", "work", "high"}, rows[1])
	assert.Equal(t, []string{"2026-03-10", "alice@example.com", "12:00", "Lunch", "social", "low"}, rows[2])
	assert.Equal(t, []string{"2026-03-11", "bob@example.com", "14:00", "Review", "work", "medium"}, rows[3])
}

func TestScheduleWorkbookEmpty(t *testing.T) {
	f, err := ScheduleWorkbook([]string{"2026-03-10"}, map[string][]models.MemberDayTasks{})
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(scheduleSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}
