package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-planner-backend/pkg/models"
)

func TestCreateTaskValidation(t *testing.T) {
	svc := newTestTasks(t, newTestStore(t), false)

	valid := models.CreateTaskRequest{
		Title:    "Write report",
		Category: models.CategoryWork,
		Priority: models.PriorityHigh,
		Date:     "2026-03-10",
	}

	cases := []struct {
		name   string
		mutate func(*models.CreateTaskRequest)
	}{
		{"empty title", func(r *models.CreateTaskRequest) { r.Title = "   " }},
		{"unknown category", func(r *models.CreateTaskRequest) { r.Category = "chores" }},
		{"unknown priority", func(r *models.CreateTaskRequest) { r.Priority = "urgent" }},
		{"bad date", func(r *models.CreateTaskRequest) { r.Date = "10/03/2026" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			_, err := svc.Create("alice@example.com", req)
			assert.True(t, IsValidation(err), "expected validation error, got %v", err)
		})
	}

	task, err := svc.Create("alice@example.com", valid)
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "alice@example.com", task.OwnerEmail)
	assert.False(t, task.Completed)
	assert.False(t, task.ReminderShown)
}

func TestListForUserScoping(t *testing.T) {
	store := newTestStore(t)
	svc := newTestTasks(t, store, true)

	_, err := svc.Create("alice@example.com", models.CreateTaskRequest{
		Title: "Alice task", Category: models.CategoryWork, Priority: models.PriorityHigh, Date: "2026-03-10",
	})
	require.NoError(t, err)
	_, err = svc.Create("bob@example.com", models.CreateTaskRequest{
		Title: "Bob task", Category: models.CategoryWork, Priority: models.PriorityHigh, Date: "2026-03-10",
	})
	require.NoError(t, err)

	// A task written before tasks carried an owner.
	_, err = store.UpdateTodos(func(todos []models.Task) ([]models.Task, error) {
		return append(todos, models.Task{ID: "legacy-1", Title: "Legacy", Category: models.CategoryWork, Priority: models.PriorityLow, Date: "2026-03-10"}), nil
	})
	require.NoError(t, err)

	tasks, err := svc.ListForUser("alice@example.com")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Alice task", tasks[0].Title)
	assert.Equal(t, "Legacy", tasks[1].Title)

	// With the shim off, ownerless tasks disappear.
	strict := newTestTasks(t, store, false)
	tasks, err = strict.ListForUser("alice@example.com")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Alice task", tasks[0].Title)
}

func TestToggleCompleted(t *testing.T) {
	svc := newTestTasks(t, newTestStore(t), false)

	task, err := svc.Create("alice@example.com", models.CreateTaskRequest{
		Title: "Toggle me", Category: models.CategoryWork, Priority: models.PriorityMedium, Date: "2026-03-10",
	})
	require.NoError(t, err)

	toggled, err := svc.ToggleCompleted(task.ID)
	require.NoError(t, err)
	require.NotNil(t, toggled)
	assert.True(t, toggled.Completed)

	toggled, err = svc.ToggleCompleted(task.ID)
	require.NoError(t, err)
	require.NotNil(t, toggled)
	assert.False(t, toggled.Completed, "toggle is its own inverse")

	missing, err := svc.ToggleCompleted("no-such-id")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDeleteIsNoopForMissingID(t *testing.T) {
	svc := newTestTasks(t, newTestStore(t), false)

	task, err := svc.Create("alice@example.com", models.CreateTaskRequest{
		Title: "Delete me", Category: models.CategoryWork, Priority: models.PriorityMedium, Date: "2026-03-10",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(task.ID))
	require.NoError(t, svc.Delete(task.ID))

	tasks, err := svc.ListForUser("alice@example.com")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestListForDate(t *testing.T) {
	svc := newTestTasks(t, newTestStore(t), false)

	for _, date := range []string{"2026-03-10", "2026-03-10", "2026-03-11"} {
		_, err := svc.Create("alice@example.com", models.CreateTaskRequest{
			Title: "Task " + date, Category: models.CategoryWork, Priority: models.PriorityMedium, Date: date,
		})
		require.NoError(t, err)
	}

	tasks, err := svc.ListForDate("alice@example.com", "2026-03-10")
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	tasks, err = svc.ListForDate("alice@example.com", "2026-03-12")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestSortForDisplay(t *testing.T) {
	tasks := []models.Task{
		{ID: "a", Completed: true, Priority: models.PriorityHighest},
		{ID: "b", Priority: models.PriorityLow},
		{ID: "c", Priority: models.PriorityHighest},
		{ID: "d", Priority: models.PriorityLow},
		{ID: "e", Completed: true, Priority: models.PriorityLowest},
	}

	ids := func(ts []models.Task) []string {
		out := make([]string, len(ts))
		for i, t := range ts {
			out[i] = t.ID
		}
		return out
	}

	// Date order: completed sink, storage order otherwise.
	got := SortForDisplay(tasks, false)
	assert.Equal(t, []string{"b", "c", "d", "a", "e"}, ids(got))

	// Priority order: highest first within each completion group, stable ties.
	got = SortForDisplay(tasks, true)
	assert.Equal(t, []string{"c", "b", "d", "a", "e"}, ids(got))

	// Input order untouched.
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(tasks))
}

func TestSortForDisplayUnknownPriorityLast(t *testing.T) {
	tasks := []models.Task{
		{ID: "weird", Priority: "???"},
		{ID: "low", Priority: models.PriorityLowest},
	}
	got := SortForDisplay(tasks, true)
	assert.Equal(t, "low", got[0].ID)
	assert.Equal(t, "weird", got[1].ID)
}

func TestTodaySummary(t *testing.T) {
	svc := newTestTasks(t, newTestStore(t), false)

	now := time.Now()
	today := now.Format(DateLayout)
	tomorrow := now.AddDate(0, 0, 1).Format(DateLayout)

	t1, err := svc.Create("alice@example.com", models.CreateTaskRequest{
		Title: "Today 1", Category: models.CategoryWork, Priority: models.PriorityHigh, Date: today,
	})
	require.NoError(t, err)
	_, err = svc.Create("alice@example.com", models.CreateTaskRequest{
		Title: "Today 2", Category: models.CategoryFamily, Priority: models.PriorityLow, Date: today,
	})
	require.NoError(t, err)
	_, err = svc.Create("alice@example.com", models.CreateTaskRequest{
		Title: "Tomorrow", Category: models.CategoryWork, Priority: models.PriorityHigh, Date: tomorrow,
	})
	require.NoError(t, err)

	_, err = svc.ToggleCompleted(t1.ID)
	require.NoError(t, err)

	summary, err := svc.TodaySummary("alice@example.com", now)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Completed)
	assert.Len(t, summary.Tasks, 2)
}
