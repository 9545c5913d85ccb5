package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"team-planner-backend/pkg/database"
	"team-planner-backend/pkg/events"
	"team-planner-backend/pkg/models"
)

// DateLayout is the calendar-day format used everywhere: a plain local date
// with no time zone.
const DateLayout = "2006-01-02"

// TaskService is CRUD over the shared task collection, scoped by owner at
// read time. Mutations persist the whole collection and broadcast a
// "tasks changed" signal.
type TaskService struct {
	store *database.Store
	bus   *events.Bus
	log   zerolog.Logger

	// legacyOwnerless keeps tasks with no owner visible to every caller,
	// matching data written before tasks carried an owner email. New tasks
	// always get an owner.
	legacyOwnerless bool
}

func NewTaskService(store *database.Store, bus *events.Bus, legacyOwnerless bool, log zerolog.Logger) *TaskService {
	return &TaskService{
		store:           store,
		bus:             bus,
		legacyOwnerless: legacyOwnerless,
		log:             log.With().Str("service", "tasks").Logger(),
	}
}

// Create validates and stores a new task for ownerEmail.
func (s *TaskService) Create(ownerEmail string, req models.CreateTaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, validationErr("title", "title is required")
	}
	if !models.ValidCategory(req.Category) {
		return nil, validationErr("category", "unknown category")
	}
	if !models.ValidPriority(req.Priority) {
		return nil, validationErr("priority", "unknown priority")
	}
	if _, err := time.ParseInLocation(DateLayout, req.Date, time.Local); err != nil {
		return nil, validationErr("date", "date must be YYYY-MM-DD")
	}

	task := models.Task{
		ID:            uuid.New().String(),
		Title:         title,
		Description:   strings.TrimSpace(req.Description),
		Category:      req.Category,
		Priority:      req.Priority,
		Date:          req.Date,
		Time:          strings.TrimSpace(req.Time),
		Completed:     false,
		ReminderShown: false,
		OwnerEmail:    ownerEmail,
	}

	_, err := s.store.UpdateTodos(func(todos []models.Task) ([]models.Task, error) {
		return append(todos, task), nil
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish()
	s.log.Debug().Str("task", task.ID).Str("owner", ownerEmail).Msg("task created")
	return &task, nil
}

// Delete removes the task with the given id. A missing id is a no-op, not an
// error.
func (s *TaskService) Delete(id string) error {
	removed := false
	_, err := s.store.UpdateTodos(func(todos []models.Task) ([]models.Task, error) {
		kept := todos[:0]
		for _, t := range todos {
			if t.ID == id {
				removed = true
				continue
			}
			kept = append(kept, t)
		}
		return kept, nil
	})
	if err != nil {
		return err
	}

	if removed {
		s.bus.Publish()
	}
	return nil
}

// ToggleCompleted flips the completion flag. Returns the updated task, or
// nil when the id is absent (no-op).
func (s *TaskService) ToggleCompleted(id string) (*models.Task, error) {
	var toggled *models.Task
	_, err := s.store.UpdateTodos(func(todos []models.Task) ([]models.Task, error) {
		for i := range todos {
			if todos[i].ID == id {
				todos[i].Completed = !todos[i].Completed
				t := todos[i]
				toggled = &t
				break
			}
		}
		return todos, nil
	})
	if err != nil {
		return nil, err
	}

	if toggled != nil {
		s.bus.Publish()
	}
	return toggled, nil
}

// MarkReminderShown sets the one-shot reminder flag on a task and persists
// it. Missing ids are a no-op.
func (s *TaskService) MarkReminderShown(id string) error {
	_, err := s.store.UpdateTodos(func(todos []models.Task) ([]models.Task, error) {
		for i := range todos {
			if todos[i].ID == id {
				todos[i].ReminderShown = true
				break
			}
		}
		return todos, nil
	})
	return err
}

// ListForUser returns the tasks owned by ownerEmail. With the legacy shim
// enabled, tasks that carry no owner are included as well.
func (s *TaskService) ListForUser(ownerEmail string) ([]models.Task, error) {
	todos, err := s.store.Todos()
	if err != nil {
		return nil, err
	}

	var out []models.Task
	for _, t := range todos {
		if t.OwnerEmail == ownerEmail || (s.legacyOwnerless && t.OwnerEmail == "") {
			out = append(out, t)
		}
	}
	return out, nil
}

// ListForDate returns the user's tasks for an exact calendar day.
func (s *TaskService) ListForDate(ownerEmail, date string) ([]models.Task, error) {
	tasks, err := s.ListForUser(ownerEmail)
	if err != nil {
		return nil, err
	}

	var out []models.Task
	for _, t := range tasks {
		if t.Date == date {
			out = append(out, t)
		}
	}
	return out, nil
}
