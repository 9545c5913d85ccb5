package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"team-planner-backend/pkg/database"
	"team-planner-backend/pkg/models"
)

const (
	// maxNotifications caps each owner's inbox, most-recent-first.
	maxNotifications = 10

	// reminderLead is how far ahead of a task's calendar day the reminder
	// fires: one hour before local midnight of the task date.
	reminderLead = time.Hour

	// reminderWindow is the width of the due window. A scan emits the
	// reminder only when it lands within [reminderTime, reminderTime+60s];
	// a window missed entirely (poller down, clock jump) stays missed.
	reminderWindow = time.Minute
)

// ReminderService scans pending tasks on a fixed interval and emits one-shot
// notifications into per-owner in-memory inboxes.
type ReminderService struct {
	store *database.Store
	tasks *TaskService
	log   zerolog.Logger

	// scanMu serializes whole scans: the cron tick and the bus-triggered
	// scan run on different goroutines, and two interleaved snapshots would
	// each emit for the same not-yet-flagged tasks.
	scanMu sync.Mutex

	mu      sync.Mutex
	inboxes map[string]*inbox
}

type inbox struct {
	notifications []models.Notification
	unread        int
}

func NewReminderService(store *database.Store, tasks *TaskService, log zerolog.Logger) *ReminderService {
	return &ReminderService{
		store:   store,
		tasks:   tasks,
		log:     log.With().Str("service", "reminders").Logger(),
		inboxes: make(map[string]*inbox),
	}
}

// Scan walks all incomplete tasks whose reminder has not been shown yet and
// emits a notification for each one whose due window contains now. Scans
// never overlap, and the reminderShown flag is persisted before the
// notification is pushed, so emission is idempotent per task. Returns the
// number of notifications emitted.
func (s *ReminderService) Scan(now time.Time) int {
	s.scanMu.Lock()
	defer s.scanMu.Unlock()

	todos, err := s.store.Todos()
	if err != nil {
		s.log.Error().Err(err).Msg("reminder scan: loading tasks failed")
		return 0
	}

	emitted := 0
	for _, t := range todos {
		if t.Completed || t.ReminderShown {
			continue
		}
		if !s.due(t, now) {
			continue
		}

		owner := t.OwnerEmail
		if owner == "" {
			// Legacy tasks without an owner belong to whoever is signed in.
			if cur, err := s.store.CurrentUser(); err == nil && cur != nil {
				owner = cur.Email
			} else {
				continue
			}
		}

		// Persist the flag first: an unflagged task re-enters the next
		// scan, a pushed notification cannot be taken back.
		if err := s.tasks.MarkReminderShown(t.ID); err != nil {
			s.log.Error().Err(err).Str("task", t.ID).Msg("persisting reminder flag failed")
			continue
		}

		s.push(owner, models.Notification{
			ID:        uuid.New().String(),
			TaskID:    t.ID,
			Type:      "reminder",
			Title:     t.Title,
			Category:  t.Category,
			Message:   fmt.Sprintf("Reminder: %s is coming up in about 1 hour!", t.Title),
			Timestamp: now,
		})
		emitted++
	}

	if emitted > 0 {
		s.log.Info().Int("count", emitted).Msg("reminders emitted")
	}
	return emitted
}

// due reports whether now lands inside the task's reminder window.
func (s *ReminderService) due(t models.Task, now time.Time) bool {
	day, err := time.ParseInLocation(DateLayout, t.Date, now.Location())
	if err != nil {
		return false
	}

	reminderTime := day.Add(-reminderLead)
	diff := reminderTime.Sub(now)
	return diff >= -reminderWindow && diff <= 0
}

func (s *ReminderService) push(owner string, n models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	box := s.inboxes[owner]
	if box == nil {
		box = &inbox{}
		s.inboxes[owner] = box
	}

	box.notifications = append([]models.Notification{n}, box.notifications...)
	if len(box.notifications) > maxNotifications {
		box.notifications = box.notifications[:maxNotifications]
	}
	box.unread++
}

// Notifications returns the owner's inbox, most recent first, plus the
// unread counter.
func (s *ReminderService) Notifications(owner string) models.NotificationList {
	s.mu.Lock()
	defer s.mu.Unlock()

	box := s.inboxes[owner]
	if box == nil {
		return models.NotificationList{Notifications: []models.Notification{}}
	}

	out := make([]models.Notification, len(box.notifications))
	copy(out, box.notifications)
	return models.NotificationList{Notifications: out, Unread: box.unread}
}

// ClearAll empties the owner's inbox and zeroes the unread counter. The
// reminderShown flags on tasks are untouched, so cleared reminders never
// re-fire.
func (s *ReminderService) ClearAll(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inboxes, owner)
}
