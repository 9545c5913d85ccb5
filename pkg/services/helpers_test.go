package services

import (
	"testing"

	"github.com/rs/zerolog"

	"team-planner-backend/pkg/database"
	"team-planner-backend/pkg/events"
)

func newTestStore(t *testing.T) *database.Store {
	t.Helper()
	store := database.NewStore(database.NewLocalStore(t.TempDir(), zerolog.Nop()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTestTasks(t *testing.T, store *database.Store, legacyOwnerless bool) *TaskService {
	t.Helper()
	return NewTaskService(store, events.NewBus(), legacyOwnerless, zerolog.Nop())
}

// fakePresence reports fixed per-member presence in tests.
type fakePresence map[string]bool

func (p fakePresence) IsOnline(email string) bool { return p[email] }
