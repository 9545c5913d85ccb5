package services

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-planner-backend/pkg/database"
	"team-planner-backend/pkg/models"
)

func newTestOrgs(t *testing.T, store *database.Store, presence PresenceProvider) (*OrgService, *TaskService) {
	t.Helper()
	tasks := newTestTasks(t, store, false)
	if presence == nil {
		presence = StaticPresence{}
	}
	return NewOrgService(store, tasks, presence, zerolog.Nop()), tasks
}

func TestCreateOrganizationValidation(t *testing.T) {
	svc, _ := newTestOrgs(t, newTestStore(t), nil)

	_, err := svc.Create("  ", "CODE123", "alice@example.com")
	assert.True(t, IsValidation(err))

	_, err = svc.Create("Team", "   ", "alice@example.com")
	assert.True(t, IsValidation(err))

	org, err := svc.Create("Team", "CODE123", "alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, org.ID)
	assert.Equal(t, []string{"alice@example.com"}, org.Members)
	assert.Equal(t, "alice@example.com", org.CreatedBy)
}

func TestCreateOrganizationDuplicateInviteCode(t *testing.T) {
	svc, _ := newTestOrgs(t, newTestStore(t), nil)

	_, err := svc.Create("Team A", "SHARED1", "alice@example.com")
	require.NoError(t, err)

	_, err = svc.Create("Team B", "SHARED1", "bob@example.com")
	assert.ErrorIs(t, err, ErrDuplicateInviteCode)
}

func TestJoinByInviteCode(t *testing.T) {
	svc, _ := newTestOrgs(t, newTestStore(t), nil)

	org, err := svc.Create("Team", "JOINME1", "alice@example.com")
	require.NoError(t, err)

	joined, err := svc.JoinByInviteCode("JOINME1", "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, org.ID, joined.ID)
	assert.Equal(t, []string{"alice@example.com", "bob@example.com"}, joined.Members)

	// Joining again is a no-op, membership stays single.
	joined, err = svc.JoinByInviteCode("JOINME1", "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice@example.com", "bob@example.com"}, joined.Members)

	_, err = svc.JoinByInviteCode("NOCODE1", "bob@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListForUserOrgs(t *testing.T) {
	svc, _ := newTestOrgs(t, newTestStore(t), nil)

	_, err := svc.Create("Alice Team", "ALICE01", "alice@example.com")
	require.NoError(t, err)
	_, err = svc.Create("Bob Team", "BOB0001", "bob@example.com")
	require.NoError(t, err)
	_, err = svc.JoinByInviteCode("BOB0001", "alice@example.com")
	require.NoError(t, err)

	orgs, err := svc.ListForUser("alice@example.com")
	require.NoError(t, err)
	assert.Len(t, orgs, 2)

	orgs, err = svc.ListForUser("carol@example.com")
	require.NoError(t, err)
	assert.Empty(t, orgs)
}

func TestMemberProfiles(t *testing.T) {
	store := newTestStore(t)
	presence := fakePresence{"carol@example.com": true}
	svc, tasks := newTestOrgs(t, store, presence)

	org, err := svc.Create("Team", "TEAM001", "zoe@example.com")
	require.NoError(t, err)
	for _, email := range []string{"bob@example.com", "carol@example.com"} {
		_, err := svc.JoinByInviteCode("TEAM001", email)
		require.NoError(t, err)
	}

	now := time.Now()
	today := now.Format(DateLayout)

	// Two shareable tasks and one private task for bob today.
	for _, cat := range []models.TaskCategory{models.CategoryWork, models.CategorySocial, models.CategoryFamily} {
		_, err := tasks.Create("bob@example.com", models.CreateTaskRequest{
			Title: "Bob " + string(cat), Category: cat, Priority: models.PriorityMedium, Date: today,
		})
		require.NoError(t, err)
	}

	org, err = svc.Get(org.ID)
	require.NoError(t, err)

	profiles, err := svc.MemberProfiles(org, now)
	require.NoError(t, err)
	require.Len(t, profiles, 3)

	// Admin first, then online members, then by name.
	assert.Equal(t, "zoe@example.com", profiles[0].Email)
	assert.True(t, profiles[0].IsAdmin)
	assert.Equal(t, "carol@example.com", profiles[1].Email)
	assert.True(t, profiles[1].IsOnline)
	assert.Equal(t, "bob@example.com", profiles[2].Email)

	assert.Equal(t, "bob", profiles[2].Name)
	assert.Equal(t, 2, profiles[2].TodayPublicEvents, "only shareable categories count")
	assert.Equal(t, 0, profiles[1].TodayPublicEvents)
}

func TestGetOrganization(t *testing.T) {
	svc, _ := newTestOrgs(t, newTestStore(t), nil)

	org, err := svc.Create("Team", "GETME01", "alice@example.com")
	require.NoError(t, err)

	got, err := svc.Get(org.ID)
	require.NoError(t, err)
	assert.Equal(t, org.Name, got.Name)

	_, err = svc.Get("missing-id")
	assert.ErrorIs(t, err, ErrNotFound)
}
