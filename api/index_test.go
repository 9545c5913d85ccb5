package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"team-planner-backend/pkg/config"
	"team-planner-backend/pkg/database"
	"team-planner-backend/pkg/events"
	"team-planner-backend/pkg/logger"
	"team-planner-backend/pkg/models"
	"team-planner-backend/pkg/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		Environment:      "development",
		Port:             "0",
		StoreDriver:      "local",
		JWTSecret:        "test-secret",
		AllowedOrigins:   []string{"*"},
		ReminderInterval: time.Minute,
	}
	log := logger.New(cfg)

	store := database.NewStore(database.NewLocalStore(t.TempDir(), log))
	t.Cleanup(func() { _ = store.Close() })

	bus := events.NewBus()
	identity := services.NewIdentityService(store, log)
	tasks := services.NewTaskService(store, bus, false, log)
	reminders := services.NewReminderService(store, tasks, log)
	orgs := services.NewOrgService(store, tasks, services.StaticPresence{}, log)
	schedule := services.NewScheduleService(tasks)

	router := NewRouter(cfg, log, Deps{
		Identity:  identity,
		Tasks:     tasks,
		Orgs:      orgs,
		Schedule:  schedule,
		Reminders: reminders,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, data interface{}) {
	t.Helper()
	defer resp.Body.Close()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.True(t, envelope.Success)
	require.NoError(t, json.Unmarshal(envelope.Data, data))
}

func register(t *testing.T, srv *httptest.Server, name, email string) models.LoginResponse {
	t.Helper()

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/auth/register", "", models.RegisterRequest{
		Name: name, Email: email, Password: "secret1", ConfirmPassword: "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var session models.LoginResponse
	decodeData(t, resp, &session)
	return session
}

func TestRegisterLoginFlow(t *testing.T) {
	srv := newTestServer(t)

	session := register(t, srv, "Alice", "alice@example.com")
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Equal(t, "alice@example.com", session.User.Email)
	assert.Empty(t, session.User.Password, "hash never leaves the server")

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", models.LoginRequest{
		Email: "alice@example.com", Password: "secret1",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "", models.LoginRequest{
		Email: "alice@example.com", Password: "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestTaskEndpoints(t *testing.T) {
	srv := newTestServer(t)
	session := register(t, srv, "Alice", "alice@example.com")
	token := session.AccessToken

	// No token, no tasks.
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/tasks", token, models.CreateTaskRequest{
		Title: "Write report", Category: models.CategoryWork, Priority: models.PriorityHigh, Date: "2026-03-10",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Task models.Task `json:"task"`
	}
	decodeData(t, resp, &created)
	assert.NotEmpty(t, created.Task.ID)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/tasks", token, models.CreateTaskRequest{
		Title: "", Category: models.CategoryWork, Priority: models.PriorityHigh, Date: "2026-03-10",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/tasks?date=2026-03-10&sort=priority", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed struct {
		Tasks []models.Task `json:"tasks"`
	}
	decodeData(t, resp, &listed)
	require.Len(t, listed.Tasks, 1)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/tasks/"+created.Task.ID+"/toggle", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var toggled struct {
		Task models.Task `json:"task"`
	}
	decodeData(t, resp, &toggled)
	assert.True(t, toggled.Task.Completed)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/tasks/"+created.Task.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestOrgAndScheduleEndpoints(t *testing.T) {
	srv := newTestServer(t)
	alice := register(t, srv, "Alice", "alice@example.com")
	bob := register(t, srv, "Bob", "bob@example.com")

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/orgs", alice.AccessToken, models.CreateOrganizationRequest{
		Name: "Team", GenerateCode: true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Organization models.Organization `json:"organization"`
	}
	decodeData(t, resp, &created)
	require.NotEmpty(t, created.Organization.InviteCode)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/orgs/join", bob.AccessToken, models.JoinOrganizationRequest{
		InviteCode: created.Organization.InviteCode,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var joined struct {
		Organization models.Organization `json:"organization"`
	}
	decodeData(t, resp, &joined)
	assert.Len(t, joined.Organization.Members, 2)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/orgs/members?org_id="+created.Organization.ID, alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var members struct {
		Members []models.MemberProfile `json:"members"`
	}
	decodeData(t, resp, &members)
	require.Len(t, members.Members, 2)
	assert.True(t, members.Members[0].IsAdmin)

	// A shareable task for bob shows up in the team week view.
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/tasks", bob.AccessToken, models.CreateTaskRequest{
		Title: "Standup", Category: models.CategoryWork, Priority: models.PriorityHigh, Date: "2026-03-11", Time: "09:30",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/schedule?view=week&date=2026-03-11&org_id="+created.Organization.ID, alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var schedule models.ScheduleResponse
	decodeData(t, resp, &schedule)
	assert.Equal(t, "week", schedule.View)
	require.Len(t, schedule.Dates, 7)
	assert.Equal(t, "2026-03-08", schedule.Dates[0])

	day := schedule.Buckets["2026-03-11"]
	require.Len(t, day, 1)
	assert.Equal(t, "bob@example.com", day[0].Email)
	require.Len(t, day[0].Tasks, 1)
	assert.Equal(t, "Standup", day[0].Tasks[0].Title)
}

func TestScheduleExportEndpoint(t *testing.T) {
	srv := newTestServer(t)
	session := register(t, srv, "Alice", "alice@example.com")

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/schedule/export?view=day&date=2026-03-11&members=alice@example.com", session.AccessToken, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "schedule-day-2026-03-11.xlsx")
}

func TestNotificationEndpoints(t *testing.T) {
	srv := newTestServer(t)
	session := register(t, srv, "Alice", "alice@example.com")

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/notifications", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list models.NotificationList
	decodeData(t, resp, &list)
	assert.Empty(t, list.Notifications)
	assert.Zero(t, list.Unread)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/notifications/clear", session.AccessToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestNotFoundRoute(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
