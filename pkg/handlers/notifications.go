package handlers

import (
	"net/http"

	"team-planner-backend/pkg/middleware"
	"team-planner-backend/pkg/services"
	"team-planner-backend/pkg/utils"
)

// NotificationsHandler exposes the per-user reminder inbox.
type NotificationsHandler struct {
	reminders *services.ReminderService
}

func NewNotificationsHandler(reminders *services.ReminderService) *NotificationsHandler {
	return &NotificationsHandler{reminders: reminders}
}

// GET /api/notifications
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}

	utils.WriteSuccessResponse(w, h.reminders.Notifications(user.Email))
}

// POST /api/notifications/clear
func (h *NotificationsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}

	h.reminders.ClearAll(user.Email)
	utils.WriteSuccessResponse(w, map[string]interface{}{"cleared": true})
}
