package handlers

import (
	"net/http"
	"strings"
	"time"

	"team-planner-backend/pkg/middleware"
	"team-planner-backend/pkg/models"
	"team-planner-backend/pkg/services"
	"team-planner-backend/pkg/utils"
)

// OrgsHandler serves organization management and the member roster view.
type OrgsHandler struct {
	orgs *services.OrgService
}

func NewOrgsHandler(orgs *services.OrgService) *OrgsHandler {
	return &OrgsHandler{orgs: orgs}
}

// GET /api/orgs
func (h *OrgsHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}

	orgs, err := h.orgs.ListForUser(user.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if orgs == nil {
		orgs = []models.Organization{}
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"organizations": orgs})
}

// POST /api/orgs
func (h *OrgsHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}

	var req models.CreateOrganizationRequest
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid request body")
		return
	}

	inviteCode := strings.TrimSpace(req.InviteCode)
	if req.GenerateCode || inviteCode == "" {
		inviteCode, err = utils.NewInviteCode(8)
		if err != nil {
			utils.WriteInternalServerErrorResponse(w, "Failed to generate invite code")
			return
		}
	}

	org, err := h.orgs.Create(req.Name, inviteCode, user.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteCreatedResponse(w, map[string]interface{}{"organization": org})
}

// POST /api/orgs/join
func (h *OrgsHandler) Join(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}

	var req models.JoinOrganizationRequest
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.InviteCode) == "" {
		utils.WriteBadRequestResponse(w, "invite_code is required")
		return
	}

	org, err := h.orgs.JoinByInviteCode(strings.TrimSpace(req.InviteCode), user.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"organization": org})
}

// GET /api/orgs/members?org_id=...
func (h *OrgsHandler) Members(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.RequireUser(r.Context()); err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}

	orgID := r.URL.Query().Get("org_id")
	if orgID == "" {
		utils.WriteBadRequestResponse(w, "org_id is required")
		return
	}

	org, err := h.orgs.Get(orgID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	profiles, err := h.orgs.MemberProfiles(org, time.Now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"members": profiles})
}
