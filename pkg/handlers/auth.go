package handlers

import (
	"net/http"
	"strings"
	"time"

	"team-planner-backend/pkg/config"
	"team-planner-backend/pkg/middleware"
	"team-planner-backend/pkg/models"
	"team-planner-backend/pkg/services"
	"team-planner-backend/pkg/utils"
)

// AuthHandler serves registration, login, session and profile endpoints.
type AuthHandler struct {
	config   *config.Config
	identity *services.IdentityService
	jwt      *utils.JWTService
}

func NewAuthHandler(cfg *config.Config, identity *services.IdentityService) *AuthHandler {
	return &AuthHandler{
		config:   cfg,
		identity: identity,
		jwt:      utils.NewJWTService(cfg.JWTSecret),
	}
}

// GET /
func (h *AuthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccessResponse(w, map[string]interface{}{
		"status":      "ok",
		"environment": h.config.Environment,
		"time":        time.Now().Format(time.RFC3339),
	})
}

// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid request body")
		return
	}

	user, err := h.identity.Register(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.writeSession(w, http.StatusCreated, user)
}

// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid request body")
		return
	}

	user, err := h.identity.Login(req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.writeSession(w, http.StatusOK, user)
}

// writeSession issues the token pair for user and writes the login payload.
func (h *AuthHandler) writeSession(w http.ResponseWriter, status int, user *models.User) {
	accessToken, refreshToken, expiresIn, err := h.jwt.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		utils.WriteInternalServerErrorResponse(w, "Failed to generate tokens: "+err.Error())
		return
	}

	utils.WriteJSONResponse(w, status, models.LoginResponse{
		User:         user.Public(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	})
}

// POST /api/auth/refresh
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.RefreshToken) == "" {
		utils.WriteBadRequestResponse(w, "refresh_token is required")
		return
	}

	accessToken, expiresIn, err := h.jwt.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Invalid or expired refresh token: "+err.Error())
		return
	}

	utils.WriteSuccessResponse(w, map[string]interface{}{
		"access_token": accessToken,
		"expires_in":   expiresIn,
	})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.identity.Logout(); err != nil {
		utils.WriteInternalServerErrorResponse(w, err.Error())
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"logged_out": true})
}

// GET /api/user/profile
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}

	full, err := h.identity.UserByEmail(user.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"user": full.Public()})
}

// PUT /api/user/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}

	var req models.UpdateProfileRequest
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid request body")
		return
	}

	updated, err := h.identity.UpdateProfile(user.Email, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"user": updated.Public()})
}
