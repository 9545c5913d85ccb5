package handlers

import (
	"errors"
	"net/http"

	"team-planner-backend/pkg/services"
	"team-planner-backend/pkg/utils"
)

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Everything in the taxonomy is a user-facing message; anything else is an
// internal error.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		utils.WriteValidationErrorResponse(w, ve.Error())
	case errors.Is(err, services.ErrDuplicateEmail):
		utils.WriteConflictResponse(w, err.Error())
	case errors.Is(err, services.ErrDuplicateInviteCode):
		utils.WriteConflictResponse(w, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.WriteUnauthorizedResponse(w, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.WriteNotFoundResponse(w, err.Error())
	default:
		utils.WriteInternalServerErrorResponse(w, err.Error())
	}
}
