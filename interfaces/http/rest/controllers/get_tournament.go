package controllers

import (
	"net/http"

	"tournament-backend/application/usecase"
	"tournament-backend/pkg/common"
	apperrors "tournament-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
)

// GetTournamentController handles GET /tournaments/{tournamentID}
type GetTournamentController struct {
	uc     *usecase.GetTournament
	errors *apperrors.ErrorHandler
}

// NewGetTournamentController creates the controller
func NewGetTournamentController(uc *usecase.GetTournament, errors *apperrors.ErrorHandler) *GetTournamentController {
	return &GetTournamentController{
		uc:     uc,
		errors: errors,
	}
}

// Handle processes the request
func (c *GetTournamentController) Handle(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")
	if tournamentID == "" {
		common.RespondError(w, http.StatusBadRequest, "MISSING_PARAM", "Tournament ID is required")
		return
	}

	view, err := c.uc.Execute(r.Context(), usecase.GetTournamentInput{
		TournamentID: tournamentID,
	})
	if err != nil {
		c.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, view)
}
