package controllers

import (
	"net/http"

	"tournament-backend/application/usecase"
	"tournament-backend/pkg/common"
	apperrors "tournament-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
)

// StartTournamentController handles POST /tournaments/{tournamentID}/start
type StartTournamentController struct {
	uc     *usecase.StartTournament
	errors *apperrors.ErrorHandler
}

// NewStartTournamentController creates the controller
func NewStartTournamentController(uc *usecase.StartTournament, errors *apperrors.ErrorHandler) *StartTournamentController {
	return &StartTournamentController{
		uc:     uc,
		errors: errors,
	}
}

type startTournamentResponse struct {
	TournamentID string   `json:"tournament_id"`
	Status       string   `json:"status"`
	MatchIDs     []string `json:"match_ids"`
}

// Handle processes the request
func (c *StartTournamentController) Handle(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")
	if tournamentID == "" {
		common.RespondError(w, http.StatusBadRequest, "MISSING_PARAM", "Tournament ID is required")
		return
	}

	output, err := c.uc.Execute(r.Context(), usecase.StartTournamentInput{
		TournamentID: tournamentID,
	})
	if err != nil {
		c.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, startTournamentResponse{
		TournamentID: output.TournamentID,
		Status:       output.Status,
		MatchIDs:     output.MatchIDs,
	})
}
