package controllers

import (
	"encoding/json"
	"net/http"

	"tournament-backend/application/usecase"
	"tournament-backend/pkg/common"
	apperrors "tournament-backend/pkg/errors"
	"tournament-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// ReportMatchResultController handles POST /matches/{matchID}/result
type ReportMatchResultController struct {
	uc     *usecase.ReportMatchResult
	errors *apperrors.ErrorHandler
}

// NewReportMatchResultController creates the controller
func NewReportMatchResultController(uc *usecase.ReportMatchResult, errors *apperrors.ErrorHandler) *ReportMatchResultController {
	return &ReportMatchResultController{
		uc:     uc,
		errors: errors,
	}
}

type reportMatchResultRequest struct {
	WinnerID string `json:"winner_id" validate:"required,uuid"`
}

type reportMatchResultResponse struct {
	MatchID            string `json:"match_id"`
	TournamentID       string `json:"tournament_id"`
	TournamentFinished bool   `json:"tournament_finished"`
	TournamentWinnerID string `json:"tournament_winner_id,omitempty"`
}

// Handle processes the request
func (c *ReportMatchResultController) Handle(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")
	if matchID == "" {
		common.RespondError(w, http.StatusBadRequest, "MISSING_PARAM", "Match ID is required")
		return
	}

	var req reportMatchResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	output, err := c.uc.Execute(r.Context(), usecase.ReportMatchResultInput{
		MatchID:  matchID,
		WinnerID: req.WinnerID,
	})
	if err != nil {
		c.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, reportMatchResultResponse{
		MatchID:            output.MatchID,
		TournamentID:       output.TournamentID,
		TournamentFinished: output.TournamentFinished,
		TournamentWinnerID: output.TournamentWinnerID,
	})
}
