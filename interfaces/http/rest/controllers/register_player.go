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

// RegisterPlayerController handles POST /tournaments/{tournamentID}/players
type RegisterPlayerController struct {
	uc     *usecase.RegisterPlayer
	errors *apperrors.ErrorHandler
}

// NewRegisterPlayerController creates the controller
func NewRegisterPlayerController(uc *usecase.RegisterPlayer, errors *apperrors.ErrorHandler) *RegisterPlayerController {
	return &RegisterPlayerController{
		uc:     uc,
		errors: errors,
	}
}

type registerPlayerRequest struct {
	PlayerID    string `json:"player_id" validate:"omitempty,uuid"`
	DisplayName string `json:"display_name" validate:"omitempty,max=64"`
}

type registerPlayerResponse struct {
	TournamentID string `json:"tournament_id"`
	PlayerID     string `json:"player_id"`
	EntrantCount int    `json:"entrant_count"`
}

// Handle processes the request
func (c *RegisterPlayerController) Handle(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")
	if tournamentID == "" {
		common.RespondError(w, http.StatusBadRequest, "MISSING_PARAM", "Tournament ID is required")
		return
	}

	var req registerPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	if req.PlayerID == "" && req.DisplayName == "" {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_FAILED", "Either player_id or display_name is required")
		return
	}

	output, err := c.uc.Execute(r.Context(), usecase.RegisterPlayerInput{
		TournamentID: tournamentID,
		PlayerID:     req.PlayerID,
		DisplayName:  req.DisplayName,
	})
	if err != nil {
		c.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, registerPlayerResponse{
		TournamentID: output.TournamentID,
		PlayerID:     output.PlayerID,
		EntrantCount: output.EntrantCount,
	})
}
