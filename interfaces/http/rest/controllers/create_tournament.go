// Package controllers contains the HTTP adapters for the tournament API.
// Each controller owns exactly one use case; wiring happens in the builder
// table in module.go, never inside a controller.
package controllers

import (
	"encoding/json"
	"net/http"

	"tournament-backend/application/usecase"
	"tournament-backend/pkg/common"
	apperrors "tournament-backend/pkg/errors"
	"tournament-backend/pkg/utils"
)

// CreateTournamentController handles POST /tournaments
type CreateTournamentController struct {
	uc     *usecase.CreateTournament
	errors *apperrors.ErrorHandler
}

// NewCreateTournamentController creates the controller
func NewCreateTournamentController(uc *usecase.CreateTournament, errors *apperrors.ErrorHandler) *CreateTournamentController {
	return &CreateTournamentController{
		uc:     uc,
		errors: errors,
	}
}

type createTournamentRequest struct {
	Name     string `json:"name" validate:"required,max=128"`
	Format   string `json:"format" validate:"required,oneof=single_elimination round_robin"`
	Capacity int    `json:"capacity" validate:"required,min=2"`
}

type createTournamentResponse struct {
	TournamentID string `json:"tournament_id"`
	Status       string `json:"status"`
}

// Handle processes the request
func (c *CreateTournamentController) Handle(w http.ResponseWriter, r *http.Request) {
	var req createTournamentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	output, err := c.uc.Execute(r.Context(), usecase.CreateTournamentInput{
		Name:     req.Name,
		Format:   req.Format,
		Capacity: req.Capacity,
	})
	if err != nil {
		c.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, createTournamentResponse{
		TournamentID: output.TournamentID,
		Status:       output.Status,
	})
}
