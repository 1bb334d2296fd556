package controllers

import (
	"net/http"
	"strconv"

	"tournament-backend/application/queries"
	"tournament-backend/application/usecase"
	"tournament-backend/pkg/common"
	apperrors "tournament-backend/pkg/errors"
)

// ListTournamentsController handles GET /tournaments
type ListTournamentsController struct {
	uc     *usecase.ListTournaments
	errors *apperrors.ErrorHandler
}

// NewListTournamentsController creates the controller
func NewListTournamentsController(uc *usecase.ListTournaments, errors *apperrors.ErrorHandler) *ListTournamentsController {
	return &ListTournamentsController{
		uc:     uc,
		errors: errors,
	}
}

type listTournamentsResponse struct {
	Tournaments []queries.TournamentView `json:"tournaments"`
	Total       int                      `json:"total"`
}

// Handle processes the request
func (c *ListTournamentsController) Handle(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	output, err := c.uc.Execute(r.Context(), usecase.ListTournamentsInput{
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		c.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, listTournamentsResponse{
		Tournaments: output.Tournaments,
		Total:       output.Total,
	})
}
