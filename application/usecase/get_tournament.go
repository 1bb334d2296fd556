package usecase

import (
	"context"

	"tournament-backend/application/queries"
	pkgerrors "tournament-backend/pkg/errors"
)

// GetTournamentInput identifies the tournament to fetch
type GetTournamentInput struct {
	TournamentID string
}

// GetTournament reads a single tournament projection
type GetTournament struct {
	query queries.TournamentQuery
}

// NewGetTournament wires the use case with its dependency
func NewGetTournament(query queries.TournamentQuery) *GetTournament {
	return &GetTournament{query: query}
}

// Execute runs the use case
func (uc *GetTournament) Execute(ctx context.Context, input GetTournamentInput) (*queries.TournamentView, error) {
	if input.TournamentID == "" {
		return nil, pkgerrors.NewValidationError("tournament ID is required")
	}
	return uc.query.GetByID(ctx, input.TournamentID)
}
