package usecase

import (
	"context"

	"tournament-backend/application/queries"
)

const defaultListLimit = 50

// ListTournamentsInput carries list filter parameters
type ListTournamentsInput struct {
	Status string
	Limit  int
	Offset int
}

// ListTournamentsOutput is the result of listing tournaments
type ListTournamentsOutput struct {
	Tournaments []queries.TournamentView
	Total       int
}

// ListTournaments reads tournament projections matching a filter
type ListTournaments struct {
	query queries.TournamentQuery
}

// NewListTournaments wires the use case with its dependency
func NewListTournaments(query queries.TournamentQuery) *ListTournaments {
	return &ListTournaments{query: query}
}

// Execute runs the use case
func (uc *ListTournaments) Execute(ctx context.Context, input ListTournamentsInput) (*ListTournamentsOutput, error) {
	limit := input.Limit
	if limit <= 0 || limit > 200 {
		limit = defaultListLimit
	}

	views, err := uc.query.List(ctx, queries.ListCriteria{
		Status: input.Status,
		Limit:  limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, err
	}

	return &ListTournamentsOutput{
		Tournaments: views,
		Total:       len(views),
	}, nil
}
