package queries

import (
	"context"
)

// TournamentQuery is the read-only port for tournament projections
type TournamentQuery interface {
	// GetByID retrieves a single tournament view
	GetByID(ctx context.Context, tournamentID string) (*TournamentView, error)

	// List retrieves tournament views matching the criteria
	List(ctx context.Context, criteria ListCriteria) ([]TournamentView, error)
}

// ListCriteria defines list query parameters
type ListCriteria struct {
	Status string
	Limit  int
	Offset int
}

// TournamentView is a data transfer object for tournaments
type TournamentView struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Format       string      `json:"format"`
	Status       string      `json:"status"`
	Capacity     int         `json:"capacity"`
	EntrantCount int         `json:"entrant_count"`
	Entrants     []string    `json:"entrants,omitempty"`
	WinnerID     string      `json:"winner_id,omitempty"`
	Matches      []MatchView `json:"matches,omitempty"`
	CreatedAt    string      `json:"created_at"`
	UpdatedAt    string      `json:"updated_at"`
}

// MatchView is a data transfer object for matches
type MatchView struct {
	ID           string `json:"id"`
	TournamentID string `json:"tournament_id"`
	Round        int    `json:"round"`
	HomeID       string `json:"home_id"`
	AwayID       string `json:"away_id"`
	WinnerID     string `json:"winner_id,omitempty"`
	Status       string `json:"status"`
}
