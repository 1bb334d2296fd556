package memory

import (
	"context"
	"sort"
	"time"

	"tournament-backend/application/queries"
	"tournament-backend/domain/core/entities"
	"tournament-backend/domain/core/valueobjects"
	pkgerrors "tournament-backend/pkg/errors"
)

// TournamentQuery is an in-memory implementation of queries.TournamentQuery
// reading directly from the in-memory repositories
type TournamentQuery struct {
	tournaments *TournamentRepository
	matches     *MatchRepository
}

// NewTournamentQuery creates a query adapter over the given repositories
func NewTournamentQuery(tournaments *TournamentRepository, matches *MatchRepository) *TournamentQuery {
	return &TournamentQuery{
		tournaments: tournaments,
		matches:     matches,
	}
}

var _ queries.TournamentQuery = (*TournamentQuery)(nil)

// GetByID retrieves a single tournament view including its matches
func (q *TournamentQuery) GetByID(ctx context.Context, tournamentID string) (*queries.TournamentView, error) {
	id, err := valueobjects.NewTournamentIDFromString(tournamentID)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	tournament, err := q.tournaments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	matches, err := q.matches.GetByTournamentID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := toTournamentView(tournament)
	view.Matches = make([]queries.MatchView, len(matches))
	for i, match := range matches {
		view.Matches[i] = toMatchView(match)
	}
	return &view, nil
}

// List retrieves tournament views matching the criteria, newest first
func (q *TournamentQuery) List(ctx context.Context, criteria queries.ListCriteria) ([]queries.TournamentView, error) {
	all := q.tournaments.All()

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt().After(all[j].CreatedAt())
	})

	views := make([]queries.TournamentView, 0, len(all))
	for _, tournament := range all {
		if criteria.Status != "" && string(tournament.Status()) != criteria.Status {
			continue
		}
		views = append(views, toTournamentView(tournament))
	}

	if criteria.Offset > 0 {
		if criteria.Offset >= len(views) {
			return []queries.TournamentView{}, nil
		}
		views = views[criteria.Offset:]
	}
	if criteria.Limit > 0 && criteria.Limit < len(views) {
		views = views[:criteria.Limit]
	}
	return views, nil
}

func toTournamentView(t *entities.Tournament) queries.TournamentView {
	entrants := t.Entrants()
	entrantIDs := make([]string, len(entrants))
	for i, entrant := range entrants {
		entrantIDs[i] = entrant.String()
	}

	view := queries.TournamentView{
		ID:           t.ID().String(),
		Name:         t.Name(),
		Format:       string(t.Format()),
		Status:       string(t.Status()),
		Capacity:     t.Capacity(),
		EntrantCount: len(entrants),
		Entrants:     entrantIDs,
		CreatedAt:    t.CreatedAt().Format(time.RFC3339),
		UpdatedAt:    t.UpdatedAt().Format(time.RFC3339),
	}
	if !t.Winner().IsZero() {
		view.WinnerID = t.Winner().String()
	}
	return view
}

func toMatchView(m *entities.Match) queries.MatchView {
	view := queries.MatchView{
		ID:           m.ID().String(),
		TournamentID: m.TournamentID().String(),
		Round:        m.Round(),
		HomeID:       m.Home().String(),
		AwayID:       m.Away().String(),
		Status:       string(m.Status()),
	}
	if !m.Winner().IsZero() {
		view.WinnerID = m.Winner().String()
	}
	return view
}
