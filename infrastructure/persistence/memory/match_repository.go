package memory

import (
	"context"
	"sort"
	"sync"

	"tournament-backend/application/ports"
	"tournament-backend/domain/core/entities"
	"tournament-backend/domain/core/valueobjects"
	pkgerrors "tournament-backend/pkg/errors"
)

// MatchRepository is an in-memory implementation of ports.MatchRepository
type MatchRepository struct {
	mu      sync.RWMutex
	matches map[string]*entities.Match
}

// NewMatchRepository creates an empty in-memory match repository
func NewMatchRepository() *MatchRepository {
	return &MatchRepository{
		matches: make(map[string]*entities.Match),
	}
}

var _ ports.MatchRepository = (*MatchRepository)(nil)

// Save persists a snapshot of the match
func (r *MatchRepository) Save(ctx context.Context, match *entities.Match) error {
	if match == nil {
		return pkgerrors.NewValidationError("match cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.matches[match.ID().String()] = snapshotMatch(match)
	return nil
}

// SaveBatch persists a set of matches together
func (r *MatchRepository) SaveBatch(ctx context.Context, matches []*entities.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, match := range matches {
		if match == nil {
			return pkgerrors.NewValidationError("match cannot be nil")
		}
		r.matches[match.ID().String()] = snapshotMatch(match)
	}
	return nil
}

// GetByID retrieves a match by its ID
func (r *MatchRepository) GetByID(ctx context.Context, id valueobjects.MatchID) (*entities.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	match, exists := r.matches[id.String()]
	if !exists {
		return nil, pkgerrors.NewNotFoundError("match")
	}
	return snapshotMatch(match), nil
}

// GetByTournamentID retrieves all matches of a tournament ordered by round
func (r *MatchRepository) GetByTournamentID(ctx context.Context, tournamentID valueobjects.TournamentID) ([]*entities.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Match, 0)
	for _, match := range r.matches {
		if match.TournamentID().Equals(tournamentID) {
			out = append(out, snapshotMatch(match))
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Round() != out[j].Round() {
			return out[i].Round() < out[j].Round()
		}
		return out[i].ID().String() < out[j].ID().String()
	})
	return out, nil
}

func snapshotMatch(m *entities.Match) *entities.Match {
	return entities.ReconstructMatch(
		m.ID(),
		m.TournamentID(),
		m.Round(),
		m.Home(),
		m.Away(),
		m.Winner(),
		m.Status(),
		m.CreatedAt(),
		m.UpdatedAt(),
		m.Version(),
	)
}
