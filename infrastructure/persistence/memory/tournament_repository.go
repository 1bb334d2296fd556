// Package memory provides in-memory implementations of the persistence
// ports. They back the memory persistence driver and the test suites.
package memory

import (
	"context"
	"sync"

	"tournament-backend/application/ports"
	"tournament-backend/domain/core/entities"
	"tournament-backend/domain/core/valueobjects"
	pkgerrors "tournament-backend/pkg/errors"
)

// TournamentRepository is an in-memory implementation of ports.TournamentRepository
type TournamentRepository struct {
	mu          sync.RWMutex
	tournaments map[string]*entities.Tournament
}

// NewTournamentRepository creates an empty in-memory tournament repository
func NewTournamentRepository() *TournamentRepository {
	return &TournamentRepository{
		tournaments: make(map[string]*entities.Tournament),
	}
}

var _ ports.TournamentRepository = (*TournamentRepository)(nil)

// Save persists a snapshot of the tournament
func (r *TournamentRepository) Save(ctx context.Context, tournament *entities.Tournament) error {
	if tournament == nil {
		return pkgerrors.NewValidationError("tournament cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tournaments[tournament.ID().String()] = snapshotTournament(tournament)
	return nil
}

// GetByID retrieves a tournament by its ID
func (r *TournamentRepository) GetByID(ctx context.Context, id valueobjects.TournamentID) (*entities.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tournament, exists := r.tournaments[id.String()]
	if !exists {
		return nil, pkgerrors.NewNotFoundError("tournament")
	}
	return snapshotTournament(tournament), nil
}

// Delete removes a tournament
func (r *TournamentRepository) Delete(ctx context.Context, id valueobjects.TournamentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tournaments[id.String()]; !exists {
		return pkgerrors.NewNotFoundError("tournament")
	}
	delete(r.tournaments, id.String())
	return nil
}

// All returns snapshots of every stored tournament
func (r *TournamentRepository) All() []*entities.Tournament {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Tournament, 0, len(r.tournaments))
	for _, tournament := range r.tournaments {
		out = append(out, snapshotTournament(tournament))
	}
	return out
}

// snapshotTournament copies a tournament so stored state cannot be mutated
// through escaped references
func snapshotTournament(t *entities.Tournament) *entities.Tournament {
	return entities.ReconstructTournament(
		t.ID(),
		t.Name(),
		t.Format(),
		t.Status(),
		t.Capacity(),
		t.Entrants(),
		t.Winner(),
		t.CreatedAt(),
		t.UpdatedAt(),
		t.Version(),
	)
}
