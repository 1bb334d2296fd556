package memory

import (
	"context"
	"sync"

	"tournament-backend/application/ports"
	"tournament-backend/domain/core/entities"
	"tournament-backend/domain/core/valueobjects"
	pkgerrors "tournament-backend/pkg/errors"
)

// PlayerRepository is an in-memory implementation of ports.PlayerRepository
type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]*entities.Player
}

// NewPlayerRepository creates an empty in-memory player repository
func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{
		players: make(map[string]*entities.Player),
	}
}

var _ ports.PlayerRepository = (*PlayerRepository)(nil)

// Save persists a snapshot of the player
func (r *PlayerRepository) Save(ctx context.Context, player *entities.Player) error {
	if player == nil {
		return pkgerrors.NewValidationError("player cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[player.ID().String()] = snapshotPlayer(player)
	return nil
}

// GetByID retrieves a player by its ID
func (r *PlayerRepository) GetByID(ctx context.Context, id valueobjects.PlayerID) (*entities.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	player, exists := r.players[id.String()]
	if !exists {
		return nil, pkgerrors.NewNotFoundError("player")
	}
	return snapshotPlayer(player), nil
}

// GetByIDs retrieves multiple players; a single missing player fails the call
func (r *PlayerRepository) GetByIDs(ctx context.Context, ids []valueobjects.PlayerID) ([]*entities.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Player, 0, len(ids))
	for _, id := range ids {
		player, exists := r.players[id.String()]
		if !exists {
			return nil, pkgerrors.NewNotFoundError("player")
		}
		out = append(out, snapshotPlayer(player))
	}
	return out, nil
}

func snapshotPlayer(p *entities.Player) *entities.Player {
	return entities.ReconstructPlayer(
		p.ID(),
		p.DisplayName(),
		p.Rating(),
		p.CreatedAt(),
		p.UpdatedAt(),
		p.Version(),
	)
}
