package entities

import (
	"strings"
	"time"

	"tournament-backend/domain/core/valueobjects"
	pkgerrors "tournament-backend/pkg/errors"
)

const defaultRating = 1200

// Player represents a registered competitor
type Player struct {
	id          valueobjects.PlayerID
	displayName string
	rating      int
	createdAt   time.Time
	updatedAt   time.Time
	version     int
}

// NewPlayer creates a new player with a default rating
func NewPlayer(displayName string) (*Player, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, pkgerrors.NewValidationError("display name cannot be empty")
	}
	if len(displayName) > 64 {
		return nil, pkgerrors.NewValidationError("display name must be at most 64 characters")
	}

	now := time.Now()
	return &Player{
		id:          valueobjects.NewPlayerID(),
		displayName: displayName,
		rating:      defaultRating,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructPlayer rebuilds a player from persisted state
func ReconstructPlayer(id valueobjects.PlayerID, displayName string, rating int, createdAt, updatedAt time.Time, version int) *Player {
	return &Player{
		id:          id,
		displayName: displayName,
		rating:      rating,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		version:     version,
	}
}

// AdjustRating applies a rating delta, clamping at zero
func (p *Player) AdjustRating(delta int) {
	p.rating += delta
	if p.rating < 0 {
		p.rating = 0
	}
	p.updatedAt = time.Now()
	p.version++
}

func (p *Player) ID() valueobjects.PlayerID { return p.id }
func (p *Player) DisplayName() string { return p.displayName }
func (p *Player) Rating() int { return p.rating }
func (p *Player) CreatedAt() time.Time { return p.createdAt }
func (p *Player) UpdatedAt() time.Time { return p.updatedAt }
func (p *Player) Version() int { return p.version }
