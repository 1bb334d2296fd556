package ports

import (
	"context"

	"tournament-backend/domain/core/entities"
	"tournament-backend/domain/core/valueobjects"
	"tournament-backend/domain/events"
)

// TournamentRepository defines the interface for tournament persistence
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type TournamentRepository interface {
	// Save persists a tournament (create or update)
	Save(ctx context.Context, tournament *entities.Tournament) error

	// GetByID retrieves a tournament by its ID
	GetByID(ctx context.Context, id valueobjects.TournamentID) (*entities.Tournament, error)

	// Delete removes a tournament
	Delete(ctx context.Context, id valueobjects.TournamentID) error
}

// PlayerRepository defines the interface for player persistence
type PlayerRepository interface {
	// Save persists a player (create or update)
	Save(ctx context.Context, player *entities.Player) error

	// GetByID retrieves a player by its ID
	GetByID(ctx context.Context, id valueobjects.PlayerID) (*entities.Player, error)

	// GetByIDs retrieves multiple players in one round trip
	GetByIDs(ctx context.Context, ids []valueobjects.PlayerID) ([]*entities.Player, error)
}

// MatchRepository defines the interface for match persistence
type MatchRepository interface {
	// Save persists a match (create or update)
	Save(ctx context.Context, match *entities.Match) error

	// SaveBatch persists a set of matches together
	SaveBatch(ctx context.Context, matches []*entities.Match) error

	// GetByID retrieves a match by its ID
	GetByID(ctx context.Context, id valueobjects.MatchID) (*entities.Match, error)

	// GetByTournamentID retrieves all matches of a tournament
	GetByTournamentID(ctx context.Context, tournamentID valueobjects.TournamentID) ([]*entities.Match, error)
}

// UnitOfWork defines a transaction boundary for aggregate operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction
	Rollback() error

	// TournamentRepository returns the tournament repository for this transaction
	TournamentRepository() TournamentRepository

	// MatchRepository returns the match repository for this transaction
	MatchRepository() MatchRepository
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}
