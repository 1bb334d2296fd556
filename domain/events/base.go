package events

import (
	"time"

	"tournament-backend/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string { return e.AggregateID }
func (e BaseEvent) GetEventType() string { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int { return e.Version }

// Event type identifiers as carried on the wire
const (
	EventTypeTournamentCreated   = "tournament.created"
	EventTypeTournamentStarted   = "tournament.started"
	EventTypeTournamentCompleted = "tournament.completed"
	EventTypePlayerRegistered    = "tournament.player_registered"
	EventTypeMatchResultReported = "tournament.match_result_reported"
)

// Tournament Events

// TournamentCreated is raised when a new tournament is created
type TournamentCreated struct {
	BaseEvent
	TournamentID valueobjects.TournamentID `json:"tournament_id"`
	Name         string                    `json:"name"`
	Format       string                    `json:"format"`
}

// NewTournamentCreated creates a TournamentCreated event
func NewTournamentCreated(id valueobjects.TournamentID, name, format string, timestamp time.Time) TournamentCreated {
	return TournamentCreated{
		BaseEvent: BaseEvent{
			AggregateID: id.String(),
			EventType:   EventTypeTournamentCreated,
			Timestamp:   timestamp,
			Version:     1,
		},
		TournamentID: id,
		Name:         name,
		Format:       format,
	}
}

// TournamentStarted is raised when a tournament begins play
type TournamentStarted struct {
	BaseEvent
	TournamentID valueobjects.TournamentID `json:"tournament_id"`
	EntrantCount int                       `json:"entrant_count"`
	RoundCount   int                       `json:"round_count"`
}

// NewTournamentStarted creates a TournamentStarted event
func NewTournamentStarted(id valueobjects.TournamentID, entrants, rounds int, timestamp time.Time) TournamentStarted {
	return TournamentStarted{
		BaseEvent: BaseEvent{
			AggregateID: id.String(),
			EventType:   EventTypeTournamentStarted,
			Timestamp:   timestamp,
			Version:     1,
		},
		TournamentID: id,
		EntrantCount: entrants,
		RoundCount:   rounds,
	}
}

// TournamentCompleted is raised when a tournament finishes
type TournamentCompleted struct {
	BaseEvent
	TournamentID valueobjects.TournamentID `json:"tournament_id"`
	WinnerID     valueobjects.PlayerID     `json:"winner_id"`
}

// NewTournamentCompleted creates a TournamentCompleted event
func NewTournamentCompleted(id valueobjects.TournamentID, winner valueobjects.PlayerID, timestamp time.Time) TournamentCompleted {
	return TournamentCompleted{
		BaseEvent: BaseEvent{
			AggregateID: id.String(),
			EventType:   EventTypeTournamentCompleted,
			Timestamp:   timestamp,
			Version:     1,
		},
		TournamentID: id,
		WinnerID:     winner,
	}
}

// PlayerRegistered is raised when a player joins a tournament
type PlayerRegistered struct {
	BaseEvent
	TournamentID valueobjects.TournamentID `json:"tournament_id"`
	PlayerID     valueobjects.PlayerID     `json:"player_id"`
}

// NewPlayerRegistered creates a PlayerRegistered event
func NewPlayerRegistered(tournamentID valueobjects.TournamentID, playerID valueobjects.PlayerID, timestamp time.Time) PlayerRegistered {
	return PlayerRegistered{
		BaseEvent: BaseEvent{
			AggregateID: tournamentID.String(),
			EventType:   EventTypePlayerRegistered,
			Timestamp:   timestamp,
			Version:     1,
		},
		TournamentID: tournamentID,
		PlayerID:     playerID,
	}
}

// MatchResultReported is raised when a match result is recorded
type MatchResultReported struct {
	BaseEvent
	MatchID      valueobjects.MatchID      `json:"match_id"`
	TournamentID valueobjects.TournamentID `json:"tournament_id"`
	WinnerID     valueobjects.PlayerID     `json:"winner_id"`
	Round        int                       `json:"round"`
}

// NewMatchResultReported creates a MatchResultReported event
func NewMatchResultReported(matchID valueobjects.MatchID, tournamentID valueobjects.TournamentID, winner valueobjects.PlayerID, round int, timestamp time.Time) MatchResultReported {
	return MatchResultReported{
		BaseEvent: BaseEvent{
			AggregateID: tournamentID.String(),
			EventType:   EventTypeMatchResultReported,
			Timestamp:   timestamp,
			Version:     1,
		},
		MatchID:      matchID,
		TournamentID: tournamentID,
		WinnerID:     winner,
		Round:        round,
	}
}
