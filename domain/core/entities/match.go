package entities

import (
	"fmt"
	"time"

	"tournament-backend/domain/core/valueobjects"
	"tournament-backend/domain/events"
	pkgerrors "tournament-backend/pkg/errors"
)

// MatchStatus represents the state of a match
type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchFinished MatchStatus = "finished"
)

// Match represents a single pairing within a tournament round
type Match struct {
	id           valueobjects.MatchID
	tournamentID valueobjects.TournamentID
	round        int
	home         valueobjects.PlayerID
	away         valueobjects.PlayerID
	winner       valueobjects.PlayerID
	status       MatchStatus
	createdAt    time.Time
	updatedAt    time.Time
	version      int

	events []events.DomainEvent
}

// NewMatch creates a pending match for a tournament round
func NewMatch(tournamentID valueobjects.TournamentID, round int, home, away valueobjects.PlayerID) (*Match, error) {
	if tournamentID.IsZero() {
		return nil, pkgerrors.NewValidationError("tournament ID cannot be empty")
	}
	if round < 1 {
		return nil, pkgerrors.NewValidationError("round must be at least 1")
	}
	if home.IsZero() || away.IsZero() {
		return nil, pkgerrors.NewValidationError("both players are required")
	}
	if home.Equals(away) {
		return nil, pkgerrors.NewValidationError("a player cannot be paired against themselves")
	}

	now := time.Now()
	return &Match{
		id:           valueobjects.NewMatchID(),
		tournamentID: tournamentID,
		round:        round,
		home:         home,
		away:         away,
		status:       MatchPending,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructMatch rebuilds a match from persisted state
func ReconstructMatch(
	id valueobjects.MatchID,
	tournamentID valueobjects.TournamentID,
	round int,
	home, away, winner valueobjects.PlayerID,
	status MatchStatus,
	createdAt, updatedAt time.Time,
	version int,
) *Match {
	return &Match{
		id:           id,
		tournamentID: tournamentID,
		round:        round,
		home:         home,
		away:         away,
		winner:       winner,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		version:      version,
	}
}

// ReportResult records the winner of the match
func (m *Match) ReportResult(winner valueobjects.PlayerID) error {
	if m.status == MatchFinished {
		return pkgerrors.NewConflictError("match result has already been reported")
	}
	if !winner.Equals(m.home) && !winner.Equals(m.away) {
		return pkgerrors.NewValidationError(fmt.Sprintf("winner %s is not a participant of this match", winner))
	}

	m.winner = winner
	m.status = MatchFinished
	m.updatedAt = time.Now()
	m.version++
	m.events = append(m.events, events.NewMatchResultReported(m.id, m.tournamentID, winner, m.round, m.updatedAt))
	return nil
}

func (m *Match) ID() valueobjects.MatchID { return m.id }
func (m *Match) TournamentID() valueobjects.TournamentID { return m.tournamentID }
func (m *Match) Round() int { return m.round }
func (m *Match) Home() valueobjects.PlayerID { return m.home }
func (m *Match) Away() valueobjects.PlayerID { return m.away }
func (m *Match) Winner() valueobjects.PlayerID { return m.winner }
func (m *Match) Status() MatchStatus { return m.status }
func (m *Match) CreatedAt() time.Time { return m.createdAt }
func (m *Match) UpdatedAt() time.Time { return m.updatedAt }
func (m *Match) Version() int { return m.version }

// GetUncommittedEvents returns events recorded since the last flush
func (m *Match) GetUncommittedEvents() []events.DomainEvent {
	return m.events
}

// MarkEventsAsCommitted clears the recorded events after publishing
func (m *Match) MarkEventsAsCommitted() {
	m.events = nil
}
