package entities

import (
	"fmt"
	"strings"
	"time"

	"tournament-backend/domain/core/valueobjects"
	"tournament-backend/domain/events"
	pkgerrors "tournament-backend/pkg/errors"
)

// TournamentStatus represents the state of a tournament
type TournamentStatus string

const (
	StatusDraft        TournamentStatus = "draft"
	StatusRegistration TournamentStatus = "registration"
	StatusRunning      TournamentStatus = "running"
	StatusFinished     TournamentStatus = "finished"
)

// TournamentFormat defines how pairings are generated
type TournamentFormat string

const (
	FormatSingleElimination TournamentFormat = "single_elimination"
	FormatRoundRobin        TournamentFormat = "round_robin"
)

// Tournament is the aggregate root for a competition
// This is a rich domain model with encapsulated business logic
type Tournament struct {
	// Private fields ensure encapsulation
	id        valueobjects.TournamentID
	name      string
	format    TournamentFormat
	status    TournamentStatus
	capacity  int
	entrants  []valueobjects.PlayerID
	winner    valueobjects.PlayerID
	createdAt time.Time
	updatedAt time.Time
	version   int

	// Domain events that occurred during this aggregate's lifetime
	events []events.DomainEvent
}

// NewTournament creates a new tournament with full business rule validation
func NewTournament(name string, format TournamentFormat, capacity int) (*Tournament, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.NewValidationError("tournament name cannot be empty")
	}
	if format != FormatSingleElimination && format != FormatRoundRobin {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("unknown tournament format: %s", format))
	}
	if capacity < 2 {
		return nil, pkgerrors.NewValidationError("tournament capacity must be at least 2")
	}

	now := time.Now()
	t := &Tournament{
		id:        valueobjects.NewTournamentID(),
		name:      name,
		format:    format,
		status:    StatusDraft,
		capacity:  capacity,
		entrants:  make([]valueobjects.PlayerID, 0, capacity),
		createdAt: now,
		updatedAt: now,
		version:   0,
	}

	t.recordEvent(events.NewTournamentCreated(t.id, t.name, string(t.format), now))
	return t, nil
}

// ReconstructTournament rebuilds a tournament from persisted state without
// firing domain events
func ReconstructTournament(
	id valueobjects.TournamentID,
	name string,
	format TournamentFormat,
	status TournamentStatus,
	capacity int,
	entrants []valueobjects.PlayerID,
	winner valueobjects.PlayerID,
	createdAt, updatedAt time.Time,
	version int,
) *Tournament {
	return &Tournament{
		id:        id,
		name:      name,
		format:    format,
		status:    status,
		capacity:  capacity,
		entrants:  entrants,
		winner:    winner,
		createdAt: createdAt,
		updatedAt: updatedAt,
		version:   version,
	}
}

// OpenRegistration transitions a draft tournament to the registration phase
func (t *Tournament) OpenRegistration() error {
	if t.status != StatusDraft {
		return pkgerrors.NewConflictError(fmt.Sprintf("cannot open registration from status %s", t.status))
	}
	t.status = StatusRegistration
	t.touch()
	return nil
}

// AddEntrant registers a player for the tournament
func (t *Tournament) AddEntrant(playerID valueobjects.PlayerID) error {
	if t.status != StatusRegistration {
		return pkgerrors.NewConflictError("registration is not open")
	}
	if playerID.IsZero() {
		return pkgerrors.NewValidationError("player ID cannot be empty")
	}
	if len(t.entrants) >= t.capacity {
		return pkgerrors.NewConflictError("tournament is full")
	}
	for _, existing := range t.entrants {
		if existing.Equals(playerID) {
			return pkgerrors.NewConflictError(fmt.Sprintf("player %s is already registered", playerID))
		}
	}

	t.entrants = append(t.entrants, playerID)
	t.touch()
	t.recordEvent(events.NewPlayerRegistered(t.id, playerID, t.updatedAt))
	return nil
}

// Start moves the tournament into the running state and returns the
// round-one pairings. An odd entrant count gives the last seed a bye.
func (t *Tournament) Start() ([][2]valueobjects.PlayerID, error) {
	if t.status != StatusRegistration {
		return nil, pkgerrors.NewConflictError(fmt.Sprintf("cannot start tournament from status %s", t.status))
	}
	if len(t.entrants) < 2 {
		return nil, pkgerrors.NewConflictError("at least 2 entrants are required to start")
	}

	pairings := t.seedFirstRound()
	t.status = StatusRunning
	t.touch()
	t.recordEvent(events.NewTournamentStarted(t.id, len(t.entrants), t.RoundCount(), t.updatedAt))
	return pairings, nil
}

// Complete finishes the tournament and records the winner
func (t *Tournament) Complete(winner valueobjects.PlayerID) error {
	if t.status != StatusRunning {
		return pkgerrors.NewConflictError(fmt.Sprintf("cannot complete tournament from status %s", t.status))
	}
	if !t.hasEntrant(winner) {
		return pkgerrors.NewValidationError(fmt.Sprintf("winner %s is not an entrant", winner))
	}

	t.winner = winner
	t.status = StatusFinished
	t.touch()
	t.recordEvent(events.NewTournamentCompleted(t.id, winner, t.updatedAt))
	return nil
}

// RoundCount returns the number of rounds implied by the format and entrants
func (t *Tournament) RoundCount() int {
	n := len(t.entrants)
	if n < 2 {
		return 0
	}
	switch t.format {
	case FormatRoundRobin:
		if n%2 == 0 {
			return n - 1
		}
		return n
	default: // single elimination
		rounds := 0
		for capacity := 1; capacity < n; capacity *= 2 {
			rounds++
		}
		return rounds
	}
}

// seedFirstRound pairs entrants in seed order: 1v2, 3v4, ...
func (t *Tournament) seedFirstRound() [][2]valueobjects.PlayerID {
	pairings := make([][2]valueobjects.PlayerID, 0, len(t.entrants)/2)
	for i := 0; i+1 < len(t.entrants); i += 2 {
		pairings = append(pairings, [2]valueobjects.PlayerID{t.entrants[i], t.entrants[i+1]})
	}
	return pairings
}

func (t *Tournament) hasEntrant(playerID valueobjects.PlayerID) bool {
	for _, entrant := range t.entrants {
		if entrant.Equals(playerID) {
			return true
		}
	}
	return false
}

func (t *Tournament) touch() {
	t.updatedAt = time.Now()
	t.version++
}

func (t *Tournament) recordEvent(event events.DomainEvent) {
	t.events = append(t.events, event)
}

// Getters

func (t *Tournament) ID() valueobjects.TournamentID { return t.id }
func (t *Tournament) Name() string { return t.name }
func (t *Tournament) Format() TournamentFormat { return t.format }
func (t *Tournament) Status() TournamentStatus { return t.status }
func (t *Tournament) Capacity() int { return t.capacity }
func (t *Tournament) Winner() valueobjects.PlayerID { return t.winner }
func (t *Tournament) CreatedAt() time.Time { return t.createdAt }
func (t *Tournament) UpdatedAt() time.Time { return t.updatedAt }
func (t *Tournament) Version() int { return t.version }

// Entrants returns a copy of the entrant list to preserve encapsulation
func (t *Tournament) Entrants() []valueobjects.PlayerID {
	out := make([]valueobjects.PlayerID, len(t.entrants))
	copy(out, t.entrants)
	return out
}

// GetUncommittedEvents returns events recorded since the last flush
func (t *Tournament) GetUncommittedEvents() []events.DomainEvent {
	return t.events
}

// MarkEventsAsCommitted clears the recorded events after publishing
func (t *Tournament) MarkEventsAsCommitted() {
	t.events = nil
}
