package usecase

import (
	"context"

	"tournament-backend/application/ports"
	"tournament-backend/domain/core/entities"
	"tournament-backend/domain/core/valueobjects"
	pkgerrors "tournament-backend/pkg/errors"
)

// StartTournamentInput carries the data needed to start a tournament
type StartTournamentInput struct {
	TournamentID string
}

// StartTournamentOutput is the result of starting a tournament
type StartTournamentOutput struct {
	TournamentID string
	Status       string
	MatchIDs     []string
}

// StartTournament transitions a tournament into play and creates the
// round-one matches in a single transaction
type StartTournament struct {
	tournaments ports.TournamentRepository
	matches     ports.MatchRepository
	uow         ports.UnitOfWork
	publisher   ports.EventPublisher
}

// NewStartTournament wires the use case with its dependencies
func NewStartTournament(
	tournaments ports.TournamentRepository,
	matches ports.MatchRepository,
	uow ports.UnitOfWork,
	publisher ports.EventPublisher,
) *StartTournament {
	return &StartTournament{
		tournaments: tournaments,
		matches:     matches,
		uow:         uow,
		publisher:   publisher,
	}
}

// Execute runs the use case
func (uc *StartTournament) Execute(ctx context.Context, input StartTournamentInput) (*StartTournamentOutput, error) {
	tournamentID, err := valueobjects.NewTournamentIDFromString(input.TournamentID)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	if err := uc.uow.Begin(ctx); err != nil {
		return nil, err
	}

	tournament, err := uc.tournaments.GetByID(ctx, tournamentID)
	if err != nil {
		uc.uow.Rollback()
		return nil, err
	}

	pairings, err := tournament.Start()
	if err != nil {
		uc.uow.Rollback()
		return nil, err
	}

	matches := make([]*entities.Match, 0, len(pairings))
	for _, pairing := range pairings {
		match, err := entities.NewMatch(tournament.ID(), 1, pairing[0], pairing[1])
		if err != nil {
			uc.uow.Rollback()
			return nil, err
		}
		matches = append(matches, match)
	}

	if err := uc.uow.TournamentRepository().Save(ctx, tournament); err != nil {
		uc.uow.Rollback()
		return nil, err
	}
	if err := uc.uow.MatchRepository().SaveBatch(ctx, matches); err != nil {
		uc.uow.Rollback()
		return nil, err
	}

	if err := uc.uow.Commit(ctx); err != nil {
		return nil, err
	}

	if err := uc.publisher.PublishBatch(ctx, tournament.GetUncommittedEvents()); err != nil {
		return nil, err
	}
	tournament.MarkEventsAsCommitted()

	matchIDs := make([]string, len(matches))
	for i, match := range matches {
		matchIDs[i] = match.ID().String()
	}

	return &StartTournamentOutput{
		TournamentID: tournament.ID().String(),
		Status:       string(tournament.Status()),
		MatchIDs:     matchIDs,
	}, nil
}
