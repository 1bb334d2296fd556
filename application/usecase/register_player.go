package usecase

import (
	"context"

	"tournament-backend/application/ports"
	"tournament-backend/domain/core/entities"
	"tournament-backend/domain/core/valueobjects"
	pkgerrors "tournament-backend/pkg/errors"
)

// RegisterPlayerInput carries the data to enter a player into a tournament.
// Either PlayerID (existing player) or DisplayName (new player) must be set.
type RegisterPlayerInput struct {
	TournamentID string
	PlayerID     string
	DisplayName  string
}

// RegisterPlayerOutput is the result of registering a player
type RegisterPlayerOutput struct {
	TournamentID string
	PlayerID     string
	EntrantCount int
}

// RegisterPlayer enters a player into an open tournament
type RegisterPlayer struct {
	tournaments ports.TournamentRepository
	players     ports.PlayerRepository
	uow         ports.UnitOfWork
	publisher   ports.EventPublisher
}

// NewRegisterPlayer wires the use case with its dependencies
func NewRegisterPlayer(
	tournaments ports.TournamentRepository,
	players ports.PlayerRepository,
	uow ports.UnitOfWork,
	publisher ports.EventPublisher,
) *RegisterPlayer {
	return &RegisterPlayer{
		tournaments: tournaments,
		players:     players,
		uow:         uow,
		publisher:   publisher,
	}
}

// Execute runs the use case
func (uc *RegisterPlayer) Execute(ctx context.Context, input RegisterPlayerInput) (*RegisterPlayerOutput, error) {
	tournamentID, err := valueobjects.NewTournamentIDFromString(input.TournamentID)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	player, err := uc.resolvePlayer(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := uc.uow.Begin(ctx); err != nil {
		return nil, err
	}

	tournament, err := uc.tournaments.GetByID(ctx, tournamentID)
	if err != nil {
		uc.uow.Rollback()
		return nil, err
	}

	if err := tournament.AddEntrant(player.ID()); err != nil {
		uc.uow.Rollback()
		return nil, err
	}

	if err := uc.uow.TournamentRepository().Save(ctx, tournament); err != nil {
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

	return &RegisterPlayerOutput{
		TournamentID: tournament.ID().String(),
		PlayerID:     player.ID().String(),
		EntrantCount: len(tournament.Entrants()),
	}, nil
}

// resolvePlayer loads an existing player or creates a new one from the input
func (uc *RegisterPlayer) resolvePlayer(ctx context.Context, input RegisterPlayerInput) (*entities.Player, error) {
	if input.PlayerID != "" {
		playerID, err := valueobjects.NewPlayerIDFromString(input.PlayerID)
		if err != nil {
			return nil, pkgerrors.NewValidationError(err.Error())
		}
		return uc.players.GetByID(ctx, playerID)
	}

	player, err := entities.NewPlayer(input.DisplayName)
	if err != nil {
		return nil, err
	}
	if err := uc.players.Save(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}
