package usecase

import (
	"context"

	"tournament-backend/application/ports"
	"tournament-backend/domain/core/entities"
)

// CreateTournamentInput carries the data needed to create a tournament
type CreateTournamentInput struct {
	Name     string
	Format   string
	Capacity int
}

// CreateTournamentOutput is the result of creating a tournament
type CreateTournamentOutput struct {
	TournamentID string
	Status       string
}

// CreateTournament creates a tournament and opens registration
type CreateTournament struct {
	tournaments ports.TournamentRepository
	publisher   ports.EventPublisher
}

// NewCreateTournament wires the use case with its dependencies
func NewCreateTournament(tournaments ports.TournamentRepository, publisher ports.EventPublisher) *CreateTournament {
	return &CreateTournament{
		tournaments: tournaments,
		publisher:   publisher,
	}
}

// Execute runs the use case
func (uc *CreateTournament) Execute(ctx context.Context, input CreateTournamentInput) (*CreateTournamentOutput, error) {
	tournament, err := entities.NewTournament(input.Name, entities.TournamentFormat(input.Format), input.Capacity)
	if err != nil {
		return nil, err
	}

	if err := tournament.OpenRegistration(); err != nil {
		return nil, err
	}

	if err := uc.tournaments.Save(ctx, tournament); err != nil {
		return nil, err
	}

	if err := uc.publisher.PublishBatch(ctx, tournament.GetUncommittedEvents()); err != nil {
		return nil, err
	}
	tournament.MarkEventsAsCommitted()

	return &CreateTournamentOutput{
		TournamentID: tournament.ID().String(),
		Status:       string(tournament.Status()),
	}, nil
}
