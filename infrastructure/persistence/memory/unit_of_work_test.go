package memory

import (
	"context"
	"testing"

	"tournament-backend/domain/core/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTournament(t *testing.T) *entities.Tournament {
	t.Helper()
	tournament, err := entities.NewTournament("Open", entities.FormatSingleElimination, 4)
	require.NoError(t, err)
	tournament.MarkEventsAsCommitted()
	return tournament
}

func TestUnitOfWork_Commit_AppliesStagedWrites(t *testing.T) {
	ctx := context.Background()
	tournaments := NewTournamentRepository()
	matches := NewMatchRepository()
	uow := NewUnitOfWork(tournaments, matches)

	tournament := newTestTournament(t)

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.TournamentRepository().Save(ctx, tournament))

	// Staged writes are invisible until commit
	_, err := tournaments.GetByID(ctx, tournament.ID())
	require.Error(t, err)

	require.NoError(t, uow.Commit(ctx))

	stored, err := tournaments.GetByID(ctx, tournament.ID())
	require.NoError(t, err)
	assert.Equal(t, tournament.ID(), stored.ID())
}

func TestUnitOfWork_Rollback_DiscardsStagedWrites(t *testing.T) {
	ctx := context.Background()
	tournaments := NewTournamentRepository()
	uow := NewUnitOfWork(tournaments, NewMatchRepository())

	tournament := newTestTournament(t)

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.TournamentRepository().Save(ctx, tournament))
	require.NoError(t, uow.Rollback())

	_, err := tournaments.GetByID(ctx, tournament.ID())
	assert.Error(t, err)

	// A later transaction starts clean
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.Commit(ctx))
	_, err = tournaments.GetByID(ctx, tournament.ID())
	assert.Error(t, err)
}

func TestUnitOfWork_Begin_RejectsNestedTransaction(t *testing.T) {
	ctx := context.Background()
	uow := NewUnitOfWork(NewTournamentRepository(), NewMatchRepository())

	require.NoError(t, uow.Begin(ctx))
	assert.Error(t, uow.Begin(ctx))
}

func TestUnitOfWork_WritesOutsideTransactionFail(t *testing.T) {
	ctx := context.Background()
	uow := NewUnitOfWork(NewTournamentRepository(), NewMatchRepository())

	err := uow.TournamentRepository().Save(ctx, newTestTournament(t))
	assert.Error(t, err)

	assert.Error(t, uow.Commit(ctx))
}

func TestUnitOfWork_SaveStagesSnapshot(t *testing.T) {
	ctx := context.Background()
	tournaments := NewTournamentRepository()
	uow := NewUnitOfWork(tournaments, NewMatchRepository())

	tournament := newTestTournament(t)

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.TournamentRepository().Save(ctx, tournament))

	// Mutations after staging must not leak into the committed state
	require.NoError(t, tournament.OpenRegistration())

	require.NoError(t, uow.Commit(ctx))

	stored, err := tournaments.GetByID(ctx, tournament.ID())
	require.NoError(t, err)
	assert.Equal(t, entities.StatusDraft, stored.Status())
}
