package usecase

import (
	"context"
	"testing"

	"tournament-backend/domain/core/entities"
	"tournament-backend/domain/core/valueobjects"
	"tournament-backend/domain/events"
	"tournament-backend/infrastructure/persistence/memory"
	pkgerrors "tournament-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportFixture struct {
	tournaments *memory.TournamentRepository
	matches     *memory.MatchRepository
	publisher   *memory.EventPublisher
	uc          *ReportMatchResult

	tournament *entities.Tournament
	seeds      []valueobjects.PlayerID
}

// newReportFixture seeds a running single elimination tournament with the
// given number of entrants and its round-one matches.
func newReportFixture(t *testing.T, entrants int) *reportFixture {
	t.Helper()
	ctx := context.Background()

	fx := &reportFixture{
		tournaments: memory.NewTournamentRepository(),
		matches:     memory.NewMatchRepository(),
		publisher:   memory.NewEventPublisher(),
	}
	uow := memory.NewUnitOfWork(fx.tournaments, fx.matches)
	fx.uc = NewReportMatchResult(fx.tournaments, fx.matches, uow, fx.publisher)

	tournament, err := entities.NewTournament("Open", entities.FormatSingleElimination, 8)
	require.NoError(t, err)
	require.NoError(t, tournament.OpenRegistration())
	for i := 0; i < entrants; i++ {
		seed := valueobjects.NewPlayerID()
		fx.seeds = append(fx.seeds, seed)
		require.NoError(t, tournament.AddEntrant(seed))
	}

	pairings, err := tournament.Start()
	require.NoError(t, err)
	tournament.MarkEventsAsCommitted()
	require.NoError(t, fx.tournaments.Save(ctx, tournament))
	fx.tournament = tournament

	for _, pairing := range pairings {
		match, err := entities.NewMatch(tournament.ID(), 1, pairing[0], pairing[1])
		require.NoError(t, err)
		require.NoError(t, fx.matches.Save(ctx, match))
	}
	return fx
}

func (fx *reportFixture) roundOneMatches(t *testing.T) []*entities.Match {
	t.Helper()
	matches, err := fx.matches.GetByTournamentID(context.Background(), fx.tournament.ID())
	require.NoError(t, err)
	return matches
}

func TestReportMatchResult_Execute_RecordsWinner(t *testing.T) {
	ctx := context.Background()
	fx := newReportFixture(t, 4)
	matches := fx.roundOneMatches(t)
	require.Len(t, matches, 2)

	first := matches[0]
	output, err := fx.uc.Execute(ctx, ReportMatchResultInput{
		MatchID:  first.ID().String(),
		WinnerID: first.Home().String(),
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID().String(), output.MatchID)
	assert.False(t, output.TournamentFinished)
	assert.Empty(t, output.TournamentWinnerID)

	stored, err := fx.matches.GetByID(ctx, first.ID())
	require.NoError(t, err)
	assert.Equal(t, entities.MatchFinished, stored.Status())
	assert.Equal(t, first.Home(), stored.Winner())

	published := fx.publisher.Published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventTypeMatchResultReported, published[0].GetEventType())
}

func TestReportMatchResult_Execute_LastResultFinishesTournament(t *testing.T) {
	ctx := context.Background()
	fx := newReportFixture(t, 2)
	matches := fx.roundOneMatches(t)
	require.Len(t, matches, 1)

	only := matches[0]
	output, err := fx.uc.Execute(ctx, ReportMatchResultInput{
		MatchID:  only.ID().String(),
		WinnerID: only.Away().String(),
	})
	require.NoError(t, err)

	assert.True(t, output.TournamentFinished)
	assert.Equal(t, only.Away().String(), output.TournamentWinnerID)

	stored, err := fx.tournaments.GetByID(ctx, fx.tournament.ID())
	require.NoError(t, err)
	assert.Equal(t, entities.StatusFinished, stored.Status())
	assert.Equal(t, only.Away(), stored.Winner())

	var types []string
	for _, event := range fx.publisher.Published() {
		types = append(types, event.GetEventType())
	}
	assert.Equal(t, []string{events.EventTypeMatchResultReported, events.EventTypeTournamentCompleted}, types)
}

func TestReportMatchResult_Execute_NonParticipantWinner(t *testing.T) {
	ctx := context.Background()
	fx := newReportFixture(t, 4)
	matches := fx.roundOneMatches(t)

	_, err := fx.uc.Execute(ctx, ReportMatchResultInput{
		MatchID:  matches[0].ID().String(),
		WinnerID: valueobjects.NewPlayerID().String(),
	})
	assert.True(t, pkgerrors.IsValidation(err))

	// The match stays pending
	stored, err := fx.matches.GetByID(ctx, matches[0].ID())
	require.NoError(t, err)
	assert.Equal(t, entities.MatchPending, stored.Status())
}

func TestReportMatchResult_Execute_AlreadyReported(t *testing.T) {
	ctx := context.Background()
	fx := newReportFixture(t, 4)
	matches := fx.roundOneMatches(t)

	input := ReportMatchResultInput{
		MatchID:  matches[0].ID().String(),
		WinnerID: matches[0].Home().String(),
	}

	_, err := fx.uc.Execute(ctx, input)
	require.NoError(t, err)

	_, err = fx.uc.Execute(ctx, input)
	assert.True(t, pkgerrors.IsConflict(err))
}

func TestReportMatchResult_Execute_UnknownMatch(t *testing.T) {
	fx := newReportFixture(t, 4)

	_, err := fx.uc.Execute(context.Background(), ReportMatchResultInput{
		MatchID:  valueobjects.NewMatchID().String(),
		WinnerID: valueobjects.NewPlayerID().String(),
	})
	assert.True(t, pkgerrors.IsNotFound(err))
}
