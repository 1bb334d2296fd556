package di_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tournament-backend/domain/core/entities"
	"tournament-backend/domain/core/valueobjects"
	"tournament-backend/domain/events"
	"tournament-backend/infrastructure/config"
	"tournament-backend/infrastructure/di"
	"tournament-backend/infrastructure/persistence/memory"
	"tournament-backend/interfaces/http/rest/controllers"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// startFixture wires a full composition root over in-memory storage with a
// tournament that is ready to start.
type startFixture struct {
	tournaments  *memory.TournamentRepository
	matches      *memory.MatchRepository
	publisher    *memory.EventPublisher
	container    *di.Container
	tournamentID valueobjects.TournamentID
}

func newStartFixture(t *testing.T) *startFixture {
	t.Helper()
	ctx := context.Background()

	fx := &startFixture{
		tournaments: memory.NewTournamentRepository(),
		matches:     memory.NewMatchRepository(),
		publisher:   memory.NewEventPublisher(),
	}

	tournament, err := entities.NewTournament("Spring Open", entities.FormatSingleElimination, 4)
	require.NoError(t, err)
	require.NoError(t, tournament.OpenRegistration())
	require.NoError(t, tournament.AddEntrant(valueobjects.NewPlayerID()))
	require.NoError(t, tournament.AddEntrant(valueobjects.NewPlayerID()))
	tournament.MarkEventsAsCommitted()
	require.NoError(t, fx.tournaments.Save(ctx, tournament))
	fx.tournamentID = tournament.ID()

	logger := zap.NewNop()
	bootstrapper := di.NewBootstrapper(di.BootEager, logger)

	// The write-side services are bound as singletons pointing at the
	// fixture's exact instances, so delegation can be observed from outside.
	require.NoError(t, bootstrapper.RegisterServices(
		di.AddLogger(logger),
		func(r *di.Registry) error {
			if err := r.Register(di.KeyTournamentRepository, di.Singleton, func(context.Context, di.Resolver) (interface{}, error) {
				return fx.tournaments, nil
			}); err != nil {
				return err
			}
			if err := r.Register(di.KeyPlayerRepository, di.Singleton, func(context.Context, di.Resolver) (interface{}, error) {
				return memory.NewPlayerRepository(), nil
			}); err != nil {
				return err
			}
			if err := r.Register(di.KeyMatchRepository, di.Singleton, func(context.Context, di.Resolver) (interface{}, error) {
				return fx.matches, nil
			}); err != nil {
				return err
			}
			if err := r.Register(di.KeyUnitOfWork, di.Singleton, func(ctx context.Context, res di.Resolver) (interface{}, error) {
				tournaments, err := di.ResolveAs[*memory.TournamentRepository](ctx, res, di.KeyTournamentRepository)
				if err != nil {
					return nil, err
				}
				matches, err := di.ResolveAs[*memory.MatchRepository](ctx, res, di.KeyMatchRepository)
				if err != nil {
					return nil, err
				}
				return memory.NewUnitOfWork(tournaments, matches), nil
			}); err != nil {
				return err
			}
			return r.Register(di.KeyEventPublisher, di.Singleton, func(context.Context, di.Resolver) (interface{}, error) {
				return fx.publisher, nil
			})
		},
	))

	cfg := &config.Config{Environment: "test"}
	require.NoError(t, bootstrapper.RegisterControllers(controllers.AddControllers(cfg)))

	container, err := bootstrapper.Boot(ctx)
	require.NoError(t, err)
	fx.container = container

	return fx
}

func TestStartTournamentController_EndToEnd(t *testing.T) {
	fx := newStartFixture(t)
	ctx := context.Background()

	controller, err := fx.container.Controllers.Create(ctx, controllers.NameStartTournament)
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Post("/tournaments/{tournamentID}/start", controller.Handle)

	req := httptest.NewRequest(http.MethodPost, "/tournaments/"+fx.tournamentID.String()+"/start", strings.NewReader(""))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			TournamentID string   `json:"tournament_id"`
			Status       string   `json:"status"`
			MatchIDs     []string `json:"match_ids"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, fx.tournamentID.String(), envelope.Data.TournamentID)
	assert.Equal(t, string(entities.StatusRunning), envelope.Data.Status)
	assert.Len(t, envelope.Data.MatchIDs, 1)

	// The controller must have gone through the exact repository singletons
	stored, err := fx.tournaments.GetByID(ctx, fx.tournamentID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusRunning, stored.Status())

	matches, err := fx.matches.GetByTournamentID(ctx, fx.tournamentID)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 1, matches[0].Round())

	published := fx.publisher.Published()
	require.NotEmpty(t, published)
	var types []string
	for _, event := range published {
		types = append(types, event.GetEventType())
	}
	assert.Contains(t, types, events.EventTypeTournamentStarted)
}

func TestStartTournamentController_MissingRepositoryBinding(t *testing.T) {
	logger := zap.NewNop()
	bootstrapper := di.NewBootstrapper(di.BootLazy, logger)

	// Everything except the tournament repository is bound
	require.NoError(t, bootstrapper.RegisterServices(
		di.AddLogger(logger),
		func(r *di.Registry) error {
			matches := memory.NewMatchRepository()
			if err := r.Register(di.KeyMatchRepository, di.Singleton, func(context.Context, di.Resolver) (interface{}, error) {
				return matches, nil
			}); err != nil {
				return err
			}
			if err := r.Register(di.KeyUnitOfWork, di.Singleton, func(context.Context, di.Resolver) (interface{}, error) {
				return memory.NewUnitOfWork(memory.NewTournamentRepository(), matches), nil
			}); err != nil {
				return err
			}
			return r.Register(di.KeyEventPublisher, di.Singleton, func(context.Context, di.Resolver) (interface{}, error) {
				return memory.NewEventPublisher(), nil
			})
		},
	))

	cfg := &config.Config{Environment: "test"}
	require.NoError(t, bootstrapper.RegisterControllers(controllers.AddControllers(cfg)))

	container, err := bootstrapper.Boot(context.Background())
	require.NoError(t, err)

	_, err = container.Controllers.Create(context.Background(), controllers.NameStartTournament)

	var notRegistered *di.NotRegisteredError
	require.ErrorAs(t, err, &notRegistered)
	assert.Equal(t, di.KeyTournamentRepository, notRegistered.Key)
}
