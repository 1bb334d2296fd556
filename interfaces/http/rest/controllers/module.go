package controllers

import (
	"context"

	"tournament-backend/application/ports"
	"tournament-backend/application/queries"
	"tournament-backend/application/usecase"
	"tournament-backend/infrastructure/config"
	"tournament-backend/infrastructure/di"
	apperrors "tournament-backend/pkg/errors"

	"go.uber.org/zap"
)

// Controller names as registered with the controller factory. The router
// binds routes to these names; tooling and logs refer to them as well.
const (
	NameCreateTournament  = "CreateTournamentController"
	NameGetTournament     = "GetTournamentController"
	NameListTournaments   = "ListTournamentsController"
	NameRegisterPlayer    = "RegisterPlayerController"
	NameStartTournament   = "StartTournamentController"
	NameReportMatchResult = "ReportMatchResultController"
)

// AddControllers registers a builder per controller. Builders resolve their
// dependencies through the provider, so a controller can only be created
// once everything it needs is constructible.
func AddControllers(cfg *config.Config) di.ControllerRegistrationFunc {
	debug := cfg.IsDevelopment()

	return func(f *di.ControllerFactory) error {
		table := []struct {
			name    string
			builder di.ControllerBuilder
		}{
			{NameCreateTournament, func(ctx context.Context, r di.Resolver) (di.Controller, error) {
				tournaments, err := di.ResolveAs[ports.TournamentRepository](ctx, r, di.KeyTournamentRepository)
				if err != nil {
					return nil, err
				}
				publisher, err := di.ResolveAs[ports.EventPublisher](ctx, r, di.KeyEventPublisher)
				if err != nil {
					return nil, err
				}
				errs, err := newErrorHandler(ctx, r, debug)
				if err != nil {
					return nil, err
				}
				return NewCreateTournamentController(usecase.NewCreateTournament(tournaments, publisher), errs), nil
			}},

			{NameGetTournament, func(ctx context.Context, r di.Resolver) (di.Controller, error) {
				query, err := di.ResolveAs[queries.TournamentQuery](ctx, r, di.KeyTournamentQuery)
				if err != nil {
					return nil, err
				}
				errs, err := newErrorHandler(ctx, r, debug)
				if err != nil {
					return nil, err
				}
				return NewGetTournamentController(usecase.NewGetTournament(query), errs), nil
			}},

			{NameListTournaments, func(ctx context.Context, r di.Resolver) (di.Controller, error) {
				query, err := di.ResolveAs[queries.TournamentQuery](ctx, r, di.KeyTournamentQuery)
				if err != nil {
					return nil, err
				}
				errs, err := newErrorHandler(ctx, r, debug)
				if err != nil {
					return nil, err
				}
				return NewListTournamentsController(usecase.NewListTournaments(query), errs), nil
			}},

			{NameRegisterPlayer, func(ctx context.Context, r di.Resolver) (di.Controller, error) {
				tournaments, err := di.ResolveAs[ports.TournamentRepository](ctx, r, di.KeyTournamentRepository)
				if err != nil {
					return nil, err
				}
				players, err := di.ResolveAs[ports.PlayerRepository](ctx, r, di.KeyPlayerRepository)
				if err != nil {
					return nil, err
				}
				uow, err := di.ResolveAs[ports.UnitOfWork](ctx, r, di.KeyUnitOfWork)
				if err != nil {
					return nil, err
				}
				publisher, err := di.ResolveAs[ports.EventPublisher](ctx, r, di.KeyEventPublisher)
				if err != nil {
					return nil, err
				}
				errs, err := newErrorHandler(ctx, r, debug)
				if err != nil {
					return nil, err
				}
				return NewRegisterPlayerController(usecase.NewRegisterPlayer(tournaments, players, uow, publisher), errs), nil
			}},

			{NameStartTournament, func(ctx context.Context, r di.Resolver) (di.Controller, error) {
				tournaments, err := di.ResolveAs[ports.TournamentRepository](ctx, r, di.KeyTournamentRepository)
				if err != nil {
					return nil, err
				}
				matches, err := di.ResolveAs[ports.MatchRepository](ctx, r, di.KeyMatchRepository)
				if err != nil {
					return nil, err
				}
				uow, err := di.ResolveAs[ports.UnitOfWork](ctx, r, di.KeyUnitOfWork)
				if err != nil {
					return nil, err
				}
				publisher, err := di.ResolveAs[ports.EventPublisher](ctx, r, di.KeyEventPublisher)
				if err != nil {
					return nil, err
				}
				errs, err := newErrorHandler(ctx, r, debug)
				if err != nil {
					return nil, err
				}
				return NewStartTournamentController(usecase.NewStartTournament(tournaments, matches, uow, publisher), errs), nil
			}},

			{NameReportMatchResult, func(ctx context.Context, r di.Resolver) (di.Controller, error) {
				tournaments, err := di.ResolveAs[ports.TournamentRepository](ctx, r, di.KeyTournamentRepository)
				if err != nil {
					return nil, err
				}
				matches, err := di.ResolveAs[ports.MatchRepository](ctx, r, di.KeyMatchRepository)
				if err != nil {
					return nil, err
				}
				uow, err := di.ResolveAs[ports.UnitOfWork](ctx, r, di.KeyUnitOfWork)
				if err != nil {
					return nil, err
				}
				publisher, err := di.ResolveAs[ports.EventPublisher](ctx, r, di.KeyEventPublisher)
				if err != nil {
					return nil, err
				}
				errs, err := newErrorHandler(ctx, r, debug)
				if err != nil {
					return nil, err
				}
				return NewReportMatchResultController(usecase.NewReportMatchResult(tournaments, matches, uow, publisher), errs), nil
			}},
		}

		for _, entry := range table {
			if err := f.Register(entry.name, entry.builder); err != nil {
				return err
			}
		}
		return nil
	}
}

func newErrorHandler(ctx context.Context, r di.Resolver, debug bool) (*apperrors.ErrorHandler, error) {
	logger, err := di.ResolveAs[*zap.Logger](ctx, r, di.KeyLogger)
	if err != nil {
		return nil, err
	}
	return apperrors.NewErrorHandler(logger, debug), nil
}
