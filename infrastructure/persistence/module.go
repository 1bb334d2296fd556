// Package persistence wires the storage ports into the service registry.
// The driver is chosen from configuration; everything downstream resolves
// the same keys regardless of backend.
package persistence

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"tournament-backend/infrastructure/config"
	"tournament-backend/infrastructure/di"
	dynamostore "tournament-backend/infrastructure/persistence/dynamodb"
	"tournament-backend/infrastructure/persistence/memory"
)

// AddRepositories registers the write-side ports for the configured driver:
// the repositories as singletons and the unit of work as transient, since a
// unit of work carries per-transaction state.
func AddRepositories(cfg *config.Config) di.RegistrationFunc {
	return func(r *di.Registry) error {
		switch cfg.PersistenceDriver {
		case config.DriverMemory:
			return addMemoryRepositories(r)
		case config.DriverDynamoDB:
			return addDynamoDBRepositories(r, cfg)
		default:
			return fmt.Errorf("unsupported persistence driver: %s", cfg.PersistenceDriver)
		}
	}
}

// AddQueries registers the read-side query ports for the configured driver
func AddQueries(cfg *config.Config) di.RegistrationFunc {
	return func(r *di.Registry) error {
		switch cfg.PersistenceDriver {
		case config.DriverMemory:
			return r.Register(di.KeyTournamentQuery, di.Singleton, func(ctx context.Context, res di.Resolver) (interface{}, error) {
				tournaments, err := di.ResolveAs[*memory.TournamentRepository](ctx, res, di.KeyTournamentRepository)
				if err != nil {
					return nil, err
				}
				matches, err := di.ResolveAs[*memory.MatchRepository](ctx, res, di.KeyMatchRepository)
				if err != nil {
					return nil, err
				}
				return memory.NewTournamentQuery(tournaments, matches), nil
			})
		case config.DriverDynamoDB:
			return r.Register(di.KeyTournamentQuery, di.Singleton, func(ctx context.Context, res di.Resolver) (interface{}, error) {
				client, err := di.ResolveAs[*dynamodb.Client](ctx, res, di.KeyDynamoDBClient)
				if err != nil {
					return nil, err
				}
				tournaments, err := di.ResolveAs[*dynamostore.TournamentRepository](ctx, res, di.KeyTournamentRepository)
				if err != nil {
					return nil, err
				}
				matches, err := di.ResolveAs[*dynamostore.MatchRepository](ctx, res, di.KeyMatchRepository)
				if err != nil {
					return nil, err
				}
				logger, err := di.ResolveAs[*zap.Logger](ctx, res, di.KeyLogger)
				if err != nil {
					return nil, err
				}
				return dynamostore.NewTournamentQuery(client, cfg.DynamoDBTable, tournaments, matches, logger), nil
			})
		default:
			return fmt.Errorf("unsupported persistence driver: %s", cfg.PersistenceDriver)
		}
	}
}

func addMemoryRepositories(r *di.Registry) error {
	if err := r.Register(di.KeyTournamentRepository, di.Singleton, func(context.Context, di.Resolver) (interface{}, error) {
		return memory.NewTournamentRepository(), nil
	}); err != nil {
		return err
	}

	if err := r.Register(di.KeyPlayerRepository, di.Singleton, func(context.Context, di.Resolver) (interface{}, error) {
		return memory.NewPlayerRepository(), nil
	}); err != nil {
		return err
	}

	if err := r.Register(di.KeyMatchRepository, di.Singleton, func(context.Context, di.Resolver) (interface{}, error) {
		return memory.NewMatchRepository(), nil
	}); err != nil {
		return err
	}

	return r.Register(di.KeyUnitOfWork, di.Transient, func(ctx context.Context, res di.Resolver) (interface{}, error) {
		tournaments, err := di.ResolveAs[*memory.TournamentRepository](ctx, res, di.KeyTournamentRepository)
		if err != nil {
			return nil, err
		}
		matches, err := di.ResolveAs[*memory.MatchRepository](ctx, res, di.KeyMatchRepository)
		if err != nil {
			return nil, err
		}
		return memory.NewUnitOfWork(tournaments, matches), nil
	})
}

func addDynamoDBRepositories(r *di.Registry, cfg *config.Config) error {
	if err := r.Register(di.KeyDynamoDBClient, di.Singleton, func(ctx context.Context, _ di.Resolver) (interface{}, error) {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return dynamodb.NewFromConfig(awsCfg), nil
	}); err != nil {
		return err
	}

	if err := r.Register(di.KeyTournamentRepository, di.Singleton, func(ctx context.Context, res di.Resolver) (interface{}, error) {
		client, logger, err := resolveDynamoDeps(ctx, res)
		if err != nil {
			return nil, err
		}
		return dynamostore.NewTournamentRepository(client, cfg.DynamoDBTable, logger), nil
	}); err != nil {
		return err
	}

	if err := r.Register(di.KeyPlayerRepository, di.Singleton, func(ctx context.Context, res di.Resolver) (interface{}, error) {
		client, logger, err := resolveDynamoDeps(ctx, res)
		if err != nil {
			return nil, err
		}
		return dynamostore.NewPlayerRepository(client, cfg.DynamoDBTable, logger), nil
	}); err != nil {
		return err
	}

	if err := r.Register(di.KeyMatchRepository, di.Singleton, func(ctx context.Context, res di.Resolver) (interface{}, error) {
		client, logger, err := resolveDynamoDeps(ctx, res)
		if err != nil {
			return nil, err
		}
		return dynamostore.NewMatchRepository(client, cfg.DynamoDBTable, logger), nil
	}); err != nil {
		return err
	}

	return r.Register(di.KeyUnitOfWork, di.Transient, func(ctx context.Context, res di.Resolver) (interface{}, error) {
		client, logger, err := resolveDynamoDeps(ctx, res)
		if err != nil {
			return nil, err
		}
		tournaments, err := di.ResolveAs[*dynamostore.TournamentRepository](ctx, res, di.KeyTournamentRepository)
		if err != nil {
			return nil, err
		}
		matches, err := di.ResolveAs[*dynamostore.MatchRepository](ctx, res, di.KeyMatchRepository)
		if err != nil {
			return nil, err
		}
		return dynamostore.NewUnitOfWork(client, tournaments, matches, logger), nil
	})
}

func resolveDynamoDeps(ctx context.Context, res di.Resolver) (*dynamodb.Client, *zap.Logger, error) {
	client, err := di.ResolveAs[*dynamodb.Client](ctx, res, di.KeyDynamoDBClient)
	if err != nil {
		return nil, nil, err
	}
	logger, err := di.ResolveAs[*zap.Logger](ctx, res, di.KeyLogger)
	if err != nil {
		return nil, nil, err
	}
	return client, logger, nil
}
