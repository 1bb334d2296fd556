// Package messaging wires the event publisher port into the service registry
package messaging

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"tournament-backend/infrastructure/config"
	"tournament-backend/infrastructure/di"
	"tournament-backend/infrastructure/messaging/eventbridge"
	"tournament-backend/infrastructure/persistence/memory"
)

// AddEventPublisher registers the event publisher singleton. With events
// disabled an in-process recording publisher is bound so use cases can
// publish unconditionally.
func AddEventPublisher(cfg *config.Config) di.RegistrationFunc {
	return func(r *di.Registry) error {
		if !cfg.EnableEvents {
			return r.Register(di.KeyEventPublisher, di.Singleton, func(context.Context, di.Resolver) (interface{}, error) {
				return memory.NewEventPublisher(), nil
			})
		}

		return r.Register(di.KeyEventPublisher, di.Singleton, func(ctx context.Context, res di.Resolver) (interface{}, error) {
			logger, err := di.ResolveAs[*zap.Logger](ctx, res, di.KeyLogger)
			if err != nil {
				return nil, err
			}
			awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
			if err != nil {
				return nil, fmt.Errorf("failed to load AWS config: %w", err)
			}
			client := awseventbridge.NewFromConfig(awsCfg)
			return eventbridge.NewPublisher(client, cfg.EventBusName, logger), nil
		})
	}
}
