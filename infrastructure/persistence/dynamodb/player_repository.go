package dynamodb

import (
	"context"
	"fmt"
	"time"

	"tournament-backend/application/ports"
	"tournament-backend/domain/core/entities"
	"tournament-backend/domain/core/valueobjects"
	pkgerrors "tournament-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// PlayerRepository implements ports.PlayerRepository using DynamoDB
type PlayerRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) *PlayerRepository {
	return &PlayerRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

var _ ports.PlayerRepository = (*PlayerRepository)(nil)

// playerItem represents the DynamoDB item structure for a player
type playerItem struct {
	PK          string `dynamodbav:"PK"`
	SK          string `dynamodbav:"SK"`
	EntityType  string `dynamodbav:"EntityType"`
	PlayerID    string `dynamodbav:"PlayerID"`
	DisplayName string `dynamodbav:"DisplayName"`
	Rating      int    `dynamodbav:"Rating"`
	CreatedAt   string `dynamodbav:"CreatedAt"`
	UpdatedAt   string `dynamodbav:"UpdatedAt"`
	Version     int    `dynamodbav:"Version"`
}

func playerPK(id valueobjects.PlayerID) string {
	return fmt.Sprintf("PLAYER#%s", id.String())
}

func (item playerItem) toEntity() (*entities.Player, error) {
	id, err := valueobjects.NewPlayerIDFromString(item.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("invalid player ID in item: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid CreatedAt in item: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid UpdatedAt in item: %w", err)
	}
	return entities.ReconstructPlayer(id, item.DisplayName, item.Rating, createdAt, updatedAt, item.Version), nil
}

// Save persists a player to DynamoDB
func (r *PlayerRepository) Save(ctx context.Context, player *entities.Player) error {
	item := playerItem{
		PK:          playerPK(player.ID()),
		SK:          "METADATA",
		EntityType:  "PLAYER",
		PlayerID:    player.ID().String(),
		DisplayName: player.DisplayName(),
		Rating:      player.Rating(),
		CreatedAt:   player.CreatedAt().Format(time.RFC3339Nano),
		UpdatedAt:   player.UpdatedAt().Format(time.RFC3339Nano),
		Version:     player.Version(),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		r.logger.Error("Failed to save player",
			zap.Error(err),
			zap.String("playerID", player.ID().String()),
		)
		return pkgerrors.NewDatabaseError("save player", err)
	}
	return nil
}

// GetByID retrieves a player by its ID
func (r *PlayerRepository) GetByID(ctx context.Context, id valueobjects.PlayerID) (*entities.Player, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: playerPK(id)},
			"SK": &types.AttributeValueMemberS{Value: "METADATA"},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get player", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("player")
	}

	var item playerItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player: %w", err)
	}
	return item.toEntity()
}

// GetByIDs retrieves multiple players; a single missing player fails the call
func (r *PlayerRepository) GetByIDs(ctx context.Context, ids []valueobjects.PlayerID) ([]*entities.Player, error) {
	players := make([]*entities.Player, 0, len(ids))
	for _, id := range ids {
		player, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, nil
}
