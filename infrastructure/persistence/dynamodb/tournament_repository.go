// Package dynamodb implements the persistence ports on a single DynamoDB
// table. Tournaments and players are metadata items; matches are stored
// under their tournament partition with a GSI for direct lookups.
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

const matchIndexName = "GSI1"

// TournamentRepository implements ports.TournamentRepository using DynamoDB
type TournamentRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewTournamentRepository creates a new tournament repository
func NewTournamentRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) *TournamentRepository {
	return &TournamentRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

var _ ports.TournamentRepository = (*TournamentRepository)(nil)

// tournamentItem represents the DynamoDB item structure for a tournament
type tournamentItem struct {
	PK           string   `dynamodbav:"PK"`
	SK           string   `dynamodbav:"SK"`
	EntityType   string   `dynamodbav:"EntityType"`
	TournamentID string   `dynamodbav:"TournamentID"`
	Name         string   `dynamodbav:"Name"`
	Format       string   `dynamodbav:"Format"`
	Status       string   `dynamodbav:"Status"`
	Capacity     int      `dynamodbav:"Capacity"`
	Entrants     []string `dynamodbav:"Entrants"`
	WinnerID     string   `dynamodbav:"WinnerID,omitempty"`
	CreatedAt    string   `dynamodbav:"CreatedAt"`
	UpdatedAt    string   `dynamodbav:"UpdatedAt"`
	Version      int      `dynamodbav:"Version"`
}

func tournamentPK(id valueobjects.TournamentID) string {
	return fmt.Sprintf("TOURNAMENT#%s", id.String())
}

// toItem maps a tournament entity onto its DynamoDB item
func toTournamentItem(t *entities.Tournament) tournamentItem {
	entrants := t.Entrants()
	entrantIDs := make([]string, len(entrants))
	for i, entrant := range entrants {
		entrantIDs[i] = entrant.String()
	}

	item := tournamentItem{
		PK:           tournamentPK(t.ID()),
		SK:           "METADATA",
		EntityType:   "TOURNAMENT",
		TournamentID: t.ID().String(),
		Name:         t.Name(),
		Format:       string(t.Format()),
		Status:       string(t.Status()),
		Capacity:     t.Capacity(),
		Entrants:     entrantIDs,
		CreatedAt:    t.CreatedAt().Format(time.RFC3339Nano),
		UpdatedAt:    t.UpdatedAt().Format(time.RFC3339Nano),
		Version:      t.Version(),
	}
	if !t.Winner().IsZero() {
		item.WinnerID = t.Winner().String()
	}
	return item
}

// toEntity rebuilds a tournament entity from its DynamoDB item
func (item tournamentItem) toEntity() (*entities.Tournament, error) {
	id, err := valueobjects.NewTournamentIDFromString(item.TournamentID)
	if err != nil {
		return nil, fmt.Errorf("invalid tournament ID in item: %w", err)
	}

	entrants := make([]valueobjects.PlayerID, 0, len(item.Entrants))
	for _, raw := range item.Entrants {
		entrant, err := valueobjects.NewPlayerIDFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid entrant ID in item: %w", err)
		}
		entrants = append(entrants, entrant)
	}

	var winner valueobjects.PlayerID
	if item.WinnerID != "" {
		winner, err = valueobjects.NewPlayerIDFromString(item.WinnerID)
		if err != nil {
			return nil, fmt.Errorf("invalid winner ID in item: %w", err)
		}
	}

	createdAt, err := time.Parse(time.RFC3339Nano, item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid CreatedAt in item: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid UpdatedAt in item: %w", err)
	}

	return entities.ReconstructTournament(
		id,
		item.Name,
		entities.TournamentFormat(item.Format),
		entities.TournamentStatus(item.Status),
		item.Capacity,
		entrants,
		winner,
		createdAt,
		updatedAt,
		item.Version,
	), nil
}

// Save persists a tournament to DynamoDB
func (r *TournamentRepository) Save(ctx context.Context, tournament *entities.Tournament) error {
	av, err := attributevalue.MarshalMap(toTournamentItem(tournament))
	if err != nil {
		return fmt.Errorf("failed to marshal tournament: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("Failed to save tournament",
			zap.Error(err),
			zap.String("tournamentID", tournament.ID().String()),
		)
		return pkgerrors.NewDatabaseError("save tournament", err)
	}

	r.logger.Debug("Saved tournament",
		zap.String("tournamentID", tournament.ID().String()),
		zap.String("status", string(tournament.Status())),
	)
	return nil
}

// GetByID retrieves a tournament by its ID
func (r *TournamentRepository) GetByID(ctx context.Context, id valueobjects.TournamentID) (*entities.Tournament, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: tournamentPK(id)},
			"SK": &types.AttributeValueMemberS{Value: "METADATA"},
		},
	}

	result, err := r.client.GetItem(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get tournament", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("tournament")
	}

	var item tournamentItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tournament: %w", err)
	}
	return item.toEntity()
}

// Delete removes a tournament
func (r *TournamentRepository) Delete(ctx context.Context, id valueobjects.TournamentID) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: tournamentPK(id)},
			"SK": &types.AttributeValueMemberS{Value: "METADATA"},
		},
	}

	if _, err := r.client.DeleteItem(ctx, input); err != nil {
		return pkgerrors.NewDatabaseError("delete tournament", err)
	}
	return nil
}

// putTransactItem builds a transactional put for the unit of work
func (r *TournamentRepository) putTransactItem(tournament *entities.Tournament) (types.TransactWriteItem, error) {
	av, err := attributevalue.MarshalMap(toTournamentItem(tournament))
	if err != nil {
		return types.TransactWriteItem{}, fmt.Errorf("failed to marshal tournament: %w", err)
	}
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName: aws.String(r.tableName),
			Item:      av,
		},
	}, nil
}
