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
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// MatchRepository implements ports.MatchRepository using DynamoDB. Matches
// live under their tournament partition; GSI1 serves direct ID lookups.
type MatchRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) *MatchRepository {
	return &MatchRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

var _ ports.MatchRepository = (*MatchRepository)(nil)

// matchItem represents the DynamoDB item structure for a match
type matchItem struct {
	PK           string `dynamodbav:"PK"`
	SK           string `dynamodbav:"SK"`
	GSI1PK       string `dynamodbav:"GSI1PK"`
	GSI1SK       string `dynamodbav:"GSI1SK"`
	EntityType   string `dynamodbav:"EntityType"`
	MatchID      string `dynamodbav:"MatchID"`
	TournamentID string `dynamodbav:"TournamentID"`
	Round        int    `dynamodbav:"Round"`
	HomeID       string `dynamodbav:"HomeID"`
	AwayID       string `dynamodbav:"AwayID"`
	WinnerID     string `dynamodbav:"WinnerID,omitempty"`
	Status       string `dynamodbav:"Status"`
	CreatedAt    string `dynamodbav:"CreatedAt"`
	UpdatedAt    string `dynamodbav:"UpdatedAt"`
	Version      int    `dynamodbav:"Version"`
}

func toMatchItem(m *entities.Match) matchItem {
	item := matchItem{
		PK:           tournamentPK(m.TournamentID()),
		SK:           fmt.Sprintf("MATCH#%02d#%s", m.Round(), m.ID().String()),
		GSI1PK:       fmt.Sprintf("MATCH#%s", m.ID().String()),
		GSI1SK:       "METADATA",
		EntityType:   "MATCH",
		MatchID:      m.ID().String(),
		TournamentID: m.TournamentID().String(),
		Round:        m.Round(),
		HomeID:       m.Home().String(),
		AwayID:       m.Away().String(),
		Status:       string(m.Status()),
		CreatedAt:    m.CreatedAt().Format(time.RFC3339Nano),
		UpdatedAt:    m.UpdatedAt().Format(time.RFC3339Nano),
		Version:      m.Version(),
	}
	if !m.Winner().IsZero() {
		item.WinnerID = m.Winner().String()
	}
	return item
}

func (item matchItem) toEntity() (*entities.Match, error) {
	id, err := valueobjects.NewMatchIDFromString(item.MatchID)
	if err != nil {
		return nil, fmt.Errorf("invalid match ID in item: %w", err)
	}
	tournamentID, err := valueobjects.NewTournamentIDFromString(item.TournamentID)
	if err != nil {
		return nil, fmt.Errorf("invalid tournament ID in item: %w", err)
	}
	home, err := valueobjects.NewPlayerIDFromString(item.HomeID)
	if err != nil {
		return nil, fmt.Errorf("invalid home player ID in item: %w", err)
	}
	away, err := valueobjects.NewPlayerIDFromString(item.AwayID)
	if err != nil {
		return nil, fmt.Errorf("invalid away player ID in item: %w", err)
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

	return entities.ReconstructMatch(
		id,
		tournamentID,
		item.Round,
		home,
		away,
		winner,
		entities.MatchStatus(item.Status),
		createdAt,
		updatedAt,
		item.Version,
	), nil
}

// Save persists a match to DynamoDB
func (r *MatchRepository) Save(ctx context.Context, match *entities.Match) error {
	av, err := attributevalue.MarshalMap(toMatchItem(match))
	if err != nil {
		return fmt.Errorf("failed to marshal match: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		r.logger.Error("Failed to save match",
			zap.Error(err),
			zap.String("matchID", match.ID().String()),
		)
		return pkgerrors.NewDatabaseError("save match", err)
	}
	return nil
}

// SaveBatch persists a set of matches in one transaction
func (r *MatchRepository) SaveBatch(ctx context.Context, matches []*entities.Match) error {
	if len(matches) == 0 {
		return nil
	}

	items := make([]types.TransactWriteItem, 0, len(matches))
	for _, match := range matches {
		item, err := r.putTransactItem(match)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	if _, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	}); err != nil {
		r.logger.Error("Failed to save match batch",
			zap.Error(err),
			zap.Int("count", len(matches)),
		)
		return pkgerrors.NewDatabaseError("save match batch", err)
	}
	return nil
}

// GetByID retrieves a match via the GSI1 lookup index
func (r *MatchRepository) GetByID(ctx context.Context, id valueobjects.MatchID) (*entities.Match, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(fmt.Sprintf("MATCH#%s", id.String())))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build match query: %w", err)
	}

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(matchIndexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get match", err)
	}
	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("match")
	}

	var item matchItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}
	return item.toEntity()
}

// GetByTournamentID retrieves all matches of a tournament ordered by round
func (r *MatchRepository) GetByTournamentID(ctx context.Context, tournamentID valueobjects.TournamentID) ([]*entities.Match, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(tournamentPK(tournamentID))).
		And(expression.Key("SK").BeginsWith("MATCH#"))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build match query: %w", err)
	}

	matches := make([]*entities.Match, 0)
	var startKey map[string]types.AttributeValue
	for {
		result, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("query matches", err)
		}

		for _, raw := range result.Items {
			var item matchItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, fmt.Errorf("failed to unmarshal match: %w", err)
			}
			match, err := item.toEntity()
			if err != nil {
				return nil, err
			}
			matches = append(matches, match)
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}
	return matches, nil
}

// putTransactItem builds a transactional put for the unit of work
func (r *MatchRepository) putTransactItem(match *entities.Match) (types.TransactWriteItem, error) {
	av, err := attributevalue.MarshalMap(toMatchItem(match))
	if err != nil {
		return types.TransactWriteItem{}, fmt.Errorf("failed to marshal match: %w", err)
	}
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName: aws.String(r.tableName),
			Item:      av,
		},
	}, nil
}
