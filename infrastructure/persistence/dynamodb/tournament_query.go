package dynamodb

import (
	"context"
	"fmt"
	"time"

	"tournament-backend/application/queries"
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

// TournamentQuery implements queries.TournamentQuery on DynamoDB
type TournamentQuery struct {
	client      *dynamodb.Client
	tableName   string
	tournaments *TournamentRepository
	matches     *MatchRepository
	logger      *zap.Logger
}

// NewTournamentQuery creates a query adapter over the given repositories
func NewTournamentQuery(
	client *dynamodb.Client,
	tableName string,
	tournaments *TournamentRepository,
	matches *MatchRepository,
	logger *zap.Logger,
) *TournamentQuery {
	return &TournamentQuery{
		client:      client,
		tableName:   tableName,
		tournaments: tournaments,
		matches:     matches,
		logger:      logger,
	}
}

var _ queries.TournamentQuery = (*TournamentQuery)(nil)

// GetByID retrieves a single tournament view including its matches
func (q *TournamentQuery) GetByID(ctx context.Context, tournamentID string) (*queries.TournamentView, error) {
	id, err := valueobjects.NewTournamentIDFromString(tournamentID)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	tournament, err := q.tournaments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	matches, err := q.matches.GetByTournamentID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := entityToView(tournament)
	view.Matches = make([]queries.MatchView, len(matches))
	for i, match := range matches {
		view.Matches[i] = matchToView(match)
	}
	return &view, nil
}

// List scans for tournament metadata items matching the criteria. Listing
// is a scan on the single-table design; acceptable at this data volume.
func (q *TournamentQuery) List(ctx context.Context, criteria queries.ListCriteria) ([]queries.TournamentView, error) {
	filter := expression.Name("EntityType").Equal(expression.Value("TOURNAMENT"))
	if criteria.Status != "" {
		filter = filter.And(expression.Name("Status").Equal(expression.Value(criteria.Status)))
	}
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build list filter: %w", err)
	}

	views := make([]queries.TournamentView, 0)
	var startKey map[string]types.AttributeValue
	for {
		result, err := q.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(q.tableName),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("list tournaments", err)
		}

		for _, raw := range result.Items {
			var item tournamentItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, fmt.Errorf("failed to unmarshal tournament: %w", err)
			}
			tournament, err := item.toEntity()
			if err != nil {
				return nil, err
			}
			views = append(views, entityToView(tournament))
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	if criteria.Offset > 0 {
		if criteria.Offset >= len(views) {
			return []queries.TournamentView{}, nil
		}
		views = views[criteria.Offset:]
	}
	if criteria.Limit > 0 && criteria.Limit < len(views) {
		views = views[:criteria.Limit]
	}
	return views, nil
}

func entityToView(t *entities.Tournament) queries.TournamentView {
	entrants := t.Entrants()
	entrantIDs := make([]string, len(entrants))
	for i, entrant := range entrants {
		entrantIDs[i] = entrant.String()
	}

	view := queries.TournamentView{
		ID:           t.ID().String(),
		Name:         t.Name(),
		Format:       string(t.Format()),
		Status:       string(t.Status()),
		Capacity:     t.Capacity(),
		EntrantCount: len(entrants),
		Entrants:     entrantIDs,
		CreatedAt:    t.CreatedAt().Format(time.RFC3339),
		UpdatedAt:    t.UpdatedAt().Format(time.RFC3339),
	}
	if !t.Winner().IsZero() {
		view.WinnerID = t.Winner().String()
	}
	return view
}

func matchToView(m *entities.Match) queries.MatchView {
	view := queries.MatchView{
		ID:           m.ID().String(),
		TournamentID: m.TournamentID().String(),
		Round:        m.Round(),
		HomeID:       m.Home().String(),
		AwayID:       m.Away().String(),
		Status:       string(m.Status()),
	}
	if !m.Winner().IsZero() {
		view.WinnerID = m.Winner().String()
	}
	return view
}
