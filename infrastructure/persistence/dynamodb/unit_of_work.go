package dynamodb

import (
	"context"
	"fmt"
	"sync"

	"tournament-backend/application/ports"
	"tournament-backend/domain/core/entities"
	"tournament-backend/domain/core/valueobjects"
	pkgerrors "tournament-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// UnitOfWork implements ports.UnitOfWork on DynamoDB transactions. Writes
// issued through the transactional repositories are collected and committed
// with a single TransactWriteItems call.
type UnitOfWork struct {
	client      *dynamodb.Client
	tournaments *TournamentRepository
	matches     *MatchRepository
	logger      *zap.Logger

	mu            sync.Mutex
	inTransaction bool
	transactItems []types.TransactWriteItem
}

// NewUnitOfWork creates a unit of work over the given repositories
func NewUnitOfWork(
	client *dynamodb.Client,
	tournaments *TournamentRepository,
	matches *MatchRepository,
	logger *zap.Logger,
) *UnitOfWork {
	return &UnitOfWork{
		client:      client,
		tournaments: tournaments,
		matches:     matches,
		logger:      logger,
	}
}

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// Begin starts a new transaction
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	if uow.inTransaction {
		return fmt.Errorf("transaction already in progress")
	}
	uow.inTransaction = true
	uow.transactItems = nil
	return nil
}

// Commit writes all registered items in a single transaction
func (uow *UnitOfWork) Commit(ctx context.Context) error {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	if !uow.inTransaction {
		return fmt.Errorf("no transaction in progress")
	}

	items := uow.transactItems
	uow.inTransaction = false
	uow.transactItems = nil

	if len(items) == 0 {
		return nil
	}

	if _, err := uow.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	}); err != nil {
		uow.logger.Error("Transaction commit failed",
			zap.Error(err),
			zap.Int("items", len(items)),
		)
		return pkgerrors.NewDatabaseError("commit transaction", err)
	}

	uow.logger.Debug("Transaction committed", zap.Int("items", len(items)))
	return nil
}

// Rollback discards all registered items
func (uow *UnitOfWork) Rollback() error {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	uow.inTransaction = false
	uow.transactItems = nil
	return nil
}

// TournamentRepository returns the transactional tournament repository
func (uow *UnitOfWork) TournamentRepository() ports.TournamentRepository {
	return &txTournamentRepository{uow: uow}
}

// MatchRepository returns the transactional match repository
func (uow *UnitOfWork) MatchRepository() ports.MatchRepository {
	return &txMatchRepository{uow: uow}
}

// register appends items to the pending transaction
func (uow *UnitOfWork) register(items ...types.TransactWriteItem) error {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	if !uow.inTransaction {
		return fmt.Errorf("no transaction in progress")
	}
	uow.transactItems = append(uow.transactItems, items...)
	return nil
}

// txTournamentRepository registers writes with the transaction and reads
// through to the store
type txTournamentRepository struct {
	uow *UnitOfWork
}

func (r *txTournamentRepository) Save(ctx context.Context, tournament *entities.Tournament) error {
	item, err := r.uow.tournaments.putTransactItem(tournament)
	if err != nil {
		return err
	}
	return r.uow.register(item)
}

func (r *txTournamentRepository) GetByID(ctx context.Context, id valueobjects.TournamentID) (*entities.Tournament, error) {
	return r.uow.tournaments.GetByID(ctx, id)
}

func (r *txTournamentRepository) Delete(ctx context.Context, id valueobjects.TournamentID) error {
	return r.uow.register(types.TransactWriteItem{
		Delete: &types.Delete{
			TableName: &r.uow.tournaments.tableName,
			Key: map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: tournamentPK(id)},
				"SK": &types.AttributeValueMemberS{Value: "METADATA"},
			},
		},
	})
}

// txMatchRepository registers writes with the transaction and reads
// through to the store
type txMatchRepository struct {
	uow *UnitOfWork
}

func (r *txMatchRepository) Save(ctx context.Context, match *entities.Match) error {
	item, err := r.uow.matches.putTransactItem(match)
	if err != nil {
		return err
	}
	return r.uow.register(item)
}

func (r *txMatchRepository) SaveBatch(ctx context.Context, matches []*entities.Match) error {
	items := make([]types.TransactWriteItem, 0, len(matches))
	for _, match := range matches {
		item, err := r.uow.matches.putTransactItem(match)
		if err != nil {
			return err
		}
		items = append(items, item)
	}
	return r.uow.register(items...)
}

func (r *txMatchRepository) GetByID(ctx context.Context, id valueobjects.MatchID) (*entities.Match, error) {
	return r.uow.matches.GetByID(ctx, id)
}

func (r *txMatchRepository) GetByTournamentID(ctx context.Context, tournamentID valueobjects.TournamentID) ([]*entities.Match, error) {
	return r.uow.matches.GetByTournamentID(ctx, tournamentID)
}
