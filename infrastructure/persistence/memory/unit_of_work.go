package memory

import (
	"context"
	"fmt"
	"sync"

	"tournament-backend/application/ports"
	"tournament-backend/domain/core/entities"
	"tournament-backend/domain/core/valueobjects"
)

// UnitOfWork implements ports.UnitOfWork over the in-memory repositories.
// Writes issued through the transactional repositories are staged and only
// applied to the underlying stores on Commit.
type UnitOfWork struct {
	tournaments *TournamentRepository
	matches     *MatchRepository

	mu            sync.Mutex
	inTransaction bool
	staged        []func(ctx context.Context) error
}

// NewUnitOfWork creates a unit of work over the given repositories
func NewUnitOfWork(tournaments *TournamentRepository, matches *MatchRepository) *UnitOfWork {
	return &UnitOfWork{
		tournaments: tournaments,
		matches:     matches,
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
	uow.staged = nil
	return nil
}

// Commit applies all staged writes
func (uow *UnitOfWork) Commit(ctx context.Context) error {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	if !uow.inTransaction {
		return fmt.Errorf("no transaction in progress")
	}

	for _, apply := range uow.staged {
		if err := apply(ctx); err != nil {
			uow.inTransaction = false
			uow.staged = nil
			return err
		}
	}

	uow.inTransaction = false
	uow.staged = nil
	return nil
}

// Rollback discards all staged writes
func (uow *UnitOfWork) Rollback() error {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	uow.inTransaction = false
	uow.staged = nil
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

// stage appends a deferred write; fails outside a transaction
func (uow *UnitOfWork) stage(apply func(ctx context.Context) error) error {
	uow.mu.Lock()
	defer uow.mu.Unlock()

	if !uow.inTransaction {
		return fmt.Errorf("no transaction in progress")
	}
	uow.staged = append(uow.staged, apply)
	return nil
}

// txTournamentRepository stages writes and reads through to the store
type txTournamentRepository struct {
	uow *UnitOfWork
}

func (r *txTournamentRepository) Save(ctx context.Context, tournament *entities.Tournament) error {
	snapshot := snapshotTournament(tournament)
	return r.uow.stage(func(ctx context.Context) error {
		return r.uow.tournaments.Save(ctx, snapshot)
	})
}

func (r *txTournamentRepository) GetByID(ctx context.Context, id valueobjects.TournamentID) (*entities.Tournament, error) {
	return r.uow.tournaments.GetByID(ctx, id)
}

func (r *txTournamentRepository) Delete(ctx context.Context, id valueobjects.TournamentID) error {
	return r.uow.stage(func(ctx context.Context) error {
		return r.uow.tournaments.Delete(ctx, id)
	})
}

// txMatchRepository stages writes and reads through to the store
type txMatchRepository struct {
	uow *UnitOfWork
}

func (r *txMatchRepository) Save(ctx context.Context, match *entities.Match) error {
	snapshot := snapshotMatch(match)
	return r.uow.stage(func(ctx context.Context) error {
		return r.uow.matches.Save(ctx, snapshot)
	})
}

func (r *txMatchRepository) SaveBatch(ctx context.Context, matches []*entities.Match) error {
	snapshots := make([]*entities.Match, len(matches))
	for i, match := range matches {
		snapshots[i] = snapshotMatch(match)
	}
	return r.uow.stage(func(ctx context.Context) error {
		return r.uow.matches.SaveBatch(ctx, snapshots)
	})
}

func (r *txMatchRepository) GetByID(ctx context.Context, id valueobjects.MatchID) (*entities.Match, error) {
	return r.uow.matches.GetByID(ctx, id)
}

func (r *txMatchRepository) GetByTournamentID(ctx context.Context, tournamentID valueobjects.TournamentID) ([]*entities.Match, error) {
	return r.uow.matches.GetByTournamentID(ctx, tournamentID)
}
