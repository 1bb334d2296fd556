package usecase

import (
	"context"

	"tournament-backend/application/ports"
	"tournament-backend/domain/core/entities"
	"tournament-backend/domain/core/valueobjects"
	pkgerrors "tournament-backend/pkg/errors"
)

// ReportMatchResultInput carries the data needed to record a match result
type ReportMatchResultInput struct {
	MatchID  string
	WinnerID string
}

// ReportMatchResultOutput is the result of recording a match result
type ReportMatchResultOutput struct {
	MatchID            string
	TournamentID       string
	TournamentFinished bool
	TournamentWinnerID string
}

// ReportMatchResult records a match winner and completes the tournament
// once every match has been played
type ReportMatchResult struct {
	tournaments ports.TournamentRepository
	matches     ports.MatchRepository
	uow         ports.UnitOfWork
	publisher   ports.EventPublisher
}

// NewReportMatchResult wires the use case with its dependencies
func NewReportMatchResult(
	tournaments ports.TournamentRepository,
	matches ports.MatchRepository,
	uow ports.UnitOfWork,
	publisher ports.EventPublisher,
) *ReportMatchResult {
	return &ReportMatchResult{
		tournaments: tournaments,
		matches:     matches,
		uow:         uow,
		publisher:   publisher,
	}
}

// Execute runs the use case
func (uc *ReportMatchResult) Execute(ctx context.Context, input ReportMatchResultInput) (*ReportMatchResultOutput, error) {
	matchID, err := valueobjects.NewMatchIDFromString(input.MatchID)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}
	winnerID, err := valueobjects.NewPlayerIDFromString(input.WinnerID)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	if err := uc.uow.Begin(ctx); err != nil {
		return nil, err
	}

	match, err := uc.matches.GetByID(ctx, matchID)
	if err != nil {
		uc.uow.Rollback()
		return nil, err
	}

	if err := match.ReportResult(winnerID); err != nil {
		uc.uow.Rollback()
		return nil, err
	}

	if err := uc.uow.MatchRepository().Save(ctx, match); err != nil {
		uc.uow.Rollback()
		return nil, err
	}

	tournament, finished, err := uc.maybeCompleteTournament(ctx, match)
	if err != nil {
		uc.uow.Rollback()
		return nil, err
	}

	if err := uc.uow.Commit(ctx); err != nil {
		return nil, err
	}

	pending := match.GetUncommittedEvents()
	if tournament != nil {
		pending = append(pending, tournament.GetUncommittedEvents()...)
	}
	if err := uc.publisher.PublishBatch(ctx, pending); err != nil {
		return nil, err
	}
	match.MarkEventsAsCommitted()
	if tournament != nil {
		tournament.MarkEventsAsCommitted()
	}

	out := &ReportMatchResultOutput{
		MatchID:            match.ID().String(),
		TournamentID:       match.TournamentID().String(),
		TournamentFinished: finished,
	}
	if finished {
		out.TournamentWinnerID = tournament.Winner().String()
	}
	return out, nil
}

// maybeCompleteTournament finishes the tournament once all matches are
// played. The winner is the player with the most match wins; the most
// recently reported winner breaks ties.
func (uc *ReportMatchResult) maybeCompleteTournament(ctx context.Context, match *entities.Match) (*entities.Tournament, bool, error) {
	all, err := uc.matches.GetByTournamentID(ctx, match.TournamentID())
	if err != nil {
		return nil, false, err
	}

	wins := make(map[string]int)
	for _, m := range all {
		// The freshly reported result is staged but not yet committed, so
		// the store may still hold the pending version of this match.
		if m.ID().Equals(match.ID()) {
			m = match
		}
		if m.Status() != entities.MatchFinished {
			return nil, false, nil
		}
		wins[m.Winner().String()]++
	}

	champion := match.Winner()
	best := wins[champion.String()]
	for _, m := range all {
		if m.ID().Equals(match.ID()) {
			m = match
		}
		if w := wins[m.Winner().String()]; w > best {
			champion = m.Winner()
			best = w
		}
	}

	tournament, err := uc.tournaments.GetByID(ctx, match.TournamentID())
	if err != nil {
		return nil, false, err
	}
	if err := tournament.Complete(champion); err != nil {
		return nil, false, err
	}
	if err := uc.uow.TournamentRepository().Save(ctx, tournament); err != nil {
		return nil, false, err
	}
	return tournament, true, nil
}
