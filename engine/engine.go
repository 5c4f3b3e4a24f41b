// Package engine is the entry point the surrounding application calls.
// It wires seeding, bracket generation, advancement, standings, and draft
// construction together, working purely on supplied data: participants
// and configuration come in as values, updated structures and events go
// back out. Persisting any of it is the caller's job.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Sciphr/tourney-engine/brackets"
	"github.com/Sciphr/tourney-engine/draft"
	"github.com/Sciphr/tourney-engine/models"
	"github.com/Sciphr/tourney-engine/seeding"
	"github.com/Sciphr/tourney-engine/standings"
)

var ErrUnsupportedBracketType = errors.New("unsupported bracket type")

// BuildResult carries a freshly constructed bracket, its flattened
// match rows for persistence, and the events to dispatch.
type BuildResult struct {
	Bracket      *models.Bracket
	Participants []*models.Participant // seeded copies, seeds 1..N
	Matches      []*models.Match
	Events       []models.Event
}

// ScheduleResult is the round-robin counterpart of BuildResult.
type ScheduleResult struct {
	Schedule     *models.RoundRobinSchedule
	Participants []*models.Participant
	Matches      []*models.Match
	Events       []models.Event
}

type Engine interface {
	BuildBracket(ctx context.Context, cfg models.TournamentConfig, participants []*models.Participant) (*BuildResult, error)
	BuildSchedule(ctx context.Context, cfg models.TournamentConfig, participants []*models.Participant) (*ScheduleResult, error)
	AdvanceMatch(ctx context.Context, bracket *models.Bracket, matchUID string, winnerID int) ([]models.Event, error)
	ForfeitMatch(ctx context.Context, bracket *models.Bracket, matchUID string, forfeitingID int) ([]models.Event, error)
	Standings(ctx context.Context, matches []*models.Match, participants []*models.Participant) []*models.Standing
	NewDraft(ctx context.Context, matchUID string, cfg models.DraftSettings) (*draft.Engine, error)
}

type engine struct {
	logger     *slog.Logger
	advancer   *brackets.Advancer
	scheduler  *brackets.RoundRobinScheduler
	calculator *standings.Calculator
}

func New(logger *slog.Logger) Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &engine{
		logger:     logger,
		advancer:   brackets.NewAdvancer(),
		scheduler:  brackets.NewRoundRobinScheduler(),
		calculator: standings.NewCalculator(),
	}
}

func (e *engine) BuildBracket(ctx context.Context, cfg models.TournamentConfig, participants []*models.Participant) (*BuildResult, error) {
	seeded, err := e.seed(ctx, cfg, participants)
	if err != nil {
		return nil, err
	}

	var generator brackets.BracketGenerator
	switch cfg.Format.BracketType {
	case models.FormatSingleElimination:
		generator = brackets.NewSingleEliminationGenerator()
	case models.FormatDoubleElimination:
		generator = brackets.NewDoubleEliminationGenerator()
	case models.FormatRoundRobin:
		return nil, fmt.Errorf("%w: %q produces a schedule, not a bracket", ErrUnsupportedBracketType, cfg.Format.BracketType)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBracketType, cfg.Format.BracketType)
	}

	bracket, err := generator.GenerateBracket(ctx, brackets.GenerateBracketParams{
		TournamentID: cfg.TournamentID,
		Participants: seeded,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s bracket for tournament %d: %w", generator.GetName(), cfg.TournamentID, err)
	}

	e.logger.InfoContext(ctx, "bracket generated",
		slog.Int("tournament_id", cfg.TournamentID),
		slog.String("bracket_type", string(cfg.Format.BracketType)),
		slog.Int("participants", len(seeded)),
		slog.Int("bracket_size", bracket.Size),
		slog.Int("rounds", len(bracket.Rounds)))

	return &BuildResult{
		Bracket:      bracket,
		Participants: seeded,
		Matches:      bracket.AllMatches(),
		Events:       []models.Event{models.NewBracketRebuiltEvent(cfg.TournamentID)},
	}, nil
}

func (e *engine) BuildSchedule(ctx context.Context, cfg models.TournamentConfig, participants []*models.Participant) (*ScheduleResult, error) {
	if cfg.Format.BracketType != models.FormatRoundRobin {
		return nil, fmt.Errorf("%w: %q is not a round robin format", ErrUnsupportedBracketType, cfg.Format.BracketType)
	}

	settings, err := cfg.Format.GetRoundRobinSettings()
	if err != nil {
		return nil, fmt.Errorf("invalid round robin settings for tournament %d: %w", cfg.TournamentID, err)
	}

	seeded, err := e.seed(ctx, cfg, participants)
	if err != nil {
		return nil, err
	}

	schedule, err := e.scheduler.Schedule(ctx, brackets.ScheduleParams{
		TournamentID: cfg.TournamentID,
		Participants: seeded,
		Settings:     *settings,
		RngSeed:      cfg.Seeding.RngSeed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule round robin for tournament %d: %w", cfg.TournamentID, err)
	}

	e.logger.InfoContext(ctx, "round robin scheduled",
		slog.Int("tournament_id", cfg.TournamentID),
		slog.Int("participants", len(seeded)),
		slog.Int("passes", schedule.Passes),
		slog.Int("groups", len(schedule.Groups)),
		slog.Int("matches", len(schedule.AllMatches())))

	return &ScheduleResult{
		Schedule:     schedule,
		Participants: seeded,
		Matches:      schedule.AllMatches(),
		Events:       []models.Event{models.NewBracketRebuiltEvent(cfg.TournamentID)},
	}, nil
}

func (e *engine) seed(ctx context.Context, cfg models.TournamentConfig, participants []*models.Participant) ([]*models.Participant, error) {
	strategy, err := seeding.NewStrategy(cfg.Seeding.Strategy)
	if err != nil {
		return nil, err
	}
	seeded, err := strategy.AssignSeeds(ctx, participants, cfg.Seeding)
	if err != nil {
		return nil, fmt.Errorf("seeding failed for tournament %d with strategy %s: %w", cfg.TournamentID, strategy.GetName(), err)
	}
	return seeded, nil
}

func (e *engine) AdvanceMatch(ctx context.Context, bracket *models.Bracket, matchUID string, winnerID int) ([]models.Event, error) {
	events, err := e.advancer.Advance(ctx, bracket, matchUID, winnerID)
	if err != nil {
		return nil, err
	}
	e.logger.InfoContext(ctx, "match advanced",
		slog.Int("tournament_id", bracket.TournamentID),
		slog.String("match_uid", matchUID),
		slog.Int("winner_id", winnerID),
		slog.Int("events", len(events)))
	return events, nil
}

func (e *engine) ForfeitMatch(ctx context.Context, bracket *models.Bracket, matchUID string, forfeitingID int) ([]models.Event, error) {
	events, err := e.advancer.Forfeit(ctx, bracket, matchUID, forfeitingID)
	if err != nil {
		return nil, err
	}
	e.logger.InfoContext(ctx, "match forfeited",
		slog.Int("tournament_id", bracket.TournamentID),
		slog.String("match_uid", matchUID),
		slog.Int("forfeiting_id", forfeitingID))
	return events, nil
}

func (e *engine) Standings(ctx context.Context, matches []*models.Match, participants []*models.Participant) []*models.Standing {
	return e.calculator.Compute(matches, participants)
}

func (e *engine) NewDraft(ctx context.Context, matchUID string, cfg models.DraftSettings) (*draft.Engine, error) {
	d, err := draft.NewEngine(matchUID, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to configure draft for match %s: %w", matchUID, err)
	}
	e.logger.InfoContext(ctx, "draft configured",
		slog.String("match_uid", matchUID),
		slog.String("game_type", cfg.GameType),
		slog.Int("phases", len(cfg.Phases)))
	return d, nil
}
