package app

import (
	"context"
	"encoding/base64"
	"errors"

	"github.com/google/uuid"

	"github.com/bootyhunt/server/internal/adapters/repository"
	"github.com/bootyhunt/server/internal/domain/rotation"
	"github.com/bootyhunt/server/internal/domain/rules"
	"github.com/bootyhunt/server/pkg/fault"
	"github.com/bootyhunt/server/pkg/logger"
	"github.com/bootyhunt/server/pkg/metrics"
)

// endsAtLayout matches the wire format of regatta end timestamps.
const endsAtLayout = "2006-01-02T15:04:05Z"

// SubmitRun validates and persists one game run and returns its rank
// snapshot: 1 plus the count of already-persisted runs scoring strictly
// higher. Ties share the rank of the highest member; later submissions
// never revise it.
func (s *Service) SubmitRun(ctx context.Context, sub RunSubmission) (SubmitResult, error) {
	if err := rules.ValidateShipClass(sub.ShipClass); err != nil {
		metrics.RecordRunRejected()
		return SubmitResult{}, err
	}
	if err := rules.ValidateScore(sub.Score); err != nil {
		metrics.RecordRunRejected()
		return SubmitResult{}, err
	}
	playerName := rules.NormalizePlayerName(sub.PlayerName)

	var tape []byte
	if sub.GhostTape != nil && *sub.GhostTape != "" {
		decoded, err := base64.StdEncoding.DecodeString(*sub.GhostTape)
		if err != nil {
			metrics.RecordRunRejected()
			return SubmitResult{}, fault.Validationf("invalid ghost tape encoding")
		}
		if err := rules.ValidateGhostTape(decoded); err != nil {
			metrics.RecordRunRejected()
			return SubmitResult{}, err
		}
		tape = decoded
	}

	now := s.now().UTC()
	run := &repository.Run{
		ID:             uuid.NewString(),
		Seed:           sub.Seed,
		ShipClass:      sub.ShipClass,
		DoctrineID:     sub.DoctrineID,
		Score:          sub.Score,
		Waves:          sub.Waves,
		Victory:        sub.Victory,
		ShipsDestroyed: sub.ShipsDestroyed,
		DamageDealt:    sub.DamageDealt,
		MaxCombo:       sub.MaxCombo,
		TimePlayed:     sub.TimePlayed,
		MaxHeat:        sub.MaxHeat,
		GhostTape:      tape,
		PlayerName:     playerName,
		WeekKey:        rotation.KeyAt(now),
		CreatedAt:      now,
	}
	if err := s.store.InsertRun(ctx, run); err != nil {
		return SubmitResult{}, fault.Wrap(fault.Storage, err, "persist run")
	}

	above, err := s.store.CountRunsScoringAbove(ctx, sub.Score)
	if err != nil {
		return SubmitResult{}, fault.Wrap(fault.Storage, err, "rank run")
	}

	metrics.RecordRunSubmitted()
	s.log.Debug(ctx, "run submitted",
		logger.String("run_id", run.ID),
		logger.Int64("score", run.Score),
		logger.String("week_key", run.WeekKey),
		logger.Int64("rank", above+1),
	)
	return SubmitResult{ID: run.ID, Rank: above + 1}, nil
}

// Leaderboard returns a filtered, score-descending view. Category "weekly"
// scopes to the current week, "seed" to a required caller-supplied seed;
// anything else is the unfiltered global view.
func (s *Service) Leaderboard(ctx context.Context, category string, seed *int64, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	filter := repository.RunFilter{Limit: limit}
	switch category {
	case rules.CategoryWeekly:
		filter.WeekKey = rotation.KeyAt(s.now())
	case rules.CategorySeed:
		if seed == nil {
			return nil, fault.Validationf("seed required for seed category")
		}
		filter.Seed = seed
	default:
		// Global: no filter.
	}

	runs, err := s.store.TopRuns(ctx, filter)
	if err != nil {
		return nil, fault.Wrap(fault.Storage, err, "query leaderboard")
	}
	return toEntries(runs), nil
}

// GhostTape returns the replay payload attached to a run. A missing run
// and a run without a tape surface the same not-found kind with
// distinguishable messages.
func (s *Service) GhostTape(ctx context.Context, runID string) ([]byte, error) {
	run, err := s.store.GetRun(ctx, runID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fault.NotFoundf("run not found")
	}
	if err != nil {
		return nil, fault.Wrap(fault.Storage, err, "fetch run")
	}
	if len(run.GhostTape) == 0 {
		return nil, fault.NotFoundf("ghost tape not found for this run")
	}
	return run.GhostTape, nil
}

// Regatta materializes the current week's regatta: the stored deterministic
// seed (created on first access), the week end boundary, and the top runs
// scoped to both seed and week.
func (s *Service) Regatta(ctx context.Context) (RegattaInfo, error) {
	now := s.now().UTC()
	weekKey := rotation.KeyAt(now)

	seed, err := s.store.EnsureRegattaSeed(ctx, weekKey, rotation.Seed(weekKey))
	if err != nil {
		return RegattaInfo{}, fault.Wrap(fault.Storage, err, "ensure regatta seed")
	}

	runs, err := s.store.TopRuns(ctx, repository.RunFilter{
		WeekKey: weekKey,
		Seed:    &seed,
		Limit:   s.regattaTopN,
	})
	if err != nil {
		return RegattaInfo{}, fault.Wrap(fault.Storage, err, "query regatta runs")
	}

	metrics.RecordRegattaFetch()
	return RegattaInfo{
		WeekKey: weekKey,
		Seed:    seed,
		EndsAt:  rotation.WeekEnd(now).Format(endsAtLayout),
		TopRuns: toEntries(runs),
	}, nil
}

func toEntries(runs []repository.Run) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(runs))
	for _, r := range runs {
		entries = append(entries, LeaderboardEntry{
			ID:             r.ID,
			PlayerName:     r.PlayerName,
			Score:          r.Score,
			Waves:          r.Waves,
			Victory:        r.Victory,
			ShipClass:      r.ShipClass,
			DoctrineID:     r.DoctrineID,
			ShipsDestroyed: r.ShipsDestroyed,
			TimePlayed:     r.TimePlayed,
			MaxHeat:        r.MaxHeat,
			CreatedAt:      r.CreatedAt,
		})
	}
	return entries
}
