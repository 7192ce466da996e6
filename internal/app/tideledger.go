package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/bootyhunt/server/internal/adapters/repository"
	"github.com/bootyhunt/server/internal/domain/omen"
	"github.com/bootyhunt/server/internal/domain/rotation"
	"github.com/bootyhunt/server/pkg/fault"
	"github.com/bootyhunt/server/pkg/logger"
	"github.com/bootyhunt/server/pkg/metrics"
)

// CurrentOmen returns this week's tide omen, materializing it on first
// access. Concurrent first-of-week callers converge on whichever row the
// store kept.
func (s *Service) CurrentOmen(ctx context.Context) (OmenInfo, error) {
	weekKey := rotation.KeyAt(s.now())
	pick := omen.ForWeek(weekKey)

	row, err := s.store.EnsureTideOmen(ctx, &repository.TideOmen{
		WeekKey:   weekKey,
		OmenID:    pick.ID,
		OmenName:  pick.Name,
		Modifiers: pick.Modifiers,
	})
	if err != nil {
		return OmenInfo{}, fault.Wrap(fault.Storage, err, "ensure tide omen")
	}

	metrics.RecordOmenFetch()
	return OmenInfo{
		WeekKey:   row.WeekKey,
		OmenID:    row.OmenID,
		OmenName:  row.OmenName,
		Modifiers: map[string]any(row.Modifiers),
	}, nil
}

// ContributeTide appends one raw metric sample to the week's ledger. The
// core never reads contributions back.
func (s *Service) ContributeTide(ctx context.Context, metric string, value float64) (ContributeResult, error) {
	c := &repository.TideContribution{
		ID:      uuid.NewString(),
		WeekKey: rotation.KeyAt(s.now()),
		Metric:  metric,
		Value:   value,
	}
	if err := s.store.InsertTideContribution(ctx, c); err != nil {
		return ContributeResult{}, fault.Wrap(fault.Storage, err, "persist tide contribution")
	}

	metrics.RecordTideContribution()
	s.log.Debug(ctx, "tide contribution accepted",
		logger.String("metric", metric),
		logger.Float64("value", value),
		logger.String("week_key", c.WeekKey),
	)
	return ContributeResult{Accepted: true}, nil
}
