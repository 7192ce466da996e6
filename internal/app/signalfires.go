package app

import (
	"context"
	"errors"
	"time"

	"github.com/bootyhunt/server/internal/adapters/repository"
	"github.com/bootyhunt/server/internal/domain/rules"
	"github.com/bootyhunt/server/pkg/fault"
	"github.com/bootyhunt/server/pkg/logger"
	"github.com/bootyhunt/server/pkg/metrics"
)

// Signal fire issuance policy. Heat cost is a flat constant until product
// says otherwise.
const (
	signalHeatCost = 5.0
	signalCodeTTL  = 72 * time.Hour
)

// CreateSignalFire issues a new single-use aid code. Code collisions are
// store-detected and retried a bounded number of times.
func (s *Service) CreateSignalFire(ctx context.Context, req FireCreateRequest) (FireCreateResult, error) {
	if err := rules.ValidateAidType(req.AidType); err != nil {
		return FireCreateResult{}, err
	}
	if err := rules.ValidateAidAmount(req.AidAmount); err != nil {
		return FireCreateResult{}, err
	}

	now := s.now().UTC()
	for attempt := 0; attempt < s.codeAttempts; attempt++ {
		code, err := rules.GenerateCode()
		if err != nil {
			return FireCreateResult{}, err
		}

		fire := &repository.SignalFire{
			Code:       code,
			CreatorRun: req.CreatorRun,
			AidType:    req.AidType,
			AidAmount:  req.AidAmount,
			HeatCost:   signalHeatCost,
			ExpiresAt:  now.Add(signalCodeTTL),
			CreatedAt:  now,
		}
		err = s.store.InsertSignalFire(ctx, fire)
		if errors.Is(err, repository.ErrDuplicateCode) {
			continue
		}
		if err != nil {
			return FireCreateResult{}, fault.Wrap(fault.Storage, err, "persist signal fire")
		}

		metrics.RecordFireCreated()
		s.log.Debug(ctx, "signal fire created",
			logger.String("aid_type", req.AidType),
			logger.Int64("aid_amount", req.AidAmount),
		)
		return FireCreateResult{Code: code}, nil
	}
	return FireCreateResult{}, fault.New(fault.Storage, "could not allocate a unique code")
}

// RedeemSignalFire executes the redeem transition exactly once per code.
// The store decides concurrent races atomically; this method only
// normalizes input and translates refusals.
func (s *Service) RedeemSignalFire(ctx context.Context, code string) (FirePayload, error) {
	code = rules.NormalizeCode(code)

	fire, err := s.store.RedeemSignalFire(ctx, code, s.now().UTC())
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return FirePayload{}, fault.NotFoundf("invalid signal fire code")
	case errors.Is(err, repository.ErrAlreadyRedeemed):
		metrics.RecordRedeemConflict()
		return FirePayload{}, fault.Conflictf("signal fire already redeemed")
	case errors.Is(err, repository.ErrExpired):
		metrics.RecordRedeemConflict()
		return FirePayload{}, fault.Conflictf("signal fire expired")
	case err != nil:
		return FirePayload{}, fault.Wrap(fault.Storage, err, "redeem signal fire")
	}

	metrics.RecordFireRedeemed()
	s.log.Info(ctx, "signal fire redeemed",
		logger.String("aid_type", fire.AidType),
		logger.Int64("aid_amount", fire.AidAmount),
	)
	return FirePayload{
		AidType:   fire.AidType,
		AidAmount: fire.AidAmount,
		HeatCost:  fire.HeatCost,
	}, nil
}
