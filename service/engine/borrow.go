package engine

import (
	"context"
	"time"

	"lever/core"
	"lever/internal/lever"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Borrow draws amount against the user's collateral. Gated on pool
// liquidity and on the simulated post-borrow health factor; a
// stable-rate borrow is additionally capped to a fraction of the
// available liquidity.
func (e *Engine) Borrow(ctx context.Context, userID string, asset core.Asset, chain core.Chain, amount decimal.Decimal, mode core.RateMode) (*core.BorrowResult, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"event": "borrow",
		"mode":  mode,
	})
	ctx = logger.WithContext(ctx, log)

	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	if !mode.Valid() {
		return nil, core.ErrOperationForbidden
	}

	market, err := core.GetMarket(asset, chain)
	if err != nil {
		return nil, err
	}

	if !market.Risk.BorrowingEnabled {
		return nil, core.ErrBorrowingDisabled
	}

	key := positionKey(userID, asset, chain)
	e.locks.Lock(key)
	defer e.locks.Unlock(key)

	oldSnapshot, err := e.accountService.GetHealthSnapshot(ctx, userID, chain)
	if err != nil {
		return nil, err
	}

	var result *core.BorrowResult
	err = e.commit(ctx, func(ctx context.Context) error {
		now := time.Now()

		reserve, err := e.reserveStore.Find(ctx, asset, chain)
		if err != nil {
			return err
		}

		if mode == core.RateModeStable {
			sizeCap := reserve.AvailableLiquidity.Mul(e.risk.MaxStableRateBorrowSizePercent)
			if amount.GreaterThan(sizeCap) {
				return core.ErrStableBorrowOverCap
			}
		}

		if err := e.reserveService.Apply(ctx, reserve, core.ReserveDeltaBorrow, amount, now); err != nil {
			return err
		}

		rate := reserve.BorrowRateVariable
		if mode == core.RateModeStable {
			rate = reserve.BorrowRateStable
		}

		borrow, err := e.borrowStore.Find(ctx, userID, asset, chain)
		if err != nil {
			return err
		}

		updated := *borrow
		if updated.ID == 0 {
			updated = core.Borrow{
				UserID:             userID,
				Asset:              asset,
				Chain:              chain,
				Principal:          decimal.Zero,
				AccruedInterest:    decimal.Zero,
				RateMode:           mode,
				RateAtOrigination:  rate,
				LastInterestUpdate: now,
			}
		} else if updated.RateMode != mode {
			// one position per (user, asset, chain); its mode is fixed
			// at origination
			return core.ErrOperationForbidden
		}
		lever.CreditBorrow(&updated, amount, rate, now)

		newSnapshot, err := e.accountService.SimulateHealthSnapshot(ctx, userID, chain, nil, &updated)
		if err != nil {
			return err
		}

		if !newSnapshot.AtLeast(e.risk.BorrowMinHealthFactor) {
			return core.ErrHealthFactorTooLow
		}

		if err := e.db.Tx(func(tx *db.DB) error {
			if err := e.reserveStore.Update(ctx, tx, reserve); err != nil {
				return err
			}

			if updated.ID == 0 {
				if err := e.borrowStore.Create(ctx, tx, &updated); err != nil {
					return err
				}
			} else if err := e.borrowStore.Update(ctx, tx, &updated); err != nil {
				return err
			}

			extra := core.NewTransactionExtra()
			extra.Put("borrow_rate", rate)
			extra.Put("rate_mode", mode)
			extra.Put("health_factor", newSnapshot.HealthFactor)
			extra.Put("utilization_rate", reserve.UtilizationRate)

			trace, err := e.journal(ctx, tx, core.ActionTypeBorrow, userID, asset, chain, amount, extra)
			if err != nil {
				return err
			}

			return e.emitHealthChanged(ctx, tx, trace, core.ActionTypeBorrow, userID, chain, oldSnapshot, newSnapshot)
		}); err != nil {
			return err
		}

		result = &core.BorrowResult{
			BorrowRate: rate,
			Health:     newSnapshot,
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Infoln("borrow rejected")
		return nil, err
	}

	log.Infoln("borrow completed")
	return result, nil
}
