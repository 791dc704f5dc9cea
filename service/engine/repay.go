package engine

import (
	"context"
	"time"

	"lever/core"
	"lever/internal/lever"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Repay returns amount against the user's debt. Repay can only
// improve solvency, so it is not health-gated; the amount is bounded
// by the position's interest-inclusive balance.
func (e *Engine) Repay(ctx context.Context, userID string, asset core.Asset, chain core.Chain, amount decimal.Decimal) (*core.RepayResult, error) {
	log := logger.FromContext(ctx).WithField("event", "repay")
	ctx = logger.WithContext(ctx, log)

	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	if _, err := core.GetMarket(asset, chain); err != nil {
		return nil, err
	}

	key := positionKey(userID, asset, chain)
	e.locks.Lock(key)
	defer e.locks.Unlock(key)

	oldSnapshot, err := e.accountService.GetHealthSnapshot(ctx, userID, chain)
	if err != nil {
		return nil, err
	}

	var result *core.RepayResult
	err = e.commit(ctx, func(ctx context.Context) error {
		now := time.Now()

		reserve, err := e.reserveStore.Find(ctx, asset, chain)
		if err != nil {
			return err
		}

		borrow, err := e.borrowStore.Find(ctx, userID, asset, chain)
		if err != nil {
			return err
		}

		updated := *borrow
		prePrincipal := updated.Principal
		if err := lever.DebitBorrow(&updated, amount, now); err != nil {
			return err
		}

		removing := lever.IsDust(updated.Principal.Add(updated.AccruedInterest), e.risk.DustThreshold)
		if removing {
			updated.Principal = decimal.Zero
			updated.AccruedInterest = decimal.Zero
		}

		// the pool only tracks drawn principal; the interest part of a
		// repayment is realized yield, not returned liquidity
		principalRepaid := decimal.Min(prePrincipal.Sub(updated.Principal), reserve.TotalBorrowed)
		if principalRepaid.IsPositive() {
			if err := e.reserveService.Apply(ctx, reserve, core.ReserveDeltaRepay, principalRepaid, now); err != nil {
				return err
			}
		}

		newSnapshot, err := e.accountService.SimulateHealthSnapshot(ctx, userID, chain, nil, &updated)
		if err != nil {
			return err
		}

		if err := e.db.Tx(func(tx *db.DB) error {
			if err := e.reserveStore.Update(ctx, tx, reserve); err != nil {
				return err
			}

			if removing {
				if err := e.borrowStore.Delete(ctx, tx, &updated); err != nil {
					return err
				}
			} else if err := e.borrowStore.Update(ctx, tx, &updated); err != nil {
				return err
			}

			extra := core.NewTransactionExtra()
			extra.Put("health_factor", newSnapshot.HealthFactor)
			extra.Put("position_removed", removing)
			extra.Put("utilization_rate", reserve.UtilizationRate)

			trace, err := e.journal(ctx, tx, core.ActionTypeRepay, userID, asset, chain, amount, extra)
			if err != nil {
				return err
			}

			return e.emitHealthChanged(ctx, tx, trace, core.ActionTypeRepay, userID, chain, oldSnapshot, newSnapshot)
		}); err != nil {
			return err
		}

		result = &core.RepayResult{Health: newSnapshot}
		return nil
	})
	if err != nil {
		log.WithError(err).Infoln("repay rejected")
		return nil, err
	}

	log.Infoln("repay completed")
	return result, nil
}
