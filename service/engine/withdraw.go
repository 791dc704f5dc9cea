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

// Withdraw debits the user's supply position and removes liquidity
// from the pool. Always gated on the simulated post-withdraw health
// factor, never the pre-state.
func (e *Engine) Withdraw(ctx context.Context, userID string, asset core.Asset, chain core.Chain, amount decimal.Decimal) (*core.WithdrawResult, error) {
	log := logger.FromContext(ctx).WithField("event", "withdraw")
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

	var result *core.WithdrawResult
	err = e.commit(ctx, func(ctx context.Context) error {
		now := time.Now()

		reserve, err := e.reserveStore.Find(ctx, asset, chain)
		if err != nil {
			return err
		}

		supply, err := e.supplyStore.Find(ctx, userID, asset, chain)
		if err != nil {
			return err
		}

		updated := *supply
		if err := lever.DebitSupply(&updated, amount, now); err != nil {
			return err
		}

		removing := lever.IsDust(updated.Principal.Add(updated.AccruedInterest), e.risk.DustThreshold)
		if removing {
			updated.Principal = decimal.Zero
			updated.AccruedInterest = decimal.Zero
		}

		newSnapshot, err := e.accountService.SimulateHealthSnapshot(ctx, userID, chain, &updated, nil)
		if err != nil {
			return err
		}

		if !newSnapshot.AtLeast(e.risk.WithdrawMinHealthFactor) {
			return core.ErrHealthFactorTooLow
		}

		if err := e.reserveService.Apply(ctx, reserve, core.ReserveDeltaWithdraw, amount, now); err != nil {
			return err
		}

		if err := e.db.Tx(func(tx *db.DB) error {
			if err := e.reserveStore.Update(ctx, tx, reserve); err != nil {
				return err
			}

			if removing {
				if err := e.supplyStore.Delete(ctx, tx, &updated); err != nil {
					return err
				}
			} else if err := e.supplyStore.Update(ctx, tx, &updated); err != nil {
				return err
			}

			extra := core.NewTransactionExtra()
			extra.Put("health_factor", newSnapshot.HealthFactor)
			extra.Put("available_liquidity", reserve.AvailableLiquidity)
			extra.Put("position_removed", removing)

			trace, err := e.journal(ctx, tx, core.ActionTypeWithdraw, userID, asset, chain, amount, extra)
			if err != nil {
				return err
			}

			return e.emitHealthChanged(ctx, tx, trace, core.ActionTypeWithdraw, userID, chain, oldSnapshot, newSnapshot)
		}); err != nil {
			return err
		}

		result = &core.WithdrawResult{Health: newSnapshot}
		return nil
	})
	if err != nil {
		log.WithError(err).Infoln("withdraw rejected")
		return nil, err
	}

	log.Infoln("withdraw completed")
	return result, nil
}
