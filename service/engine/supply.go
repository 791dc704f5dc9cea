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

// Supply deposits amount into the pool and credits the user's supply
// position. Supply can only improve solvency, so it is not
// health-gated.
func (e *Engine) Supply(ctx context.Context, userID string, asset core.Asset, chain core.Chain, amount decimal.Decimal) (*core.SupplyResult, error) {
	log := logger.FromContext(ctx).WithField("event", "supply")
	ctx = logger.WithContext(ctx, log)

	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	market, err := core.GetMarket(asset, chain)
	if err != nil {
		return nil, err
	}

	key := positionKey(userID, asset, chain)
	e.locks.Lock(key)
	defer e.locks.Unlock(key)

	oldSnapshot, err := e.accountService.GetHealthSnapshot(ctx, userID, chain)
	if err != nil {
		return nil, err
	}

	var result *core.SupplyResult
	err = e.commit(ctx, func(ctx context.Context) error {
		now := time.Now()

		reserve, err := e.reserveStore.Find(ctx, asset, chain)
		if err != nil {
			return err
		}

		if err := e.reserveService.Apply(ctx, reserve, core.ReserveDeltaSupply, amount, now); err != nil {
			return err
		}

		supply, err := e.supplyStore.Find(ctx, userID, asset, chain)
		if err != nil {
			return err
		}

		updated := *supply
		if updated.ID == 0 {
			updated = core.Supply{
				UserID:             userID,
				Asset:              asset,
				Chain:              chain,
				Principal:          decimal.Zero,
				AccruedInterest:    decimal.Zero,
				UsedAsCollateral:   market.Risk.CollateralEnabled,
				LastInterestUpdate: now,
			}
		}
		lever.CreditSupply(&updated, amount, reserve.SupplyRate, now)

		newSnapshot, err := e.accountService.SimulateHealthSnapshot(ctx, userID, chain, &updated, nil)
		if err != nil {
			return err
		}

		if err := e.db.Tx(func(tx *db.DB) error {
			// the reserve carries the version column; a stale read aborts
			// here before any position row is touched
			if err := e.reserveStore.Update(ctx, tx, reserve); err != nil {
				return err
			}

			if updated.ID == 0 {
				if err := e.supplyStore.Create(ctx, tx, &updated); err != nil {
					return err
				}
			} else if err := e.supplyStore.Update(ctx, tx, &updated); err != nil {
				return err
			}

			extra := core.NewTransactionExtra()
			extra.Put("supply_rate", reserve.SupplyRate)
			extra.Put("utilization_rate", reserve.UtilizationRate)
			extra.Put("principal", updated.Principal)

			trace, err := e.journal(ctx, tx, core.ActionTypeSupply, userID, asset, chain, amount, extra)
			if err != nil {
				return err
			}

			return e.emitHealthChanged(ctx, tx, trace, core.ActionTypeSupply, userID, chain, oldSnapshot, newSnapshot)
		}); err != nil {
			return err
		}

		result = &core.SupplyResult{
			SupplyRate: reserve.SupplyRate,
			Health:     newSnapshot,
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Infoln("supply rejected")
		return nil, err
	}

	log.Infoln("supply completed")
	return result, nil
}
