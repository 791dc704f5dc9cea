package account

import (
	"context"
	"time"

	"lever/core"
	"lever/internal/lever"
)

type accountService struct {
	supplyStore  core.ISupplyStore
	borrowStore  core.IBorrowStore
	priceService core.IPriceOracleService
}

// New new account service
func New(
	supplyStore core.ISupplyStore,
	borrowStore core.IBorrowStore,
	priceService core.IPriceOracleService,
) core.IAccountService {
	return &accountService{
		supplyStore:  supplyStore,
		borrowStore:  borrowStore,
		priceService: priceService,
	}
}

func (s *accountService) GetHealthSnapshot(ctx context.Context, userID string, chain core.Chain) (*core.HealthSnapshot, error) {
	return s.SimulateHealthSnapshot(ctx, userID, chain, nil, nil)
}

// SimulateHealthSnapshot computes the snapshot over the stored
// positions with the overlays swapped in. Overlay rows replace the
// stored row for the same (asset, chain); an overlay with zero balance
// therefore simulates the position's removal.
func (s *accountService) SimulateHealthSnapshot(ctx context.Context, userID string, chain core.Chain, supplyOverlay *core.Supply, borrowOverlay *core.Borrow) (*core.HealthSnapshot, error) {
	now := time.Now()

	supplies, err := s.supplyStore.FindByUser(ctx, userID, chain)
	if err != nil {
		return nil, err
	}
	supplies = overlaySupply(supplies, supplyOverlay)

	borrows, err := s.borrowStore.FindByUser(ctx, userID, chain)
	if err != nil {
		return nil, err
	}
	borrows = overlayBorrow(borrows, borrowOverlay)

	var collaterals []lever.CollateralInput
	for _, supply := range supplies {
		if !supply.UsedAsCollateral {
			continue
		}

		balance := lever.SupplyBalance(supply, now)
		if !balance.IsPositive() {
			continue
		}

		market, err := core.GetMarket(supply.Asset, supply.Chain)
		if err != nil {
			return nil, err
		}
		if !market.Risk.CollateralEnabled {
			continue
		}

		price, err := s.priceService.GetPrice(ctx, supply.Asset)
		if err != nil {
			return nil, err
		}

		collaterals = append(collaterals, lever.CollateralInput{
			Balance:              balance,
			PriceUsd:             price,
			LiquidationThreshold: market.Risk.LiquidationThreshold,
		})
	}

	var debts []lever.DebtInput
	for _, borrow := range borrows {
		balance := lever.BorrowBalance(borrow, now)
		if !balance.IsPositive() {
			continue
		}

		price, err := s.priceService.GetPrice(ctx, borrow.Asset)
		if err != nil {
			return nil, err
		}

		debts = append(debts, lever.DebtInput{
			Balance:  balance,
			PriceUsd: price,
		})
	}

	return lever.Health(collaterals, debts), nil
}

func overlaySupply(supplies []*core.Supply, overlay *core.Supply) []*core.Supply {
	if overlay == nil {
		return supplies
	}

	out := make([]*core.Supply, 0, len(supplies)+1)
	for _, s := range supplies {
		if s.Asset == overlay.Asset && s.Chain == overlay.Chain {
			continue
		}
		out = append(out, s)
	}

	return append(out, overlay)
}

func overlayBorrow(borrows []*core.Borrow, overlay *core.Borrow) []*core.Borrow {
	if overlay == nil {
		return borrows
	}

	out := make([]*core.Borrow, 0, len(borrows)+1)
	for _, b := range borrows {
		if b.Asset == overlay.Asset && b.Chain == overlay.Chain {
			continue
		}
		out = append(out, b)
	}

	return append(out, overlay)
}
