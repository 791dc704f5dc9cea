package supply

import (
	"context"

	"lever/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type supplyStore struct {
	db *db.DB
}

// New new supply store
func New(db *db.DB) core.ISupplyStore {
	return &supplyStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Supply{})
		if err := tx.AutoMigrate(core.Supply{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *supplyStore) Create(ctx context.Context, tx *db.DB, supply *core.Supply) error {
	return tx.Update().Create(supply).Error
}

func (s *supplyStore) Find(ctx context.Context, userID string, asset core.Asset, chain core.Chain) (*core.Supply, error) {
	var supply core.Supply
	err := s.db.View().Where("user_id=? and asset=? and chain=?", userID, asset, chain).First(&supply).Error
	if store.IsErrNotFound(err) {
		return &core.Supply{}, nil
	}
	if err != nil {
		return nil, err
	}

	return &supply, nil
}

func (s *supplyStore) FindByUser(ctx context.Context, userID string, chain core.Chain) ([]*core.Supply, error) {
	var supplies []*core.Supply
	if err := s.db.View().Where("user_id=? and chain=?", userID, chain).Find(&supplies).Error; err != nil {
		return nil, err
	}

	return supplies, nil
}

func (s *supplyStore) Update(ctx context.Context, tx *db.DB, supply *core.Supply) error {
	version := supply.Version
	supply.Version++

	update := tx.Update().Model(core.Supply{}).
		Where("id=? and version=?", supply.ID, version).
		Updates(map[string]interface{}{
			"principal":            supply.Principal,
			"accrued_interest":     supply.AccruedInterest,
			"rate_at_deposit":      supply.RateAtDeposit,
			"used_as_collateral":   supply.UsedAsCollateral,
			"last_interest_update": supply.LastInterestUpdate,
			"version":              supply.Version,
		})
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

func (s *supplyStore) Delete(ctx context.Context, tx *db.DB, supply *core.Supply) error {
	update := tx.Update().Where("id=? and version=?", supply.ID, supply.Version).Delete(core.Supply{})
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
