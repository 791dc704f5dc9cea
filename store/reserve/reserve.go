package reserve

import (
	"context"

	"lever/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type reserveStore struct {
	db *db.DB
}

// New new reserve store
func New(db *db.DB) core.IReserveStore {
	return &reserveStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Reserve{})
		if err := tx.AutoMigrate(core.Reserve{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *reserveStore) Save(ctx context.Context, tx *db.DB, reserve *core.Reserve) error {
	return tx.Update().Where("asset=? and chain=?", reserve.Asset, reserve.Chain).FirstOrCreate(reserve).Error
}

func (s *reserveStore) Find(ctx context.Context, asset core.Asset, chain core.Chain) (*core.Reserve, error) {
	var reserve core.Reserve
	if err := s.db.View().Where("asset=? and chain=?", asset, chain).First(&reserve).Error; err != nil {
		if store.IsErrNotFound(err) {
			return nil, core.ErrReserveNotFound
		}
		return nil, err
	}

	return &reserve, nil
}

func (s *reserveStore) All(ctx context.Context) ([]*core.Reserve, error) {
	var reserves []*core.Reserve
	if err := s.db.View().Order("asset, chain").Find(&reserves).Error; err != nil {
		return nil, err
	}

	return reserves, nil
}

func (s *reserveStore) Update(ctx context.Context, tx *db.DB, reserve *core.Reserve) error {
	version := reserve.Version
	reserve.Version++

	update := tx.Update().Model(core.Reserve{}).
		Where("id=? and version=?", reserve.ID, version).
		Updates(map[string]interface{}{
			"total_supplied":       reserve.TotalSupplied,
			"total_borrowed":       reserve.TotalBorrowed,
			"available_liquidity":  reserve.AvailableLiquidity,
			"utilization_rate":     reserve.UtilizationRate,
			"supply_rate":          reserve.SupplyRate,
			"borrow_rate_variable": reserve.BorrowRateVariable,
			"borrow_rate_stable":   reserve.BorrowRateStable,
			"last_updated_at":      reserve.LastUpdatedAt,
			"version":              reserve.Version,
		})
	if update.Error != nil {
		return update.Error
	}

	// another writer advanced the version first
	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
