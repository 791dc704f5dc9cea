package borrow

import (
	"context"

	"lever/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type borrowStore struct {
	db *db.DB
}

// New new borrow store
func New(db *db.DB) core.IBorrowStore {
	return &borrowStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Borrow{})
		if err := tx.AutoMigrate(core.Borrow{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *borrowStore) Create(ctx context.Context, tx *db.DB, borrow *core.Borrow) error {
	return tx.Update().Create(borrow).Error
}

func (s *borrowStore) Find(ctx context.Context, userID string, asset core.Asset, chain core.Chain) (*core.Borrow, error) {
	var borrow core.Borrow
	err := s.db.View().Where("user_id=? and asset=? and chain=?", userID, asset, chain).First(&borrow).Error
	if store.IsErrNotFound(err) {
		return &core.Borrow{}, nil
	}
	if err != nil {
		return nil, err
	}

	return &borrow, nil
}

func (s *borrowStore) FindByUser(ctx context.Context, userID string, chain core.Chain) ([]*core.Borrow, error) {
	var borrows []*core.Borrow
	if err := s.db.View().Where("user_id=? and chain=?", userID, chain).Find(&borrows).Error; err != nil {
		return nil, err
	}

	return borrows, nil
}

func (s *borrowStore) Update(ctx context.Context, tx *db.DB, borrow *core.Borrow) error {
	version := borrow.Version
	borrow.Version++

	update := tx.Update().Model(core.Borrow{}).
		Where("id=? and version=?", borrow.ID, version).
		Updates(map[string]interface{}{
			"principal":            borrow.Principal,
			"accrued_interest":     borrow.AccruedInterest,
			"rate_at_origination":  borrow.RateAtOrigination,
			"last_interest_update": borrow.LastInterestUpdate,
			"version":              borrow.Version,
		})
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

func (s *borrowStore) Delete(ctx context.Context, tx *db.DB, borrow *core.Borrow) error {
	update := tx.Update().Where("id=? and version=?", borrow.ID, borrow.Version).Delete(core.Borrow{})
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
