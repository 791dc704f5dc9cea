package reserve

import (
	"context"
	"fmt"
	"time"

	"lever/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/singleflight"
)

// Cache wraps a reserve store with a read-through TTL cache for the
// query surface. Every mutation invalidates the keys it touches so the
// cache can never outlive the ledger it describes.
func Cache(store core.IReserveStore, exp time.Duration) core.IReserveStore {
	if exp <= 0 {
		exp = 3 * time.Second
	}

	return &cacheReserveStore{
		IReserveStore: store,
		cache:         gcache.New(128).LRU().Build(),
		sf:            &singleflight.Group{},
		exp:           exp,
	}
}

type cacheReserveStore struct {
	core.IReserveStore
	cache gcache.Cache
	sf    *singleflight.Group
	exp   time.Duration
}

const allKey = "reserves:all"

func (s *cacheReserveStore) Save(ctx context.Context, tx *db.DB, reserve *core.Reserve) error {
	if err := s.IReserveStore.Save(ctx, tx, reserve); err != nil {
		return err
	}
	s.invalidate(reserve)
	return nil
}

func (s *cacheReserveStore) Update(ctx context.Context, tx *db.DB, reserve *core.Reserve) error {
	if err := s.IReserveStore.Update(ctx, tx, reserve); err != nil {
		return err
	}
	s.invalidate(reserve)
	return nil
}

func (s *cacheReserveStore) Find(ctx context.Context, asset core.Asset, chain core.Chain) (*core.Reserve, error) {
	key := s.reserveKey(asset, chain)
	if v, err := s.cache.Get(key); err == nil {
		if reserve, ok := v.(*core.Reserve); ok {
			return reserve, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		reserve, err := s.IReserveStore.Find(ctx, asset, chain)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetWithExpire(key, reserve, s.exp)
		return reserve, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.Reserve), nil
}

func (s *cacheReserveStore) All(ctx context.Context) ([]*core.Reserve, error) {
	if v, err := s.cache.Get(allKey); err == nil {
		if reserves, ok := v.([]*core.Reserve); ok {
			return reserves, nil
		}
	}

	v, err, _ := s.sf.Do(allKey, func() (interface{}, error) {
		reserves, err := s.IReserveStore.All(ctx)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetWithExpire(allKey, reserves, s.exp)
		return reserves, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]*core.Reserve), nil
}

func (s *cacheReserveStore) invalidate(reserve *core.Reserve) {
	s.cache.Remove(s.reserveKey(reserve.Asset, reserve.Chain))
	s.cache.Remove(allKey)
}

func (s *cacheReserveStore) reserveKey(asset core.Asset, chain core.Chain) string {
	return fmt.Sprintf("reserve:%s:%s", asset, chain)
}
