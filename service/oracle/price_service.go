package oracle

import (
	"context"
	"fmt"
	"time"

	"lever/core"
	"lever/pkg/resthttp"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

const defaultCacheTTL = 5 * time.Second

// PriceService price oracle client. Prices are cached with a short
// explicit TTL and concurrent lookups for the same asset are deduped;
// any failure surfaces ErrPriceUnavailable rather than a stale or
// defaulted price beyond that TTL.
type PriceService struct {
	endpoint string
	cache    gcache.Cache
	sf       *singleflight.Group
	ttl      time.Duration
}

// New new oracle price service
func New(cfg core.Oracle) core.IPriceOracleService {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return &PriceService{
		endpoint: cfg.EndPoint,
		cache:    gcache.New(64).LRU().Build(),
		sf:       &singleflight.Group{},
		ttl:      ttl,
	}
}

// GetPrice current USD price for the asset
func (s *PriceService) GetPrice(ctx context.Context, asset core.Asset) (decimal.Decimal, error) {
	key := fmt.Sprintf("price:%s", asset)
	if v, err := s.cache.Get(key); err == nil {
		if price, ok := v.(decimal.Decimal); ok {
			return price, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		ticker, err := s.pullTicker(ctx, asset)
		if err != nil {
			return nil, err
		}

		if !ticker.Price.IsPositive() {
			return nil, core.ErrPriceUnavailable
		}

		_ = s.cache.SetWithExpire(key, ticker.Price, s.ttl)
		return ticker.Price, nil
	})
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("oracle.GetPrice", asset)
		return decimal.Zero, core.ErrPriceUnavailable
	}

	return v.(decimal.Decimal), nil
}

func (s *PriceService) pullTicker(ctx context.Context, asset core.Asset) (*core.PriceTicker, error) {
	url := fmt.Sprintf("%s/api/prices/%s", s.endpoint, asset)
	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return nil, err
	}

	var ticker core.PriceTicker
	if err := resthttp.ParseResponse(resp, &ticker); err != nil {
		return nil, err
	}

	return &ticker, nil
}
