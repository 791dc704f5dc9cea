package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Asset is a supported underlying asset. The set is closed at compile
// time; anything outside the registry fails with ErrAssetNotSupported
// before touching the ledger.
type Asset string

// Chain is the network a reserve lives on.
type Chain string

const (
	AssetUSDC Asset = "USDC"
	AssetDAI  Asset = "DAI"
	AssetETH  Asset = "ETH"
	AssetBTC  Asset = "BTC"
	AssetSOL  Asset = "SOL"
)

const (
	ChainEthereum Chain = "ethereum"
	ChainPolygon  Chain = "polygon"
	ChainSolana   Chain = "solana"
)

// RiskParams static per-asset risk parameters
type RiskParams struct {
	LTV                  decimal.Decimal `json:"ltv"`
	LiquidationThreshold decimal.Decimal `json:"liquidation_threshold"`
	LiquidationBonus     decimal.Decimal `json:"liquidation_bonus"`
	ReserveFactor        decimal.Decimal `json:"reserve_factor"`
	CollateralEnabled    bool            `json:"collateral_enabled"`
	BorrowingEnabled     bool            `json:"borrowing_enabled"`
}

// RateCurve kinked interest curve parameters, rates per year
type RateCurve struct {
	Base               decimal.Decimal `json:"base"`
	Slope1             decimal.Decimal `json:"slope1"`
	Slope2             decimal.Decimal `json:"slope2"`
	OptimalUtilization decimal.Decimal `json:"optimal_utilization"`
	StableBase         decimal.Decimal `json:"stable_base"`
	StableSlope1       decimal.Decimal `json:"stable_slope1"`
	StableSlope2       decimal.Decimal `json:"stable_slope2"`
}

// Market a registered (asset, chain) pair with its parameters
type Market struct {
	Asset Asset
	Chain Chain
	Risk  RiskParams
	Curve RateCurve
}

var (
	stableCurve = RateCurve{
		Base:               d("0"),
		Slope1:             d("0.04"),
		Slope2:             d("0.6"),
		OptimalUtilization: d("0.9"),
		StableBase:         d("0.01"),
		StableSlope1:       d("0.05"),
		StableSlope2:       d("0.6"),
	}

	volatileCurve = RateCurve{
		Base:               d("0.02"),
		Slope1:             d("0.07"),
		Slope2:             d("1"),
		OptimalUtilization: d("0.8"),
		StableBase:         d("0.03"),
		StableSlope1:       d("0.08"),
		StableSlope2:       d("1"),
	}

	markets = []Market{
		{AssetUSDC, ChainEthereum, RiskParams{d("0.8"), d("0.85"), d("0.05"), d("0.1"), true, true}, stableCurve},
		{AssetUSDC, ChainPolygon, RiskParams{d("0.8"), d("0.85"), d("0.05"), d("0.1"), true, true}, stableCurve},
		{AssetDAI, ChainEthereum, RiskParams{d("0.77"), d("0.8"), d("0.05"), d("0.1"), true, true}, stableCurve},
		{AssetETH, ChainEthereum, RiskParams{d("0.75"), d("0.8"), d("0.08"), d("0.15"), true, true}, volatileCurve},
		{AssetETH, ChainPolygon, RiskParams{d("0.75"), d("0.8"), d("0.08"), d("0.15"), true, true}, volatileCurve},
		{AssetBTC, ChainEthereum, RiskParams{d("0.7"), d("0.75"), d("0.1"), d("0.2"), true, true}, volatileCurve},
		{AssetSOL, ChainSolana, RiskParams{d("0.65"), d("0.7"), d("0.1"), d("0.2"), true, true}, volatileCurve},
	}

	marketIndex = map[string]*Market{}
)

func d(v string) decimal.Decimal {
	x, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return x
}

func marketKey(asset Asset, chain Chain) string {
	return string(asset) + "|" + string(chain)
}

func init() {
	one := decimal.New(1, 0)
	for i := range markets {
		m := &markets[i]
		if !m.Risk.LiquidationThreshold.GreaterThan(m.Risk.LTV) {
			panic(fmt.Sprintf("market %s/%s: liquidation threshold must exceed ltv", m.Asset, m.Chain))
		}
		if m.Risk.LTV.IsNegative() || m.Risk.LiquidationThreshold.GreaterThan(one) ||
			m.Risk.ReserveFactor.IsNegative() || m.Risk.ReserveFactor.GreaterThan(one) {
			panic(fmt.Sprintf("market %s/%s: risk params out of range", m.Asset, m.Chain))
		}
		if !m.Curve.OptimalUtilization.IsPositive() || !m.Curve.OptimalUtilization.LessThan(one) {
			panic(fmt.Sprintf("market %s/%s: optimal utilization out of range", m.Asset, m.Chain))
		}
		marketIndex[marketKey(m.Asset, m.Chain)] = m
	}
}

// GetMarket looks up a registered market
func GetMarket(asset Asset, chain Chain) (*Market, error) {
	m, ok := marketIndex[marketKey(asset, chain)]
	if !ok {
		return nil, ErrAssetNotSupported
	}

	return m, nil
}

// AllMarkets all registered markets
func AllMarkets() []Market {
	return markets
}
