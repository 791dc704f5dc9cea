package core

import (
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Config lever config
type Config struct {
	DB       db.Config `json:"db"`
	Oracle   Oracle    `json:"oracle"`
	Risk     Risk      `json:"risk"`
	Notifier Notifier  `json:"notifier"`
}

// Oracle price oracle config
type Oracle struct {
	EndPoint string        `json:"end_point"`
	CacheTTL time.Duration `json:"cache_ttl"`
}

// Risk risk gate policy. Thresholds are configuration, not hard-coded
// law; zero values fall back to the defaults below.
type Risk struct {
	BorrowMinHealthFactor          decimal.Decimal `json:"borrow_min_health_factor"`
	WithdrawMinHealthFactor        decimal.Decimal `json:"withdraw_min_health_factor"`
	DustThreshold                  decimal.Decimal `json:"dust_threshold"`
	MaxStableRateBorrowSizePercent decimal.Decimal `json:"max_stable_rate_borrow_size_percent"`
	CommitRetries                  int             `json:"commit_retries"`
}

// Notifier health factor event delivery config
type Notifier struct {
	WebhookURL string   `json:"webhook_url"`
	Channels   []string `json:"channels"`
}

// WithDefaults fills unset risk policy fields.
func (r Risk) WithDefaults() Risk {
	if !r.BorrowMinHealthFactor.IsPositive() {
		r.BorrowMinHealthFactor = d("1.5")
	}
	if !r.WithdrawMinHealthFactor.IsPositive() {
		r.WithdrawMinHealthFactor = d("1.2")
	}
	if !r.DustThreshold.IsPositive() {
		r.DustThreshold = d("0.01")
	}
	if !r.MaxStableRateBorrowSizePercent.IsPositive() {
		r.MaxStableRateBorrowSizePercent = d("0.25")
	}
	if r.CommitRetries <= 0 {
		r.CommitRetries = 5
	}
	return r
}
