package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// EventStatus delivery state
type EventStatus int

const (
	// EventStatusPending not yet delivered
	EventStatusPending EventStatus = iota
	// EventStatusSent delivered to every channel
	EventStatusSent
)

// Event outbox row emitted whenever an operation changes a user's
// health factor, consumed by the notifier worker so alerting can watch
// for threshold crossings.
type Event struct {
	ID        int64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID   string         `sql:"size:36;unique_index:idx_events_trace_id" json:"trace_id"`
	UserID    string         `sql:"size:36;index:idx_events_user_id" json:"user_id"`
	Chain     Chain          `sql:"size:20" json:"chain"`
	Channels  pq.StringArray `sql:"type:TEXT" json:"channels"`
	Payload   types.JSONText `sql:"type:TEXT" json:"payload"`
	Status    EventStatus    `sql:"default:0;index:idx_events_status" json:"status"`
	CreatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// HealthFactorChanged event payload
type HealthFactorChanged struct {
	UserID      string          `json:"user_id" structs:"user_id"`
	Chain       Chain           `json:"chain" structs:"chain"`
	Action      string          `json:"action" structs:"action"`
	OldInfinite bool            `json:"old_infinite" structs:"old_infinite"`
	Old         decimal.Decimal `json:"old" structs:"old"`
	NewInfinite bool            `json:"new_infinite" structs:"new_infinite"`
	New         decimal.Decimal `json:"new" structs:"new"`
}

// EventStore event outbox store interface
type EventStore interface {
	Create(ctx context.Context, tx *db.DB, event *Event) error
	ListPending(ctx context.Context, limit int) ([]*Event, error)
	MarkSent(ctx context.Context, events []*Event) error
}
