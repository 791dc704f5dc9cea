package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// ActionType operation kind
type ActionType int

const (
	// ActionTypeSupply supply
	ActionTypeSupply ActionType = iota + 1
	// ActionTypeWithdraw withdraw
	ActionTypeWithdraw
	// ActionTypeBorrow borrow
	ActionTypeBorrow
	// ActionTypeRepay repay
	ActionTypeRepay
)

func (a ActionType) String() string {
	switch a {
	case ActionTypeSupply:
		return "supply"
	case ActionTypeWithdraw:
		return "withdraw"
	case ActionTypeBorrow:
		return "borrow"
	case ActionTypeRepay:
		return "repay"
	default:
		return "unknown"
	}
}

// TransactionExtraData extra data
type TransactionExtraData map[string]interface{}

// NewTransactionExtra new transaction extra instance
func NewTransactionExtra() TransactionExtraData {
	return make(TransactionExtraData)
}

// Put put data
func (t TransactionExtraData) Put(key string, value interface{}) {
	t[key] = value
}

// Format format as []byte by default
func (t TransactionExtraData) Format() []byte {
	bs, e := json.Marshal(t)
	if e != nil {
		return []byte("{}")
	}

	return bs
}

// Transaction journal row for one committed operation, written in the
// same transaction as the ledger mutation it records.
type Transaction struct {
	ID        int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID   string          `sql:"size:36;unique_index:idx_transactions_trace_id" json:"trace_id"`
	UserID    string          `sql:"size:36;index:idx_transactions_user_id" json:"user_id"`
	Action    ActionType      `json:"action"`
	Asset     Asset           `sql:"size:20;index:idx_transactions_asset" json:"asset"`
	Chain     Chain           `sql:"size:20" json:"chain"`
	Amount    decimal.Decimal `sql:"type:decimal(32,8)" json:"amount"`
	Data      types.JSONText  `sql:"type:TEXT" json:"data"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP;index:idx_transactions_created_at" json:"created_at"`
}

// SetExtraData attach extra data
func (t *Transaction) SetExtraData(extra TransactionExtraData) {
	data := []byte("{}")
	if extra != nil {
		data = extra.Format()
	}

	t.Data = data
}

// TransactionStore transaction store interface
type TransactionStore interface {
	Create(ctx context.Context, tx *db.DB, transaction *Transaction) error
	FindByTraceID(ctx context.Context, traceID string) (*Transaction, error)
	List(ctx context.Context, userID string, limit int) ([]*Transaction, error)
}
