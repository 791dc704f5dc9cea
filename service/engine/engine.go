package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lever/core"
	"lever/pkg/keylock"
	"lever/pkg/number"

	"github.com/fatih/structs"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/gofrs/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const retryBackoff = 25 * time.Millisecond

// Engine the operation orchestrator. Each operation validates, then
// simulates the post-state, gates borrow/withdraw on the simulated
// health factor and commits position + reserve + journal + event as a
// single database transaction. Optimistic-lock conflicts restart the
// whole read-simulate-commit cycle with backoff.
type Engine struct {
	db               core.Database
	risk             core.Risk
	channels         []string
	reserveStore     core.IReserveStore
	supplyStore      core.ISupplyStore
	borrowStore      core.IBorrowStore
	transactionStore core.TransactionStore
	eventStore       core.EventStore
	reserveService   core.IReserveService
	accountService   core.IAccountService
	locks            *keylock.KeyLock
}

// New new engine
func New(
	database core.Database,
	risk core.Risk,
	notifier core.Notifier,
	reserveStore core.IReserveStore,
	supplyStore core.ISupplyStore,
	borrowStore core.IBorrowStore,
	transactionStore core.TransactionStore,
	eventStore core.EventStore,
	reserveService core.IReserveService,
	accountService core.IAccountService,
) *Engine {
	channels := notifier.Channels
	if len(channels) == 0 {
		channels = []string{"webhook"}
	}

	return &Engine{
		db:               database,
		risk:             risk.WithDefaults(),
		channels:         channels,
		reserveStore:     reserveStore,
		supplyStore:      supplyStore,
		borrowStore:      borrowStore,
		transactionStore: transactionStore,
		eventStore:       eventStore,
		reserveService:   reserveService,
		accountService:   accountService,
		locks:            keylock.New(),
	}
}

func positionKey(userID string, asset core.Asset, chain core.Chain) string {
	return fmt.Sprintf("%s|%s|%s", userID, chain, asset)
}

func validateAmount(amount decimal.Decimal) error {
	if !number.IsPositiveAmount(amount) {
		return core.ErrInvalidAmount
	}
	return nil
}

// commit runs fn until it commits, retrying only on optimistic-lock
// conflicts with exponential backoff. Exhausted retries surface
// ErrConflict; persisted state is untouched by failed attempts.
func (e *Engine) commit(ctx context.Context, fn func(ctx context.Context) error) error {
	log := logger.FromContext(ctx)

	var err error
	for attempt := 0; attempt < e.risk.CommitRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBackoff << uint(attempt-1)):
			}
		}

		if err = fn(ctx); err != db.ErrOptimisticLock {
			return err
		}

		log.WithField("attempt", attempt+1).Infoln("commit conflicted, retrying")
	}

	return core.ErrConflict
}

func (e *Engine) journal(ctx context.Context, tx *db.DB, action core.ActionType, userID string, asset core.Asset, chain core.Chain, amount decimal.Decimal, extra core.TransactionExtraData) (string, error) {
	trace, err := uuid.NewV4()
	if err != nil {
		return "", err
	}

	transaction := &core.Transaction{
		TraceID: trace.String(),
		UserID:  userID,
		Action:  action,
		Asset:   asset,
		Chain:   chain,
		Amount:  amount,
	}
	transaction.SetExtraData(extra)

	if err := e.transactionStore.Create(ctx, tx, transaction); err != nil {
		return "", err
	}

	return trace.String(), nil
}

func (e *Engine) emitHealthChanged(ctx context.Context, tx *db.DB, traceID string, action core.ActionType, userID string, chain core.Chain, old, new *core.HealthSnapshot) error {
	changed := core.HealthFactorChanged{
		UserID:      userID,
		Chain:       chain,
		Action:      action.String(),
		OldInfinite: old.Infinite,
		Old:         old.HealthFactor,
		NewInfinite: new.Infinite,
		New:         new.HealthFactor,
	}

	payload, err := json.Marshal(structs.Map(&changed))
	if err != nil {
		return err
	}

	return e.eventStore.Create(ctx, tx, &core.Event{
		TraceID:  traceID,
		UserID:   userID,
		Chain:    chain,
		Channels: pq.StringArray(e.channels),
		Payload:  payload,
		Status:   core.EventStatusPending,
	})
}
