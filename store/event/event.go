package event

import (
	"context"
	"time"

	"lever/core"

	"github.com/fox-one/pkg/store/db"
)

type eventStore struct {
	db *db.DB
}

// New new event store
func New(db *db.DB) core.EventStore {
	return &eventStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Event{})
		if err := tx.AutoMigrate(core.Event{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *eventStore) Create(ctx context.Context, tx *db.DB, event *core.Event) error {
	return tx.Update().Create(event).Error
}

func (s *eventStore) ListPending(ctx context.Context, limit int) ([]*core.Event, error) {
	var events []*core.Event
	if err := s.db.View().Where("status=?", core.EventStatusPending).Order("id").Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

func (s *eventStore) MarkSent(ctx context.Context, events []*core.Event) error {
	if len(events) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}

	return s.db.Tx(func(tx *db.DB) error {
		return tx.Update().Model(core.Event{}).
			Where("id in (?)", ids).
			Updates(map[string]interface{}{
				"status":     core.EventStatusSent,
				"updated_at": time.Now(),
			}).Error
	})
}
