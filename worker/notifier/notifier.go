package notifier

import (
	"context"
	"errors"

	"lever/core"
	"lever/pkg/resthttp"
	"lever/worker"

	"github.com/fox-one/pkg/logger"
)

// Notifier drains the pending event outbox, posting every event's
// payload to the configured webhook. Events stay pending until
// delivery succeeds, so a crashed tick redelivers instead of dropping.
type Notifier struct {
	worker.TickWorker
	eventStore core.EventStore
	config     core.Notifier
}

// New new notifier worker
func New(events core.EventStore, cfg core.Notifier) *Notifier {
	return &Notifier{
		eventStore: events,
		config:     cfg,
	}
}

// Run run worker
func (w *Notifier) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Notifier) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)
	const Limit = 100

	events, err := w.eventStore.ListPending(ctx, Limit)
	if err != nil {
		log.WithError(err).Error("events.ListPending")
		return err
	}

	if len(events) == 0 {
		return errors.New("list events: EOF")
	}

	var sent []*core.Event
	for _, event := range events {
		if err := w.deliver(ctx, event); err != nil {
			log.WithError(err).WithField("trace", event.TraceID).Error("notifier.deliver")
			break
		}

		sent = append(sent, event)
	}

	if len(sent) == 0 {
		return nil
	}

	if err := w.eventStore.MarkSent(ctx, sent); err != nil {
		log.WithError(err).Error("events.MarkSent")
		return err
	}

	return nil
}

func (w *Notifier) deliver(ctx context.Context, event *core.Event) error {
	if w.config.WebhookURL == "" {
		// no sink configured, drain the outbox so it cannot grow without bound
		return nil
	}

	r, err := resthttp.WithRequestID(ctx, event.TraceID).
		SetBody(event.Payload).
		Post(w.config.WebhookURL)
	if err != nil {
		return err
	}

	return resthttp.ParseResponse(r, nil)
}
