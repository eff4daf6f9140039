package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/chirper/backend/internal/infrastructure/outbox"
	"github.com/chirper/backend/internal/mailer"
)

// ProcessorConfig controls how frequently the outbox is drained.
type ProcessorConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
	Retention  time.Duration
}

// MailProcessor drains the durable email outbox on a schedule, retrying
// failed deliveries until MaxRetries is reached.
type MailProcessor struct {
	store  *outbox.Store
	sender mailer.Sender
	logger *zap.Logger
	cron   *cron.Cron
	cfg    ProcessorConfig
}

func NewMailProcessor(store *outbox.Store, sender mailer.Sender, logger *zap.Logger, cfg ProcessorConfig) *MailProcessor {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	} else if cfg.Interval < time.Second {
		// cron's @every resolution is whole seconds
		cfg.Interval = time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mp := &MailProcessor{
		store:  store,
		sender: sender,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	if _, err := mp.cron.AddFunc(schedule, func() {
		if err := mp.Drain(); err != nil {
			mp.logger.Error("outbox drain failed", zap.Error(err))
		}
	}); err != nil {
		mp.logger.Error("failed to schedule outbox drain",
			zap.String("schedule", schedule),
			zap.Error(err))
	}

	return mp
}

// Start launches the cron scheduler.
func (mp *MailProcessor) Start() {
	if mp == nil || mp.cron == nil {
		return
	}
	mp.cron.Start()
	mp.logger.Info("mail processor started")
}

// Stop gracefully stops the scheduler.
func (mp *MailProcessor) Stop(ctx context.Context) {
	if mp == nil || mp.cron == nil {
		return
	}
	stopCtx := mp.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	mp.logger.Info("mail processor stopped")
}

// Drain attempts delivery for every queued message in the current batch.
func (mp *MailProcessor) Drain() error {
	if mp == nil || mp.store == nil {
		return nil
	}

	messages, err := mp.store.GetBatch(mp.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, msg := range messages {
		if err := mp.deliver(msg); err != nil {
			mp.logger.Error("failed to deliver queued email",
				zap.String("message_id", msg.ID),
				zap.String("to", msg.To),
				zap.Error(err))

			msg.Retries++
			if msg.Retries >= mp.cfg.MaxRetries {
				mp.logger.Warn("dropping email (max retries reached)", zap.String("message_id", msg.ID))
				_ = mp.store.Remove(msg)
				continue
			}

			if err := mp.store.Remove(msg); err != nil {
				mp.logger.Warn("failed to remove outbox message", zap.Error(err))
			}
			if err := mp.store.Requeue(msg); err != nil {
				mp.logger.Error("failed to requeue outbox message", zap.Error(err))
			}
			continue
		}

		if err := mp.store.Remove(msg); err != nil {
			mp.logger.Warn("failed to purge delivered message", zap.Error(err))
		}
	}

	return mp.store.Cleanup(time.Now().Add(-mp.cfg.Retention))
}

// Dispatch tries immediate delivery and falls back to the durable queue, so
// a transport outage never loses the message.
func (mp *MailProcessor) Dispatch(msg outbox.Message) error {
	if mp == nil || mp.store == nil {
		return fmt.Errorf("mail processor not configured")
	}
	err := mp.deliver(msg)
	if err == nil {
		return nil
	}
	mp.logger.Warn("immediate delivery failed, queueing", zap.Error(err))
	return mp.store.Enqueue(msg)
}

// Size returns the number of queued messages.
func (mp *MailProcessor) Size() int {
	if mp == nil || mp.store == nil {
		return 0
	}
	size, err := mp.store.Size()
	if err != nil {
		return 0
	}
	return size
}

func (mp *MailProcessor) deliver(msg outbox.Message) error {
	attributes, err := decodeAttributes(msg.Attributes)
	if err != nil {
		return err
	}
	return mp.sender.Send(msg.To, msg.Subject, msg.Template, attributes)
}
