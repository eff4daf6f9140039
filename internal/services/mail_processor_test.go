package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/chirper/backend/internal/infrastructure/outbox"
)

type fakeSender struct {
	fail  bool
	sends []string
}

func (s *fakeSender) Send(to, subject, templateName string, attributes map[string]interface{}) error {
	if s.fail {
		return errors.New("smtp unavailable")
	}
	s.sends = append(s.sends, to)
	return nil
}

func newTestProcessor(t *testing.T, sender *fakeSender, maxRetries int) (*MailProcessor, *outbox.Store) {
	t.Helper()
	store, err := outbox.Open(filepath.Join(t.TempDir(), "outbox.db"), "outbox")
	if err != nil {
		t.Fatalf("outbox.Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	mp := NewMailProcessor(store, sender, zap.NewNop(), ProcessorConfig{
		Interval:   time.Hour, // drained manually in tests
		BatchSize:  10,
		MaxRetries: maxRetries,
	})
	return mp, store
}

func TestDispatch_ImmediateDelivery(t *testing.T) {
	sender := &fakeSender{}
	mp, store := newTestProcessor(t, sender, 3)

	msg := outbox.Message{To: "jack@example.com", Subject: "s", Template: "registration-template"}
	if err := mp.Dispatch(msg); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if len(sender.sends) != 1 {
		t.Errorf("sends = %d, want 1", len(sender.sends))
	}
	size, _ := store.Size()
	if size != 0 {
		t.Errorf("queued = %d, want 0 after immediate delivery", size)
	}
}

func TestDispatch_QueuesOnFailure(t *testing.T) {
	sender := &fakeSender{fail: true}
	mp, store := newTestProcessor(t, sender, 3)

	msg := outbox.Message{To: "jack@example.com", Subject: "s", Template: "registration-template"}
	if err := mp.Dispatch(msg); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	size, _ := store.Size()
	if size != 1 {
		t.Fatalf("queued = %d, want 1", size)
	}

	// Transport recovers; the next drain delivers the queued message.
	sender.fail = false
	if err := mp.Drain(); err != nil {
		t.Fatalf("Drain() error = %v", err)
	}
	if len(sender.sends) != 1 {
		t.Errorf("sends = %d, want 1 after drain", len(sender.sends))
	}
	size, _ = store.Size()
	if size != 0 {
		t.Errorf("queued = %d, want 0 after drain", size)
	}
}

func TestDrain_DropsAfterMaxRetries(t *testing.T) {
	sender := &fakeSender{fail: true}
	mp, store := newTestProcessor(t, sender, 2)

	if err := mp.Dispatch(outbox.Message{To: "jack@example.com", Template: "registration-template"}); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	// Each failed drain bumps the retry counter; the message is dropped
	// once it reaches MaxRetries.
	for i := 0; i < 3; i++ {
		if err := mp.Drain(); err != nil {
			t.Fatalf("Drain() error = %v", err)
		}
	}

	size, _ := store.Size()
	if size != 0 {
		t.Errorf("queued = %d, want 0 after retries exhausted", size)
	}
}

func TestNewMailProcessor_ClampsShortInterval(t *testing.T) {
	store, err := outbox.Open(filepath.Join(t.TempDir(), "outbox.db"), "outbox")
	if err != nil {
		t.Fatalf("outbox.Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	// A sub-second interval would render as "@every 0s", which cron rejects.
	mp := NewMailProcessor(store, &fakeSender{}, zap.NewNop(), ProcessorConfig{
		Interval: 100 * time.Millisecond,
	})
	if mp.cfg.Interval != time.Second {
		t.Errorf("Interval = %v, want clamp to 1s", mp.cfg.Interval)
	}
	if len(mp.cron.Entries()) != 1 {
		t.Errorf("scheduled entries = %d, want the drain job registered", len(mp.cron.Entries()))
	}
}

func TestStopIsGraceful(t *testing.T) {
	sender := &fakeSender{}
	mp, _ := newTestProcessor(t, sender, 3)

	mp.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	mp.Stop(ctx)
}
