package outbox

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "outbox.db"), "outbox")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testMessage(to string) Message {
	attrs, _ := json.Marshal(map[string]string{"fullName": "Jack"})
	return Message{
		To:         to,
		Subject:    "Registration code",
		Template:   "registration-template",
		Attributes: attrs,
	}
}

func TestEnqueueAndGetBatch(t *testing.T) {
	store := openTestStore(t)

	if err := store.Enqueue(testMessage("a@example.com")); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	if err := store.Enqueue(testMessage("b@example.com")); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	messages, err := store.GetBatch(10)
	if err != nil {
		t.Fatalf("GetBatch() error = %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(messages))
	}
	if messages[0].ID == "" || messages[0].Timestamp.IsZero() {
		t.Error("message not normalized on enqueue")
	}

	size, err := store.Size()
	if err != nil || size != 2 {
		t.Errorf("Size() = %d, %v; want 2", size, err)
	}
}

func TestGetBatch_Limit(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 5; i++ {
		if err := store.Enqueue(testMessage("a@example.com")); err != nil {
			t.Fatalf("Enqueue() error = %v", err)
		}
	}

	messages, err := store.GetBatch(3)
	if err != nil {
		t.Fatalf("GetBatch() error = %v", err)
	}
	if len(messages) != 3 {
		t.Errorf("len(messages) = %d, want 3", len(messages))
	}
}

func TestRemove(t *testing.T) {
	store := openTestStore(t)
	if err := store.Enqueue(testMessage("a@example.com")); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	messages, _ := store.GetBatch(1)
	if err := store.Remove(messages[0]); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	size, _ := store.Size()
	if size != 0 {
		t.Errorf("Size() = %d after remove, want 0", size)
	}
}

func TestRequeue_MovesToBack(t *testing.T) {
	store := openTestStore(t)
	if err := store.Enqueue(testMessage("first@example.com")); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	messages, _ := store.GetBatch(1)
	first := messages[0]

	if err := store.Remove(first); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := store.Enqueue(testMessage("second@example.com")); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	if err := store.Requeue(first); err != nil {
		t.Fatalf("Requeue() error = %v", err)
	}

	messages, _ = store.GetBatch(10)
	if len(messages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(messages))
	}
	if messages[len(messages)-1].To != "first@example.com" {
		t.Errorf("requeued message should be last, got order %q, %q", messages[0].To, messages[1].To)
	}
}

func TestCleanup(t *testing.T) {
	store := openTestStore(t)

	old := testMessage("old@example.com")
	old.Timestamp = time.Now().Add(-48 * time.Hour)
	if err := store.Enqueue(old); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	if err := store.Enqueue(testMessage("fresh@example.com")); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	if err := store.Cleanup(time.Now().Add(-24 * time.Hour)); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}

	messages, _ := store.GetBatch(10)
	if len(messages) != 1 || messages[0].To != "fresh@example.com" {
		t.Errorf("messages after cleanup = %+v", messages)
	}
}
