package domain

import (
	"testing"
	"time"
)

func TestSessionIsExpired(t *testing.T) {
	now := time.Now()

	live := &Session{ExpiresAt: now.Add(time.Hour)}
	if live.IsExpired(now) {
		t.Error("live session reported expired")
	}

	stale := &Session{ExpiresAt: now.Add(-time.Minute)}
	if !stale.IsExpired(now) {
		t.Error("stale session reported live")
	}

	var missing *Session
	if !missing.IsExpired(now) {
		t.Error("nil session must read as expired")
	}
}
