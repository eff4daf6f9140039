package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message is an email waiting for delivery. Messages survive restarts and
// transport outages; the processor drains them in enqueue order.
type Message struct {
	ID         string          `json:"id"`
	To         string          `json:"to"`
	Subject    string          `json:"subject"`
	Template   string          `json:"template"`
	Attributes json.RawMessage `json:"attributes"`
	Retries    int             `json:"retries"`
	Timestamp  time.Time       `json:"timestamp"`

	bucketKey []byte
}

func (m *Message) normalize() {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now()
	}
}
