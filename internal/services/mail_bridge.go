package services

import (
	"context"
	"encoding/json"

	"github.com/chirper/backend/domain"
	"github.com/chirper/backend/internal/infrastructure/outbox"
	"github.com/chirper/backend/usecase"
)

// MailBridge adapts the processor to the usecase.Notifier port.
type MailBridge struct {
	processor *MailProcessor
}

func NewMailBridge(processor *MailProcessor) *MailBridge {
	return &MailBridge{processor: processor}
}

func (b *MailBridge) SendTemplatedEmail(ctx context.Context, to, subject, template string, attributes map[string]interface{}) error {
	if b.processor == nil || to == "" {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(attributes)
	if err != nil {
		return err
	}
	msg := outbox.Message{
		To:         to,
		Subject:    subject,
		Template:   template,
		Attributes: payload,
	}
	return b.processor.Dispatch(msg)
}

func decodeAttributes(raw json.RawMessage) (map[string]interface{}, error) {
	attributes := map[string]interface{}{}
	if len(raw) == 0 {
		return attributes, nil
	}
	if err := json.Unmarshal(raw, &attributes); err != nil {
		return nil, err
	}
	return attributes, nil
}

var _ usecase.Notifier = (*MailBridge)(nil)
