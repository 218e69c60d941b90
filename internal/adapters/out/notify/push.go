package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"multicleaner/internal/core/domain/model/notice"
	"multicleaner/internal/core/ports"
	"multicleaner/internal/pkg/errs"
)

type pushPayload struct {
	Token          string            `json:"token"`
	Title          string            `json:"title"`
	Body           string            `json:"body"`
	Data           map[string]string `json:"data,omitempty"`
	ActionRequired bool              `json:"actionRequired"`
	ExpiresAt      *time.Time        `json:"expiresAt,omitempty"`
}

// PushChannel posts the message to a push relay for recipients that registered a device token.
type PushChannel struct {
	endpoint string
	client   *http.Client
	contacts ports.UserDirectory
}

func NewPushChannel(endpoint string, client *http.Client, contacts ports.UserDirectory) *PushChannel {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &PushChannel{endpoint: endpoint, client: client, contacts: contacts}
}

func (c *PushChannel) Send(ctx context.Context, msg notice.Message) error {
	contact, err := c.contacts.Get(ctx, msg.Recipient)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}
	if contact.PushToken == "" {
		return nil
	}

	body, err := json.Marshal(pushPayload{
		Token:          contact.PushToken,
		Title:          msg.Title,
		Body:           msg.Body,
		Data:           msg.Data,
		ActionRequired: msg.ActionRequired,
		ExpiresAt:      msg.ExpiresAt,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push relay returned status %d", resp.StatusCode)
	}
	return nil
}
