package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/spinhall/ledgercore/internal/domain"
)

// Notifier implements usecase.Notifier on Redis pub/sub. Events are
// fire-and-forget invalidation signals: subscribers must re-fetch the
// account, never apply a broadcast balance.
type Notifier struct {
	client  *redis.Client
	channel string
}

// NewNotifier creates a new Notifier publishing on the given channel.
func NewNotifier(client *redis.Client, channel string) *Notifier {
	if channel == "" {
		channel = "ledger.events"
	}
	return &Notifier{client: client, channel: channel}
}

// Publish sends the notification on the shared channel and on a
// per-account channel for targeted subscriptions.
func (n *Notifier) Publish(ctx context.Context, event domain.Notification) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		return err
	}

	if event.AccountID != "" {
		return n.client.Publish(ctx, n.channel+":"+event.AccountID, payload).Err()
	}

	return nil
}
