// Package notify publishes change-notification signals over redis pub/sub.
// Clients subscribe per aggregate and debounce-refresh the affected view;
// the signal carries no payload beyond the aggregate name, it is purely an
// invalidation hint.
package notify

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Aggregates collaborators can subscribe to.
const (
	TopicOrders    = "notify:orders"
	TopicPayments  = "notify:payments"
	TopicProducts  = "notify:products"
	TopicInventory = "notify:inventory"
	TopicRequests  = "notify:requests"
	TopicSettings  = "notify:settings"
)

// Notifier publishes invalidation signals. Publishing is best-effort and
// never fails the surrounding request; staleness is bridged client-side by
// the debounced refetch.
type Notifier struct {
	rdb *redis.Client
}

// New returns a Notifier. A nil client yields a no-op notifier, which keeps
// unit tests and local runs without redis working.
func New(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// Publish signals that something under topic changed.
func (n *Notifier) Publish(ctx context.Context, topic string) {
	if n == nil || n.rdb == nil {
		return
	}
	if err := n.rdb.Publish(ctx, topic, "changed").Err(); err != nil {
		log.Warn().Str("topic", topic).Err(err).Msg("change notification dropped")
	}
}
