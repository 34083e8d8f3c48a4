package realtime

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Bridge subscribes to every band channel on Redis and fans received events
// out to the local hub, so events published by any instance reach every
// connected client.
type Bridge struct {
	rdb    *redis.Client
	hub    *Hub
	logger zerolog.Logger
}

func NewBridge(rdb *redis.Client, hub *Hub, logger zerolog.Logger) *Bridge {
	return &Bridge{
		rdb:    rdb,
		hub:    hub,
		logger: logger.With().Str("component", "realtime_bridge").Logger(),
	}
}

// Run blocks until ctx is cancelled.
func (b *Bridge) Run(ctx context.Context) {
	sub := b.rdb.PSubscribe(ctx, "band_*")
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			b.hub.Broadcast(msg.Channel, []byte(msg.Payload))
		}
	}
}
