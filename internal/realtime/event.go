package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	EventRehearsalScheduled = "rehearsal_scheduled"
	EventRehearsalUpdated   = "rehearsal_updated"
	EventRehearsalCancelled = "rehearsal_cancelled"
)

// Event is a band-scoped realtime message fanned out to every connection in
// the band's room.
type Event struct {
	Type   string      `json:"event"`
	BandID string      `json:"bandId"`
	Data   interface{} `json:"data,omitempty"`
}

// Publisher delivers band events to the realtime layer. Services hold this
// interface so tests can substitute a recorder.
type Publisher interface {
	PublishBandEvent(ctx context.Context, bandID string, event Event) error
}

// RoomName maps a band id to its room / pub-sub channel name.
func RoomName(bandID string) string {
	return "band_" + bandID
}

// RedisPublisher publishes band events over Redis pub/sub so every server
// instance's hub can fan them out to its own connections.
type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) PublishBandEvent(ctx context.Context, bandID string, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.rdb.Publish(ctx, RoomName(bandID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}
