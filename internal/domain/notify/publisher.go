package notify

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/playgrid/playgrid-api/internal/domain/booking"
)

// bookingChannel is the Redis pub/sub channel booking events travel on,
// so every API instance can push to its own websocket clients.
const bookingChannel = "playgrid:bookings"

// Publisher bridges booking events to websocket clients, through Redis
// when available and directly otherwise.
type Publisher struct {
	hub   *Hub
	redis *redis.Client
}

// NewPublisher creates a publisher. redisClient may be nil, events then
// stay within this process.
func NewPublisher(hub *Hub, redisClient *redis.Client) *Publisher {
	return &Publisher{hub: hub, redis: redisClient}
}

// PublishBookingEvent implements booking.EventPublisher
func (p *Publisher) PublishBookingEvent(ctx context.Context, event booking.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal booking event")
		return
	}

	if p.redis == nil {
		p.deliver(event, payload)
		return
	}

	if err := p.redis.Publish(ctx, bookingChannel, payload).Err(); err != nil {
		log.Error().Err(err).Msg("failed to publish booking event, delivering locally")
		p.deliver(event, payload)
	}
}

// Listen consumes the Redis channel and delivers events to local
// websocket clients. Blocks until ctx is cancelled, run it in its own
// goroutine. No-op without Redis.
func (p *Publisher) Listen(ctx context.Context) {
	if p.redis == nil {
		return
	}

	sub := p.redis.Subscribe(ctx, bookingChannel)
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
			var event booking.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Error().Err(err).Msg("failed to decode booking event")
				continue
			}
			p.deliver(event, []byte(msg.Payload))
		}
	}
}

// deliver pushes the event to the facility owner and the booker
func (p *Publisher) deliver(event booking.Event, payload []byte) {
	if event.OwnerID != uuid.Nil {
		p.hub.Send(event.OwnerID, payload)
	}
	if event.UserID != uuid.Nil && event.UserID != event.OwnerID {
		p.hub.Send(event.UserID, payload)
	}
}
