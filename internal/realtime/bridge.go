package realtime

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const updatesChannel = "gignest:updates"

type envelope struct {
	RecipientID uuid.UUID       `json:"recipient_id"`
	Payload     json.RawMessage `json:"payload"`
}

// Bridge routes hub payloads through a Redis channel so every API instance
// delivers to its own connected clients.
type Bridge struct {
	RDB *redis.Client
	Hub *Hub
	Log *zap.Logger
}

func NewBridge(rdb *redis.Client, hub *Hub, log *zap.Logger) *Bridge {
	return &Bridge{RDB: rdb, Hub: hub, Log: log}
}

// Publish sends a payload for one recipient through the shared channel.
// Best-effort: a publish failure is logged, never surfaced.
func (b *Bridge) Publish(ctx context.Context, recipientID uuid.UUID, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		b.Log.Warn("marshal realtime payload", zap.Error(err))
		return
	}
	env, err := json.Marshal(envelope{RecipientID: recipientID, Payload: payload})
	if err != nil {
		b.Log.Warn("marshal realtime envelope", zap.Error(err))
		return
	}
	if err := b.RDB.Publish(ctx, updatesChannel, env).Err(); err != nil {
		b.Log.Warn("publish realtime update", zap.Error(err))
	}
}

// Run subscribes to the channel and feeds received envelopes into the local
// hub until ctx is cancelled.
func (b *Bridge) Run(ctx context.Context) {
	sub := b.RDB.Subscribe(ctx, updatesChannel)
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
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				b.Log.Warn("decode realtime envelope", zap.Error(err))
				continue
			}
			b.Hub.SendRawToUser(env.RecipientID, []byte(env.Payload))
		}
	}
}
