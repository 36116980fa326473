package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// ChannelBus is an in-process bus on top of a watermill Go channel.
type ChannelBus struct {
	pubSub *gochannel.GoChannel
	topic  string
}

func NewChannelBus(topic string) *ChannelBus {
	return &ChannelBus{
		pubSub: gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false)),
		topic:  topic,
	}
}

func (b *ChannelBus) Publish(_ context.Context, event Event) error {
	env := NewEnvelope(event)
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(env.Id, data)
	msg.Metadata.Set("type", env.Type)
	return b.pubSub.Publish(b.topic, msg)
}

// Subscribe delivers messages until ctx is cancelled or the bus is closed.
// Messages published before the first subscription are dropped.
func (b *ChannelBus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, b.topic)
}

func (b *ChannelBus) Close() error {
	return b.pubSub.Close()
}
