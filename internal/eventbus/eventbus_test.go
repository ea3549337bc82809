package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/Black-And-White-Club/euchre-bot/config"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/nats-io/nkeys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemory_RoundTrip(t *testing.T) {
	bus := NewInMemory(watermill.NopLogger{})
	defer bus.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	msgs, err := bus.Subscribe(ctx, "euchre.test")
	require.NoError(t, err)

	require.NoError(t, bus.Publish("euchre.test", message.NewMessage(watermill.NewUUID(), []byte(`{"ok":true}`))))

	select {
	case msg := <-msgs:
		assert.JSONEq(t, `{"ok":true}`, string(msg.Payload))
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("timed out waiting for message")
	}
}

func TestNatsOptions(t *testing.T) {
	opts, err := natsOptions(config.NATSConfig{URL: "nats://localhost:4222"})
	require.NoError(t, err)
	base := len(opts)

	kp, err := nkeys.CreateUser()
	require.NoError(t, err)
	seed, err := kp.Seed()
	require.NoError(t, err)

	opts, err = natsOptions(config.NATSConfig{URL: "nats://localhost:4222", NKeySeed: string(seed)})
	require.NoError(t, err)
	assert.Len(t, opts, base+1)

	_, err = natsOptions(config.NATSConfig{URL: "nats://localhost:4222", NKeySeed: "not-a-seed"})
	assert.Error(t, err)
}
