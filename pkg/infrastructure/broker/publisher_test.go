package broker

import (
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	zapAdapter "github.com/mateusmacedo/go-checkout/pkg/infrastructure/zaplogger/adapter"
)

func TestNewPublisher_GoChannel(t *testing.T) {
	publisher, err := NewPublisher(Options{Kind: GoChannel}, zapAdapter.NewNopAppLogger())

	require.NoError(t, err)
	assert.IsType(t, &gochannel.GoChannel{}, publisher)
	assert.NoError(t, publisher.Close())
}

func TestNewPublisher_UnknownKind(t *testing.T) {
	_, err := NewPublisher(Options{Kind: "nats"}, zapAdapter.NewNopAppLogger())

	assert.EqualError(t, err, `broker: unsupported kind "nats"`)
}

func TestNewPublisher_GoChannelIsSubscriber(t *testing.T) {
	publisher, err := NewPublisher(Options{Kind: GoChannel}, zapAdapter.NewNopAppLogger())
	require.NoError(t, err)
	defer publisher.Close()

	_, ok := publisher.(message.Subscriber)
	assert.True(t, ok)
}

func TestNewSubscriber_RejectsInProcessKind(t *testing.T) {
	_, err := NewSubscriber(Options{Kind: GoChannel}, zapAdapter.NewNopAppLogger())

	assert.EqualError(t, err, `broker: unsupported subscriber kind "gochannel"`)
}
