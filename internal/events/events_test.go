package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/cyphera/cyphera-relay/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingSink struct{ calls int }

func (f *failingSink) Publish(context.Context, events.Event) error {
	f.calls++
	return errors.New("sink down")
}

type fakeSQS struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQS) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{}, nil
}

func TestNew(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	ev := events.New(events.GasCovered, at, "user", "0xabc", "amount", "3", "dangling")

	assert.Equal(t, events.GasCovered, ev.Type)
	assert.Equal(t, at, ev.OccurredAt)
	assert.Equal(t, map[string]string{"user": "0xabc", "amount": "3"}, ev.Attributes)
	assert.NotEqual(t, [16]byte{}, [16]byte(ev.ID))
}

func TestEmitter_ContinuesPastFailingSink(t *testing.T) {
	failing := &failingSink{}
	mem := &events.MemorySink{}
	emitter := events.NewEmitter(zap.NewNop(), failing, mem)

	emitter.Emit(context.Background(), events.New(events.PoolReplenished, time.Now(), "amount", "10"))

	assert.Equal(t, 1, failing.calls)
	require.Len(t, mem.Events(), 1)
	assert.Len(t, mem.OfType(events.PoolReplenished), 1)
	assert.Empty(t, mem.OfType(events.GasCovered))
}

func TestSQSSink_Publish(t *testing.T) {
	client := &fakeSQS{}
	sink := events.NewSQSSink(client, "https://sqs.local/queue")
	ev := events.New(events.RelayExecuted, time.Now(), "succeeded", "true")

	require.NoError(t, sink.Publish(context.Background(), ev))
	require.NotNil(t, client.input)
	assert.Equal(t, "https://sqs.local/queue", *client.input.QueueUrl)
	assert.Equal(t, "RelayExecuted", *client.input.MessageAttributes["EventType"].StringValue)

	var decoded events.Event
	require.NoError(t, json.Unmarshal([]byte(*client.input.MessageBody), &decoded))
	assert.Equal(t, ev.ID, decoded.ID)
	assert.Equal(t, "true", decoded.Attributes["succeeded"])
}

func TestSQSSink_PublishError(t *testing.T) {
	sink := events.NewSQSSink(&fakeSQS{err: errors.New("throttled")}, "q")
	err := sink.Publish(context.Background(), events.New(events.Paused, time.Now()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send event to SQS")
}

func TestLogSink_Publish(t *testing.T) {
	sink := events.NewLogSink(zap.NewNop())
	assert.NoError(t, sink.Publish(context.Background(), events.New(events.Unpaused, time.Now(), "by", "0x1")))
}
