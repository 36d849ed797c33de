package events

import (
	"context"
	"errors"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

type mockProducerClient struct {
	mock.Mock
}

func (m *mockProducerClient) ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	args := m.Called(ctx, rs)
	return args.Get(0).(kgo.ProduceResults)
}

func (m *mockProducerClient) Close() {
	m.Called()
}

func sampleEvent() ChatQueryEvent {
	return ChatQueryEvent{
		ProfileID:   "profile-1",
		Query:       "Show me laptops under $1500",
		Rule:        "price_under",
		ResultCount: 1,
		OccurredAt:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestChatQuerySchema(t *testing.T) {
	e := sampleEvent()

	data, err := encodeChatQuery(e)
	require.NoError(t, err)

	got, err := decodeChatQuery(data)
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestKafkaPublisher_PublishChatQuery(t *testing.T) {
	log, _ := logtest.NewNullLogger()

	t.Run("Ok", func(t *testing.T) {
		cl := new(mockProducerClient)
		var sent []*kgo.Record
		cl.On("ProduceSync", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(1).([]*kgo.Record) }).
			Return(kgo.ProduceResults{{}})

		p := NewKafkaPublisher(cl, log)
		require.NoError(t, p.PublishChatQuery(context.Background(), sampleEvent()))

		require.Len(t, sent, 1)
		assert.Equal(t, []byte("profile-1"), sent[0].Key)
		got, err := decodeChatQuery(sent[0].Value)
		require.NoError(t, err)
		assert.Equal(t, sampleEvent(), got)
		cl.AssertExpectations(t)
	})

	t.Run("ProduceError", func(t *testing.T) {
		produceErr := errors.New("broker down")
		cl := new(mockProducerClient)
		cl.On("ProduceSync", mock.Anything, mock.Anything).
			Return(kgo.ProduceResults{{Err: produceErr}})

		p := NewKafkaPublisher(cl, log)
		err := p.PublishChatQuery(context.Background(), sampleEvent())
		assert.ErrorIs(t, err, produceErr)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		cl := new(mockProducerClient)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		p := NewKafkaPublisher(cl, log)
		err := p.PublishChatQuery(ctx, sampleEvent())
		assert.ErrorIs(t, err, context.Canceled)
		cl.AssertNotCalled(t, "ProduceSync", mock.Anything, mock.Anything)
	})
}

func TestKafkaPublisher_Close(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	cl := new(mockProducerClient)
	cl.On("Close").Return()

	NewKafkaPublisher(cl, log).Close()
	cl.AssertExpectations(t)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.PublishChatQuery(context.Background(), sampleEvent()))
	p.Close()
}
