package events

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/twmb/franz-go/pkg/kgo"
)

// ProducerClient is the part of *kgo.Client the publisher needs.
type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type KafkaPublisher struct {
	cl  ProducerClient
	log logrus.FieldLogger
}

// NewKafkaClient connects to the brokers and checks they are reachable.
func NewKafkaClient(ctx context.Context, seedBrokers []string, topic string) (*kgo.Client, error) {
	const op = "events.NewKafkaClient"

	cl, err := kgo.NewClient(
		kgo.SeedBrokers(seedBrokers...),
		kgo.DefaultProduceTopicAlways(),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cl.Ping(ctx); err != nil {
		cl.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cl, nil
}

func NewKafkaPublisher(cl ProducerClient, log logrus.FieldLogger) *KafkaPublisher {
	return &KafkaPublisher{cl: cl, log: log}
}

// PublishChatQuery encodes e with the ChatQuery Avro schema and produces it
// keyed by profile, so one profile's queries stay ordered.
func (p *KafkaPublisher) PublishChatQuery(ctx context.Context, e ChatQueryEvent) error {
	const op = "KafkaPublisher.PublishChatQuery"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	v, err := encodeChatQuery(e)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r := &kgo.Record{Key: []byte(e.ProfileID), Value: v}
	if err := p.cl.ProduceSync(ctx, r).FirstErr(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() {
	p.log.Info("closing event producer")
	p.cl.Close()
}
