// Package events publishes what shoppers ask the assistant, for offline
// analysis. Publishing is best effort and never changes a chat reply.
package events

import (
	"context"
	"time"
)

type ChatQueryEvent struct {
	ProfileID   string
	Query       string
	Rule        string
	ResultCount int
	OccurredAt  time.Time
}

type Publisher interface {
	PublishChatQuery(ctx context.Context, e ChatQueryEvent) error
	Close()
}

// NopPublisher drops every event. It is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishChatQuery(context.Context, ChatQueryEvent) error { return nil }

func (NopPublisher) Close() {}
