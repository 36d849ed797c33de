package events

import (
	"time"

	"github.com/hamba/avro/v2"
)

const chatQuerySchemaTextV1 = `{
	"type": "record",
	"name": "ChatQuery",
	"namespace": "storefront.assistant.v1",
	"fields": [
		{"name": "profile_id", "type": "string"},
		{"name": "query", "type": "string"},
		{"name": "rule", "type": "string"},
		{"name": "result_count", "type": "int"},
		{"name": "occurred_at", "type": "long"}
	]
}`

var chatQuerySchema = avro.MustParse(chatQuerySchemaTextV1)

// chatQueryV1 is the wire form of ChatQueryEvent. occurred_at is unix millis.
type chatQueryV1 struct {
	ProfileID   string `avro:"profile_id"`
	Query       string `avro:"query"`
	Rule        string `avro:"rule"`
	ResultCount int    `avro:"result_count"`
	OccurredAt  int64  `avro:"occurred_at"`
}

func encodeChatQuery(e ChatQueryEvent) ([]byte, error) {
	return avro.Marshal(chatQuerySchema, chatQueryV1{
		ProfileID:   e.ProfileID,
		Query:       e.Query,
		Rule:        e.Rule,
		ResultCount: e.ResultCount,
		OccurredAt:  e.OccurredAt.UnixMilli(),
	})
}

func decodeChatQuery(data []byte) (ChatQueryEvent, error) {
	var v chatQueryV1
	if err := avro.Unmarshal(chatQuerySchema, data, &v); err != nil {
		return ChatQueryEvent{}, err
	}
	return ChatQueryEvent{
		ProfileID:   v.ProfileID,
		Query:       v.Query,
		Rule:        v.Rule,
		ResultCount: v.ResultCount,
		OccurredAt:  time.UnixMilli(v.OccurredAt).UTC(),
	}, nil
}
