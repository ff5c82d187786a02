package events

import (
	"context"
	"encoding/json"
	"time"

	kgo "github.com/segmentio/kafka-go"
)

type Consumer struct {
	reader *kgo.Reader
}

func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	r := kgo.NewReader(kgo.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0, // manual commits
	})

	return &Consumer{reader: r}
}

func (c *Consumer) Close() error { return c.reader.Close() }

// ReadOutcome blocks for the next outcome event and returns it with a
// commit function to call after it has been handled.
func (c *Consumer) ReadOutcome(ctx context.Context) (NotificationOutcome, func(context.Context) error, error) {
	m, err := c.reader.FetchMessage(ctx)
	if err != nil {
		return NotificationOutcome{}, nil, err
	}

	var o NotificationOutcome
	if err := json.Unmarshal(m.Value, &o); err != nil {
		// commit bad messages so we don't get stuck re-reading them
		_ = c.reader.CommitMessages(ctx, m)
		return NotificationOutcome{}, nil, err
	}

	commit := func(ctx context.Context) error {
		cctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		return c.reader.CommitMessages(cctx, m)
	}

	return o, commit, nil
}
