// Package events publishes detected alerts to Kafka for downstream
// consumers (store dashboards, notification fan-out). Publishing is
// optional: with no brokers configured the publisher is a no-op and the
// advisory response is unaffected either way.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/greenshelf/advisory-engine/engine"
)

type AlertPublisher struct {
	writer *kafka.Writer
}

// NewAlertPublisher returns a no-op publisher when brokers is empty.
func NewAlertPublisher(brokers []string, topic string) *AlertPublisher {
	if len(brokers) == 0 || topic == "" {
		return &AlertPublisher{}
	}
	return &AlertPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 250 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
			Async:        false,
		},
	}
}

// Publish writes one message per alert, keyed by store location so alerts
// for the same store stay ordered.
func (p *AlertPublisher) Publish(ctx context.Context, alerts []engine.Alert) error {
	if p == nil || p.writer == nil || len(alerts) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(alerts))
	for _, a := range alerts {
		body, err := json.Marshal(a)
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(a.StoreLocation),
			Value: body,
			Time:  time.Now().UTC(),
		})
	}
	return p.writer.WriteMessages(ctx, msgs...)
}

func (p *AlertPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
