package queue

import (
	"context"
	"crypto/tls"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

// Handler processes one raw event payload off the topic.
type Handler interface {
	HandleMessage(value []byte) error
}

type Consumer struct {
	reader  *kafka.Reader
	handler Handler
}

func NewConsumer(broker, topic, groupID, username, password string, handler Handler) *Consumer {
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}
	if username != "" {
		dialer.SASLMechanism = plain.Mechanism{Username: username, Password: password}
		dialer.TLS = &tls.Config{}
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{broker},
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 10e3,
		MaxBytes: 10e6,
		Dialer:   dialer,
	})

	return &Consumer{reader: reader, handler: handler}
}

// Listen blocks, delivering every event to the handler. Handler errors
// are logged and skipped: notification delivery is best-effort and a bad
// event must not stall the partition.
func (c *Consumer) Listen(ctx context.Context) {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[queue] read error: %v", err)
			continue
		}
		if err := c.handler.HandleMessage(msg.Value); err != nil {
			log.Printf("[queue] handler error: %v", err)
		}
	}
}

func (c *Consumer) Close() error { return c.reader.Close() }
