package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/EO-DataHub/eodhp-admin-console/models"
	"github.com/apache/pulsar-client-go/pulsar"
)

// AuditConsumer reads audit events back from the topic.
type AuditConsumer struct {
	client   pulsar.Client
	consumer pulsar.Consumer
}

// NewAuditConsumer initializes the Pulsar client and an exclusive consumer.
func NewAuditConsumer(pulsarURL, topic, subscription string) (*AuditConsumer, error) {
	client, err := pulsar.NewClient(pulsar.ClientOptions{URL: pulsarURL})
	if err != nil {
		return nil, fmt.Errorf("could not create Pulsar client: %w", err)
	}

	consumer, err := client.Subscribe(pulsar.ConsumerOptions{
		Topic:                       topic,
		SubscriptionName:            subscription,
		Type:                        pulsar.Exclusive,
		SubscriptionInitialPosition: pulsar.SubscriptionPositionEarliest,
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("could not create Pulsar consumer: %w", err)
	}

	return &AuditConsumer{client: client, consumer: consumer}, nil
}

// Receive blocks for the next event and acknowledges it. Messages that are
// not audit events are acknowledged and reported as errors.
func (c *AuditConsumer) Receive(ctx context.Context) (models.AuditEvent, error) {
	msg, err := c.consumer.Receive(ctx)
	if err != nil {
		return models.AuditEvent{}, fmt.Errorf("failed to receive message: %w", err)
	}
	defer c.consumer.Ack(msg)

	return DecodeAuditEvent(msg.Payload())
}

// Close cleans up the Pulsar consumer and client.
func (c *AuditConsumer) Close() {
	c.consumer.Close()
	c.client.Close()
}

// DecodeAuditEvent parses a message payload.
func DecodeAuditEvent(payload []byte) (models.AuditEvent, error) {
	var event models.AuditEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return models.AuditEvent{}, fmt.Errorf("invalid audit event: %w", err)
	}
	return event, nil
}
