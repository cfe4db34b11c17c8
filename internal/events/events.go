package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/EO-DataHub/eodhp-admin-console/models"
	"github.com/apache/pulsar-client-go/pulsar"
	"github.com/rs/zerolog/log"
)

// producer is the part of pulsar.Producer the publisher uses.
type producer interface {
	Send(ctx context.Context, msg *pulsar.ProducerMessage) (pulsar.MessageID, error)
	Close()
}

// AuditPublisher sends audit events to a Pulsar topic.
type AuditPublisher struct {
	client   pulsar.Client
	producer producer
}

// NewAuditPublisher initializes the Pulsar client and producer.
func NewAuditPublisher(pulsarURL, topic string) (*AuditPublisher, error) {
	client, err := pulsar.NewClient(pulsar.ClientOptions{
		URL: pulsarURL,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create Pulsar client: %w", err)
	}

	p, err := client.CreateProducer(pulsar.ProducerOptions{
		Topic: topic,
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("could not create Pulsar producer: %w", err)
	}

	log.Info().Str("topic", topic).Msg("Pulsar audit publisher initialized")
	return &AuditPublisher{client: client, producer: p}, nil
}

// Record publishes an audit event keyed by the affected record.
func (p *AuditPublisher) Record(ctx context.Context, event models.AuditEvent) error {
	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not serialize audit event: %w", err)
	}

	_, err = p.producer.Send(ctx, &pulsar.ProducerMessage{
		Key:     event.Action + "/" + event.RecordID,
		Payload: message,
		Properties: map[string]string{
			"outcome": event.Outcome,
		},
		EventTime: event.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("could not send audit event to Pulsar: %w", err)
	}

	log.Debug().Str("event_id", event.ID.String()).Msg("audit event sent to Pulsar")
	return nil
}

// Close closes the producer and client.
func (p *AuditPublisher) Close() {
	p.producer.Close()
	if p.client != nil {
		p.client.Close()
	}
}
