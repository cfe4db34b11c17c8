package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/EO-DataHub/eodhp-admin-console/models"
	"github.com/apache/pulsar-client-go/pulsar"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducer struct {
	sent   []*pulsar.ProducerMessage
	err    error
	closed bool
}

func (p *fakeProducer) Send(_ context.Context, msg *pulsar.ProducerMessage) (pulsar.MessageID, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.sent = append(p.sent, msg)
	return nil, nil
}

func (p *fakeProducer) Close() {
	p.closed = true
}

func TestAuditPublisher_Record(t *testing.T) {
	fp := &fakeProducer{}
	publisher := &AuditPublisher{producer: fp}

	event := models.AuditEvent{
		ID:        uuid.New(),
		Action:    "del_user",
		RecordID:  "7",
		Endpoint:  "/admin/del_user/7",
		Outcome:   models.OutcomeSuccess,
		Actor:     "admin",
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, publisher.Record(context.Background(), event))

	require.Len(t, fp.sent, 1)
	msg := fp.sent[0]
	assert.Equal(t, "del_user/7", msg.Key)
	assert.Equal(t, "success", msg.Properties["outcome"])
	assert.Equal(t, event.CreatedAt, msg.EventTime)

	decoded, err := DecodeAuditEvent(msg.Payload)
	require.NoError(t, err)
	assert.Equal(t, event, decoded)

	publisher.Close()
	assert.True(t, fp.closed)
}

func TestAuditPublisher_SendError(t *testing.T) {
	publisher := &AuditPublisher{producer: &fakeProducer{err: errors.New("topic not found")}}

	err := publisher.Record(context.Background(), models.AuditEvent{Action: "del_group", RecordID: "1"})
	assert.ErrorContains(t, err, "topic not found")
}

func TestDecodeAuditEvent_Invalid(t *testing.T) {
	_, err := DecodeAuditEvent([]byte("not json"))
	assert.Error(t, err)
}
