package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/playbook-leads/internal/entity"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(ctx, exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendOnboarding(to, name string) error {
	args := m.Called(to, name)
	return args.Error(0)
}

type recordingAck struct {
	acked, nacked, requeued bool
}

func (r *recordingAck) Ack(bool) error { r.acked = true; return nil }
func (r *recordingAck) Nack(_ bool, requeue bool) error {
	r.nacked = true
	r.requeued = requeue
	return nil
}

func TestNotifyLeadCreatedPublishesPersistentMessage(t *testing.T) {
	pub := new(MockPublisher)
	var published amqp.Publishing
	pub.On("PublishWithContext", mock.Anything, ExchangeName, RoutingKey, false, false, mock.Anything).
		Run(func(args mock.Arguments) { published = args.Get(5).(amqp.Publishing) }).
		Return(nil)

	p := &RabbitMQProducer{Ch: pub}
	lead := entity.Lead{ID: "lead-1", Name: "Ana", Email: "ana@x.com", CreatedAt: time.Now().UTC()}

	require.NoError(t, p.NotifyLeadCreated(context.Background(), lead))

	assert.Equal(t, amqp.Persistent, published.DeliveryMode)
	assert.Equal(t, "lead-1", published.MessageId)
	var payload OnboardingPayload
	require.NoError(t, json.Unmarshal(published.Body, &payload))
	assert.Equal(t, "ana@x.com", payload.Email)
	assert.Equal(t, "Ana", payload.Name)
}

func TestNotifyLeadCreatedPublishFailure(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("channel closed"))

	err := (&RabbitMQProducer{Ch: pub}).NotifyLeadCreated(context.Background(), entity.Lead{ID: "x"})
	assert.ErrorContains(t, err, "channel closed")
}

func TestWorkerAcksDeliveredEmail(t *testing.T) {
	sender := new(MockSender)
	sender.On("SendOnboarding", "ana@x.com", "Ana").Return(nil)
	w := NewWorker(nil, sender, nil)
	ack := &recordingAck{}

	w.handle([]byte(`{"lead_id":"1","name":"Ana","email":"ana@x.com"}`), ack)

	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
}

func TestWorkerDeadLettersFailures(t *testing.T) {
	sender := new(MockSender)
	sender.On("SendOnboarding", mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	w := NewWorker(nil, sender, nil)

	cases := map[string]string{
		"malformed":     `{`,
		"missing email": `{"lead_id":"1","name":"Ana"}`,
		"send failure":  `{"lead_id":"1","name":"Ana","email":"ana@x.com"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			ack := &recordingAck{}
			w.handle([]byte(body), ack)
			assert.True(t, ack.nacked)
			assert.False(t, ack.requeued)
			assert.False(t, ack.acked)
		})
	}
}

type recordingDeclarer struct {
	queues map[string]amqp.Table
	binds  [][3]string
}

func (r *recordingDeclarer) ExchangeDeclare(string, string, bool, bool, bool, bool, amqp.Table) error {
	return nil
}

func (r *recordingDeclarer) QueueDeclare(name string, _, _, _, _ bool, args amqp.Table) (amqp.Queue, error) {
	if r.queues == nil {
		r.queues = map[string]amqp.Table{}
	}
	r.queues[name] = args
	return amqp.Queue{Name: name}, nil
}

func (r *recordingDeclarer) QueueBind(name, key, exchange string, _ bool, _ amqp.Table) error {
	r.binds = append(r.binds, [3]string{name, key, exchange})
	return nil
}

func TestSetupTopologyRoutesNacksToDLQ(t *testing.T) {
	d := &recordingDeclarer{}
	require.NoError(t, setupTopology(d))

	assert.Equal(t, DLXName, d.queues[QueueName]["x-dead-letter-exchange"])
	assert.Contains(t, d.binds, [3]string{DLQName, RoutingKey, DLXName})
	assert.Contains(t, d.binds, [3]string{QueueName, RoutingKey, ExchangeName})
}
