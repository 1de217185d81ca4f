package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type OnboardingSender interface {
	SendOnboarding(to, name string) error
}

type Worker struct {
	Channel *amqp.Channel
	Sender  OnboardingSender
	Logger  *zap.Logger
}

func NewWorker(ch *amqp.Channel, sender OnboardingSender, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{Channel: ch, Sender: sender, Logger: logger}
}

// Start consumes queueName until ctx is done or the delivery channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.ConsumeWithContext(ctx,
		queueName,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	w.Logger.Info("onboarding worker waiting", zap.String("queue", queueName))

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			w.handle(d.Body, d)
		}
	}
}

type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// handle acks on success and nacks without requeue otherwise, which routes
// the message to the dead-letter queue.
func (w *Worker) handle(body []byte, ack acknowledger) {
	var payload OnboardingPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		w.Logger.Warn("invalid onboarding payload", zap.Error(err))
		_ = ack.Nack(false, false)
		return
	}

	if payload.Email == "" {
		w.Logger.Warn("onboarding payload without email", zap.String("lead_id", payload.LeadID))
		_ = ack.Nack(false, false)
		return
	}

	if err := w.Sender.SendOnboarding(payload.Email, payload.Name); err != nil {
		w.Logger.Warn("onboarding email failed",
			zap.String("lead_id", payload.LeadID),
			zap.String("email", payload.Email),
			zap.Error(err),
		)
		_ = ack.Nack(false, false)
		return
	}

	w.Logger.Info("onboarding email sent", zap.String("lead_id", payload.LeadID))
	_ = ack.Ack(false)
}
