package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/playbook-leads/internal/entity"
)

type OnboardingPayload struct {
	LeadID    string    `json:"lead_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch publisher
}

func NewProducer(ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishOnboarding(ctx context.Context, payload OnboardingPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal onboarding payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    payload.LeadID,
			Timestamp:    time.Now().UTC(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish onboarding: %w", err)
	}
	return nil
}

// NotifyLeadCreated queues the onboarding email for the worker.
func (p *RabbitMQProducer) NotifyLeadCreated(ctx context.Context, lead entity.Lead) error {
	return p.PublishOnboarding(ctx, OnboardingPayload{
		LeadID:    lead.ID,
		Name:      lead.Name,
		Email:     lead.Email,
		CreatedAt: lead.CreatedAt,
	})
}
