package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"eventhub/internal/queue"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NotificationService emits registration notifications. When a broker URL
// is configured the event goes to RabbitMQ; otherwise the verification
// token is logged so the flow can be exercised without infrastructure.
type NotificationService struct {
	amqpURL string
}

// NewNotificationService creates a new notification service
func NewNotificationService(amqpURL string) *NotificationService {
	if amqpURL == "" {
		log.Println("RabbitMQ not configured, verification tokens will be logged")
	}
	return &NotificationService{amqpURL: amqpURL}
}

// NotifyUserRegistered emits the verification token for a new user.
// Failures are logged and returned but never abort the registration.
func (s *NotificationService) NotifyUserRegistered(ctx context.Context, userID, email, verificationToken string) error {
	event := queue.UserRegisteredEvent{
		UserID:            userID,
		Email:             email,
		VerificationToken: verificationToken,
		RegisteredAt:      time.Now().UTC().Format(time.RFC3339),
	}

	if s.amqpURL == "" {
		log.Printf("Simulated verification token for %s: %s", email, verificationToken)
		return nil
	}

	if err := s.publish(ctx, event); err != nil {
		log.Printf("⚠️ Failed to publish %s event: %v", queue.UserRegisteredQueue, err)
		return err
	}
	return nil
}

// publish sends the event to a durable queue with a persistent message
func (s *NotificationService) publish(ctx context.Context, event queue.UserRegisteredEvent) error {
	conn, err := amqp.Dial(s.amqpURL)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queue.UserRegisteredQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return ch.PublishWithContext(pubCtx,
		"",                        // default exchange
		queue.UserRegisteredQueue, // routing key
		false,                     // mandatory
		false,                     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
