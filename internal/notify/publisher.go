package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"

	"github.com/royal-shore/core-banking/internal/domain"
)

const (
	exchangeName = "ledger.events"
	routingKey   = "ledger.movement.completed"
)

// MovementEvent is the audit payload published for every completed
// movement.
type MovementEvent struct {
	EventID       string          `json:"event_id"`
	TransactionID string          `json:"transaction_id"`
	UserID        string          `json:"user_id"`
	AccountNumber string          `json:"account_number"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	Currency      string          `json:"currency"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// Publisher emits movement events to a RabbitMQ topic exchange.
type Publisher struct {
	channel *amqp.Channel
	conn    *amqp.Connection
}

// NewPublisher connects to RabbitMQ and declares the events exchange.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchangeName, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &Publisher{channel: channel, conn: conn}, nil
}

func (p *Publisher) PublishMovementCompleted(ctx context.Context, txn domain.Transaction) error {
	event := MovementEvent{
		EventID:       uuid.NewString(),
		TransactionID: txn.TransactionID,
		UserID:        txn.UserID,
		AccountNumber: txn.AccountNumber,
		Type:          string(txn.Type),
		Status:        string(txn.Status),
		Amount:        txn.Amount,
		Fee:           txn.Fee,
		Currency:      txn.Currency,
		BalanceAfter:  txn.BalanceAfter,
		OccurredAt:    time.Now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal movement event: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		exchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.EventID,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish movement event: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
