package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/royal-shore/core-banking/internal/adapter/repository/repo_interfaces"
	"github.com/royal-shore/core-banking/internal/domain"
	"github.com/royal-shore/core-banking/internal/logger"
)

// EventPublisher publishes movement events to external systems.
type EventPublisher interface {
	PublishMovementCompleted(ctx context.Context, txn domain.Transaction) error
}

// Sink turns completed movements into user notifications and audit
// events. All work is best effort; the ledger never waits on it.
type Sink struct {
	notifications repo_interfaces.NotificationRepository
	publisher     EventPublisher
}

// NewSink builds a Sink. Pass nil for publisher when no message broker
// is configured.
func NewSink(notifications repo_interfaces.NotificationRepository, publisher EventPublisher) *Sink {
	return &Sink{notifications: notifications, publisher: publisher}
}

func (s *Sink) MovementCompleted(ctx context.Context, txn domain.Transaction) {
	title, message := describeMovement(txn)

	_, err := s.notifications.Create(ctx, domain.Notification{
		UserID:        txn.UserID,
		Type:          domain.NotificationTransaction,
		Priority:      domain.PriorityMedium,
		Title:         title,
		Message:       message,
		TransactionID: &txn.TransactionID,
	})
	if err != nil {
		logger.Error("failed to create transaction notification", err, logger.Fields{
			"transaction_id": txn.TransactionID,
		})
	}

	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishMovementCompleted(ctx, txn); err != nil {
		logger.Error("failed to publish movement event", err, logger.Fields{
			"transaction_id": txn.TransactionID,
		})
	}
}

func describeMovement(txn domain.Transaction) (string, string) {
	switch txn.Type {
	case domain.TransactionTypeDeposit:
		return "Deposit Successful",
			fmt.Sprintf("Your account has been credited with %s %s.", txn.Currency, txn.Amount.StringFixed(2))
	case domain.TransactionTypeWithdrawal:
		return "Withdrawal Successful",
			fmt.Sprintf("You have withdrawn %s %s from your account.", txn.Currency, txn.Amount.StringFixed(2))
	case domain.TransactionTypeTransfer:
		name := ""
		if txn.BeneficiaryName != nil {
			name = *txn.BeneficiaryName
		}
		return "Transfer Successful",
			fmt.Sprintf("You have transferred %s %s to %s.", txn.Currency, txn.Amount.StringFixed(2), name)
	default:
		label := titleCase(string(txn.Type))
		return label + " Successful",
			fmt.Sprintf("Your %s of %s %s was successful.", strings.ToLower(strings.ReplaceAll(string(txn.Type), "_", " ")), txn.Currency, txn.Amount.StringFixed(2))
	}
}

func titleCase(transactionType string) string {
	words := strings.Split(strings.ToLower(transactionType), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
