package domain

import "time"

type NotificationType string

const (
	NotificationTransaction NotificationType = "TRANSACTION"
	NotificationAccount     NotificationType = "ACCOUNT"
	NotificationSecurity    NotificationType = "SECURITY"
	NotificationLoan        NotificationType = "LOAN"
	NotificationCard        NotificationType = "CARD"
	NotificationSystem      NotificationType = "SYSTEM"
)

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "LOW"
	PriorityMedium NotificationPriority = "MEDIUM"
	PriorityHigh   NotificationPriority = "HIGH"
	PriorityUrgent NotificationPriority = "URGENT"
)

type Notification struct {
	ID       string
	UserID   string
	Type     NotificationType
	Priority NotificationPriority

	Title   string
	Message string

	IsRead bool
	ReadAt *time.Time

	TransactionID *string
	CreatedAt     time.Time
}
