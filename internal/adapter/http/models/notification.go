package models

import (
	"errors"
	"strings"
)

type MarkNotificationReadRequest struct {
	UserID         string `json:"userId"`
	NotificationID string `json:"notificationId"`
}

func (r MarkNotificationReadRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.UserID) == "" {
		errs = append(errs, "userId is required")
	}
	if strings.TrimSpace(r.NotificationID) == "" {
		errs = append(errs, "notificationId is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type NotificationResponse struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	Priority      string `json:"priority"`
	Title         string `json:"title"`
	Message       string `json:"message"`
	IsRead        bool   `json:"isRead"`
	ReadAt        string `json:"readAt,omitempty"`
	TransactionID string `json:"transactionId,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

type MarkAllReadResponse struct {
	MarkedRead int64 `json:"markedRead"`
}
