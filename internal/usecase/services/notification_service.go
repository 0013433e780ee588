package services

import (
	"context"
	"strings"
	"time"

	"github.com/royal-shore/core-banking/internal/adapter/http/models"
	"github.com/royal-shore/core-banking/internal/adapter/repository/repo_interfaces"
	"github.com/royal-shore/core-banking/internal/commons"
	"github.com/royal-shore/core-banking/internal/domain"
)

type NotificationService struct {
	notificationRepo repo_interfaces.NotificationRepository
}

func NewNotificationService(notificationRepo repo_interfaces.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool, limit int) (commons.Response[[]models.NotificationResponse], error) {
	notifications, err := s.notificationRepo.ListByUser(ctx, strings.TrimSpace(userID), unreadOnly, limit)
	if err != nil {
		return commons.ErrorResponse[[]models.NotificationResponse](commons.CodeFor(err), "unable to list notifications", err.Error()), err
	}

	out := make([]models.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, toNotificationResponse(n))
	}
	return commons.SuccessResponse("notifications retrieved", out), nil
}

func (s *NotificationService) MarkRead(ctx context.Context, req models.MarkNotificationReadRequest) (commons.Response[models.NotificationResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.NotificationResponse](commons.CodeValidationFailed, "validation failed", err.Error()), err
	}

	err := s.notificationRepo.MarkRead(ctx, strings.TrimSpace(req.UserID), strings.TrimSpace(req.NotificationID))
	if err != nil {
		return commons.ErrorResponse[models.NotificationResponse](commons.CodeFor(err), "unable to mark notification read", err.Error()), err
	}
	return commons.Response[models.NotificationResponse]{Success: true, Message: "notification marked read"}, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (commons.Response[models.MarkAllReadResponse], error) {
	marked, err := s.notificationRepo.MarkAllRead(ctx, strings.TrimSpace(userID))
	if err != nil {
		return commons.ErrorResponse[models.MarkAllReadResponse](commons.CodeFor(err), "unable to mark notifications read", err.Error()), err
	}
	return commons.SuccessResponse("notifications marked read", models.MarkAllReadResponse{MarkedRead: marked}), nil
}

func toNotificationResponse(n domain.Notification) models.NotificationResponse {
	resp := models.NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Priority:  string(n.Priority),
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		resp.ReadAt = n.ReadAt.Format(time.RFC3339)
	}
	if n.TransactionID != nil {
		resp.TransactionID = *n.TransactionID
	}
	return resp
}
