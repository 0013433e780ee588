package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/royal-shore/core-banking/internal/adapter/http/models"
	"github.com/royal-shore/core-banking/internal/commons"
)

type NotificationService interface {
	List(ctx context.Context, userID string, unreadOnly bool, limit int) (commons.Response[[]models.NotificationResponse], error)
	MarkRead(ctx context.Context, req models.MarkNotificationReadRequest) (commons.Response[models.NotificationResponse], error)
	MarkAllRead(ctx context.Context, userID string) (commons.Response[models.MarkAllReadResponse], error)
}

type NotificationController struct {
	service NotificationService
}

func NewNotificationController(service NotificationService) *NotificationController {
	return &NotificationController{service: service}
}

func (c *NotificationController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}
	mux.Handle("/notifications", wrap(c.list))
	mux.Handle("/notifications/read", wrap(c.markRead))
	mux.Handle("/notifications/read-all", wrap(c.markAllRead))
}

func (c *NotificationController) list(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[[]models.NotificationResponse](commons.CodeValidationFailed, "method not allowed"))
		return
	}
	logRequest(r, nil)

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[[]models.NotificationResponse](commons.CodeValidationFailed, "validation failed", "userId is required"))
		return
	}
	unreadOnly := r.URL.Query().Get("unread") == "true"

	response, err := c.service.List(r.Context(), userID, unreadOnly, queryLimit(r))
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (c *NotificationController) markRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.NotificationResponse](commons.CodeValidationFailed, "method not allowed"))
		return
	}

	var req models.MarkNotificationReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.NotificationResponse](commons.CodeValidationFailed, "invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.NotificationResponse](commons.CodeValidationFailed, "validation failed", err.Error()))
		return
	}

	response, err := c.service.MarkRead(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (c *NotificationController) markAllRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.MarkAllReadResponse](commons.CodeValidationFailed, "method not allowed"))
		return
	}

	var req struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.MarkAllReadResponse](commons.CodeValidationFailed, "invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.MarkAllReadResponse](commons.CodeValidationFailed, "validation failed", "userId is required"))
		return
	}

	response, err := c.service.MarkAllRead(r.Context(), req.UserID)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}
