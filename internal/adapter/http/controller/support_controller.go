package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/royal-shore/core-banking/internal/adapter/http/models"
	"github.com/royal-shore/core-banking/internal/commons"
)

type SupportTicketService interface {
	Create(ctx context.Context, req models.CreateTicketRequest) (commons.Response[models.TicketResponse], error)
	Get(ctx context.Context, userID, ticketNumber string) (commons.Response[models.TicketResponse], error)
	List(ctx context.Context, userID string) (commons.Response[[]models.TicketResponse], error)
	UpdateStatus(ctx context.Context, req models.UpdateTicketStatusRequest) (commons.Response[models.TicketResponse], error)
}

type SupportTicketController struct {
	service SupportTicketService
}

func NewSupportTicketController(service SupportTicketService) *SupportTicketController {
	return &SupportTicketController{service: service}
}

func (c *SupportTicketController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}
	mux.Handle("/support-tickets", wrap(c.tickets))
	mux.Handle("/support-tickets/detail", wrap(c.get))
	mux.Handle("/support-tickets/status", wrap(c.updateStatus))
}

func (c *SupportTicketController) tickets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		c.create(w, r)
	case http.MethodGet:
		c.list(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TicketResponse](commons.CodeValidationFailed, "method not allowed"))
	}
}

func (c *SupportTicketController) create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TicketResponse](commons.CodeValidationFailed, "invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TicketResponse](commons.CodeValidationFailed, "validation failed", err.Error()))
		return
	}

	response, err := c.service.Create(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusCreated, response)
}

func (c *SupportTicketController) list(w http.ResponseWriter, r *http.Request) {
	logRequest(r, nil)

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[[]models.TicketResponse](commons.CodeValidationFailed, "validation failed", "userId is required"))
		return
	}

	response, err := c.service.List(r.Context(), userID)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (c *SupportTicketController) get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TicketResponse](commons.CodeValidationFailed, "method not allowed"))
		return
	}
	logRequest(r, nil)

	userID := r.URL.Query().Get("userId")
	ticketNumber := r.URL.Query().Get("ticketNumber")
	if userID == "" || ticketNumber == "" {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TicketResponse](commons.CodeValidationFailed, "validation failed", "userId and ticketNumber are required"))
		return
	}

	response, err := c.service.Get(r.Context(), userID, ticketNumber)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (c *SupportTicketController) updateStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TicketResponse](commons.CodeValidationFailed, "method not allowed"))
		return
	}

	var req models.UpdateTicketStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TicketResponse](commons.CodeValidationFailed, "invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TicketResponse](commons.CodeValidationFailed, "validation failed", err.Error()))
		return
	}

	response, err := c.service.UpdateStatus(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}
