package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/royal-shore/core-banking/internal/adapter/http/models"
	"github.com/royal-shore/core-banking/internal/commons"
)

type CardService interface {
	IssueCard(ctx context.Context, req models.IssueCardRequest) (commons.Response[models.CardResponse], error)
	ListCards(ctx context.Context, userID string) (commons.Response[[]models.CardResponse], error)
	ApplyAction(ctx context.Context, req models.CardActionRequest) (commons.Response[models.CardResponse], error)
	UpdateLimits(ctx context.Context, req models.UpdateCardLimitsRequest) (commons.Response[models.CardResponse], error)
}

type CardController struct {
	service CardService
}

func NewCardController(service CardService) *CardController {
	return &CardController{service: service}
}

func (c *CardController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}
	mux.Handle("/cards", wrap(c.cards))
	mux.Handle("/cards/action", wrap(c.applyAction))
	mux.Handle("/cards/limits", wrap(c.updateLimits))
}

func (c *CardController) cards(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		c.issueCard(w, r)
	case http.MethodGet:
		c.listCards(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.CardResponse](commons.CodeValidationFailed, "method not allowed"))
	}
}

func (c *CardController) issueCard(w http.ResponseWriter, r *http.Request) {
	var req models.IssueCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.CardResponse](commons.CodeValidationFailed, "invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.CardResponse](commons.CodeValidationFailed, "validation failed", err.Error()))
		return
	}

	response, err := c.service.IssueCard(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusCreated, response)
}

func (c *CardController) listCards(w http.ResponseWriter, r *http.Request) {
	logRequest(r, nil)

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[[]models.CardResponse](commons.CodeValidationFailed, "validation failed", "userId is required"))
		return
	}

	response, err := c.service.ListCards(r.Context(), userID)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (c *CardController) applyAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.CardResponse](commons.CodeValidationFailed, "method not allowed"))
		return
	}

	var req models.CardActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.CardResponse](commons.CodeValidationFailed, "invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.CardResponse](commons.CodeValidationFailed, "validation failed", err.Error()))
		return
	}

	response, err := c.service.ApplyAction(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (c *CardController) updateLimits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.CardResponse](commons.CodeValidationFailed, "method not allowed"))
		return
	}

	var req models.UpdateCardLimitsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.CardResponse](commons.CodeValidationFailed, "invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.CardResponse](commons.CodeValidationFailed, "validation failed", err.Error()))
		return
	}

	response, err := c.service.UpdateLimits(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}
