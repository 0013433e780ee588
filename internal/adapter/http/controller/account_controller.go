package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/royal-shore/core-banking/internal/adapter/http/models"
	"github.com/royal-shore/core-banking/internal/commons"
)

type AccountService interface {
	OpenAccount(ctx context.Context, req models.OpenAccountRequest) (commons.Response[models.AccountResponse], error)
	GetAccount(ctx context.Context, customerID, accountNumber string) (commons.Response[models.AccountResponse], error)
	ListAccounts(ctx context.Context, customerID string) (commons.Response[[]models.AccountResponse], error)
	ApplyAction(ctx context.Context, req models.AccountActionRequest) (commons.Response[models.AccountResponse], error)
	UpdateLimits(ctx context.Context, req models.UpdateAccountLimitsRequest) (commons.Response[models.AccountResponse], error)
}

type AccountController struct {
	service AccountService
}

func NewAccountController(service AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}
	mux.Handle("/accounts", wrap(c.accounts))
	mux.Handle("/accounts/detail", wrap(c.getAccount))
	mux.Handle("/accounts/action", wrap(c.applyAction))
	mux.Handle("/accounts/limits", wrap(c.updateLimits))
}

func (c *AccountController) accounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		c.openAccount(w, r)
	case http.MethodGet:
		c.listAccounts(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.AccountResponse](commons.CodeValidationFailed, "method not allowed"))
	}
}

func (c *AccountController) openAccount(w http.ResponseWriter, r *http.Request) {
	var req models.OpenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse](commons.CodeValidationFailed, "invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse](commons.CodeValidationFailed, "validation failed", err.Error()))
		return
	}

	response, err := c.service.OpenAccount(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusCreated, response)
}

func (c *AccountController) listAccounts(w http.ResponseWriter, r *http.Request) {
	logRequest(r, nil)

	customerID := r.URL.Query().Get("customerId")
	if customerID == "" {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[[]models.AccountResponse](commons.CodeValidationFailed, "validation failed", "customerId is required"))
		return
	}

	response, err := c.service.ListAccounts(r.Context(), customerID)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.AccountResponse](commons.CodeValidationFailed, "method not allowed"))
		return
	}
	logRequest(r, nil)

	customerID := r.URL.Query().Get("customerId")
	accountNumber := r.URL.Query().Get("accountNumber")
	if customerID == "" || accountNumber == "" {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse](commons.CodeValidationFailed, "validation failed", "customerId and accountNumber are required"))
		return
	}

	response, err := c.service.GetAccount(r.Context(), customerID, accountNumber)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) applyAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.AccountResponse](commons.CodeValidationFailed, "method not allowed"))
		return
	}

	var req models.AccountActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse](commons.CodeValidationFailed, "invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse](commons.CodeValidationFailed, "validation failed", err.Error()))
		return
	}

	response, err := c.service.ApplyAction(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (c *AccountController) updateLimits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.AccountResponse](commons.CodeValidationFailed, "method not allowed"))
		return
	}

	var req models.UpdateAccountLimitsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse](commons.CodeValidationFailed, "invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse](commons.CodeValidationFailed, "validation failed", err.Error()))
		return
	}

	response, err := c.service.UpdateLimits(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}
