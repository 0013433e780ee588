package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/royal-shore/core-banking/internal/adapter/http/models"
	"github.com/royal-shore/core-banking/internal/commons"
)

type MovementService interface {
	Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.TransactionResponse], error)
	Withdraw(ctx context.Context, req models.WithdrawRequest) (commons.Response[models.TransactionResponse], error)
	Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransactionResponse], error)
	Reverse(ctx context.Context, req models.ReverseTransactionRequest) (commons.Response[models.TransactionResponse], error)
	GetTransaction(ctx context.Context, userID, transactionID string) (commons.Response[models.TransactionResponse], error)
	ListTransactions(ctx context.Context, userID, accountNumber string, limit int) (commons.Response[[]models.TransactionResponse], error)
}

type MovementController struct {
	service MovementService
}

func NewMovementController(service MovementService) *MovementController {
	return &MovementController{service: service}
}

func (c *MovementController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}
	mux.Handle("/transactions", wrap(c.listTransactions))
	mux.Handle("/transactions/detail", wrap(c.getTransaction))
	mux.Handle("/transactions/deposit", wrap(c.deposit))
	mux.Handle("/transactions/withdraw", wrap(c.withdraw))
	mux.Handle("/transactions/transfer", wrap(c.transfer))
	mux.Handle("/transactions/reverse", wrap(c.reverse))
}

func (c *MovementController) deposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TransactionResponse](commons.CodeValidationFailed, "method not allowed"))
		return
	}

	var req models.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse](commons.CodeValidationFailed, "invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse](commons.CodeValidationFailed, "validation failed", err.Error()))
		return
	}

	response, err := c.service.Deposit(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		writeJSON(w, status, response)
		logResponse(r, status, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, start)
}

func (c *MovementController) withdraw(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TransactionResponse](commons.CodeValidationFailed, "method not allowed"))
		return
	}

	var req models.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse](commons.CodeValidationFailed, "invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse](commons.CodeValidationFailed, "validation failed", err.Error()))
		return
	}

	response, err := c.service.Withdraw(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		writeJSON(w, status, response)
		logResponse(r, status, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, start)
}

func (c *MovementController) transfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TransactionResponse](commons.CodeValidationFailed, "method not allowed"))
		return
	}

	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse](commons.CodeValidationFailed, "invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse](commons.CodeValidationFailed, "validation failed", err.Error()))
		return
	}

	response, err := c.service.Transfer(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		writeJSON(w, status, response)
		logResponse(r, status, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, start)
}

func (c *MovementController) reverse(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TransactionResponse](commons.CodeValidationFailed, "method not allowed"))
		return
	}

	var req models.ReverseTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse](commons.CodeValidationFailed, "invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse](commons.CodeValidationFailed, "validation failed", err.Error()))
		return
	}

	response, err := c.service.Reverse(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		writeJSON(w, status, response)
		logResponse(r, status, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, start)
}

func (c *MovementController) getTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TransactionResponse](commons.CodeValidationFailed, "method not allowed"))
		return
	}
	logRequest(r, nil)

	userID := r.URL.Query().Get("userId")
	transactionID := r.URL.Query().Get("transactionId")
	if userID == "" || transactionID == "" {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransactionResponse](commons.CodeValidationFailed, "validation failed", "userId and transactionId are required"))
		return
	}

	response, err := c.service.GetTransaction(r.Context(), userID, transactionID)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (c *MovementController) listTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[[]models.TransactionResponse](commons.CodeValidationFailed, "method not allowed"))
		return
	}
	logRequest(r, nil)

	userID := r.URL.Query().Get("userId")
	accountNumber := r.URL.Query().Get("accountNumber")
	if userID == "" || accountNumber == "" {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[[]models.TransactionResponse](commons.CodeValidationFailed, "validation failed", "userId and accountNumber are required"))
		return
	}

	response, err := c.service.ListTransactions(r.Context(), userID, accountNumber, queryLimit(r))
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}
