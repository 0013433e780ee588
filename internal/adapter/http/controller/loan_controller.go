package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/royal-shore/core-banking/internal/adapter/http/models"
	"github.com/royal-shore/core-banking/internal/commons"
)

type LoanService interface {
	Apply(ctx context.Context, req models.ApplyLoanRequest) (commons.Response[models.LoanResponse], error)
	Approve(ctx context.Context, req models.LoanActionRequest) (commons.Response[models.LoanResponse], error)
	Disburse(ctx context.Context, req models.LoanActionRequest) (commons.Response[models.LoanResponse], error)
	Repay(ctx context.Context, req models.RepayLoanRequest) (commons.Response[models.LoanResponse], error)
	ListLoans(ctx context.Context, customerID string) (commons.Response[[]models.LoanResponse], error)
	Schedule(ctx context.Context, customerID, loanID string) (commons.Response[[]models.LoanRepaymentResponse], error)
}

type LoanController struct {
	service LoanService
}

func NewLoanController(service LoanService) *LoanController {
	return &LoanController{service: service}
}

func (c *LoanController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}
	mux.Handle("/loans", wrap(c.loans))
	mux.Handle("/loans/approve", wrap(c.approve))
	mux.Handle("/loans/disburse", wrap(c.disburse))
	mux.Handle("/loans/repay", wrap(c.repay))
	mux.Handle("/loans/schedule", wrap(c.schedule))
}

func (c *LoanController) loans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		c.apply(w, r)
	case http.MethodGet:
		c.list(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.LoanResponse](commons.CodeValidationFailed, "method not allowed"))
	}
}

func (c *LoanController) apply(w http.ResponseWriter, r *http.Request) {
	var req models.ApplyLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.LoanResponse](commons.CodeValidationFailed, "invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.LoanResponse](commons.CodeValidationFailed, "validation failed", err.Error()))
		return
	}

	response, err := c.service.Apply(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusCreated, response)
}

func (c *LoanController) list(w http.ResponseWriter, r *http.Request) {
	logRequest(r, nil)

	customerID := r.URL.Query().Get("customerId")
	if customerID == "" {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[[]models.LoanResponse](commons.CodeValidationFailed, "validation failed", "customerId is required"))
		return
	}

	response, err := c.service.ListLoans(r.Context(), customerID)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (c *LoanController) approve(w http.ResponseWriter, r *http.Request) {
	c.action(w, r, c.service.Approve)
}

func (c *LoanController) disburse(w http.ResponseWriter, r *http.Request) {
	c.action(w, r, c.service.Disburse)
}

func (c *LoanController) action(w http.ResponseWriter, r *http.Request, fn func(context.Context, models.LoanActionRequest) (commons.Response[models.LoanResponse], error)) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.LoanResponse](commons.CodeValidationFailed, "method not allowed"))
		return
	}

	var req models.LoanActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.LoanResponse](commons.CodeValidationFailed, "invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.LoanResponse](commons.CodeValidationFailed, "validation failed", err.Error()))
		return
	}

	response, err := fn(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (c *LoanController) repay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.LoanResponse](commons.CodeValidationFailed, "method not allowed"))
		return
	}

	var req models.RepayLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.LoanResponse](commons.CodeValidationFailed, "invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.LoanResponse](commons.CodeValidationFailed, "validation failed", err.Error()))
		return
	}

	response, err := c.service.Repay(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusCreated, response)
}

func (c *LoanController) schedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[[]models.LoanRepaymentResponse](commons.CodeValidationFailed, "method not allowed"))
		return
	}
	logRequest(r, nil)

	customerID := r.URL.Query().Get("customerId")
	loanID := r.URL.Query().Get("loanId")
	if customerID == "" || loanID == "" {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[[]models.LoanRepaymentResponse](commons.CodeValidationFailed, "validation failed", "customerId and loanId are required"))
		return
	}

	response, err := c.service.Schedule(r.Context(), customerID, loanID)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}
