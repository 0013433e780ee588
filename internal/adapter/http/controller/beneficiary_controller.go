package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/royal-shore/core-banking/internal/adapter/http/models"
	"github.com/royal-shore/core-banking/internal/commons"
)

type BeneficiaryService interface {
	Create(ctx context.Context, req models.CreateBeneficiaryRequest) (commons.Response[models.BeneficiaryResponse], error)
	List(ctx context.Context, userID string) (commons.Response[[]models.BeneficiaryResponse], error)
	Delete(ctx context.Context, userID, beneficiaryID string) (commons.Response[models.BeneficiaryResponse], error)
}

type BeneficiaryController struct {
	service BeneficiaryService
}

func NewBeneficiaryController(service BeneficiaryService) *BeneficiaryController {
	return &BeneficiaryController{service: service}
}

func (c *BeneficiaryController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	handler := http.Handler(http.HandlerFunc(c.beneficiaries))
	if authMiddleware != nil {
		handler = authMiddleware(handler)
	}
	mux.Handle("/beneficiaries", handler)
}

func (c *BeneficiaryController) beneficiaries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		c.create(w, r)
	case http.MethodGet:
		c.list(w, r)
	case http.MethodDelete:
		c.delete(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.BeneficiaryResponse](commons.CodeValidationFailed, "method not allowed"))
	}
}

func (c *BeneficiaryController) create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBeneficiaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.BeneficiaryResponse](commons.CodeValidationFailed, "invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.BeneficiaryResponse](commons.CodeValidationFailed, "validation failed", err.Error()))
		return
	}

	response, err := c.service.Create(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusCreated, response)
}

func (c *BeneficiaryController) list(w http.ResponseWriter, r *http.Request) {
	logRequest(r, nil)

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[[]models.BeneficiaryResponse](commons.CodeValidationFailed, "validation failed", "userId is required"))
		return
	}

	response, err := c.service.List(r.Context(), userID)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (c *BeneficiaryController) delete(w http.ResponseWriter, r *http.Request) {
	logRequest(r, nil)

	userID := r.URL.Query().Get("userId")
	beneficiaryID := r.URL.Query().Get("id")
	if userID == "" || beneficiaryID == "" {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.BeneficiaryResponse](commons.CodeValidationFailed, "validation failed", "userId and id are required"))
		return
	}

	response, err := c.service.Delete(r.Context(), userID, beneficiaryID)
	if err != nil {
		writeJSON(w, statusFor(err), response)
		return
	}
	writeJSON(w, http.StatusOK, response)
}
