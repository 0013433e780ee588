package services

import (
	"context"
	"strings"
	"time"

	"github.com/royal-shore/core-banking/internal/adapter/http/models"
	"github.com/royal-shore/core-banking/internal/adapter/repository/repo_interfaces"
	"github.com/royal-shore/core-banking/internal/commons"
	"github.com/royal-shore/core-banking/internal/domain"
	"github.com/royal-shore/core-banking/internal/identifier"
	"github.com/royal-shore/core-banking/internal/logger"
)

type SupportTicketService struct {
	ticketRepo repo_interfaces.SupportTicketRepository
	ids        IDGenerator
}

func NewSupportTicketService(ticketRepo repo_interfaces.SupportTicketRepository, ids IDGenerator) *SupportTicketService {
	return &SupportTicketService{ticketRepo: ticketRepo, ids: ids}
}

func (s *SupportTicketService) Create(ctx context.Context, req models.CreateTicketRequest) (commons.Response[models.TicketResponse], error) {
	logger.Info("support service create ticket request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TicketResponse](commons.CodeValidationFailed, "validation failed", err.Error()), err
	}

	ticketNumber, err := s.ids.Generate(ctx, identifier.KindTicketNumber)
	if err != nil {
		return ticketError(err), err
	}

	priority := domain.PriorityMedium
	if p := strings.ToUpper(strings.TrimSpace(req.Priority)); p != "" {
		priority = domain.NotificationPriority(p)
	}

	created, err := s.ticketRepo.Create(ctx, domain.SupportTicket{
		TicketNumber:  ticketNumber,
		UserID:        strings.TrimSpace(req.UserID),
		Category:      domain.TicketCategory(strings.ToUpper(strings.TrimSpace(req.Category))),
		Priority:      priority,
		Subject:       strings.TrimSpace(req.Subject),
		Description:   strings.TrimSpace(req.Description),
		Status:        domain.TicketStatusOpen,
		TransactionID: optionalString(req.TransactionID),
		AccountNumber: optionalString(req.AccountNumber),
	})
	if err != nil {
		logger.Error("support service create ticket failed", err, nil)
		return ticketError(err), err
	}

	logger.Info("support service ticket created", logger.Fields{
		"ticketNumber": created.TicketNumber,
	})
	return commons.SuccessResponse("ticket created", toTicketResponse(created)), nil
}

func (s *SupportTicketService) Get(ctx context.Context, userID, ticketNumber string) (commons.Response[models.TicketResponse], error) {
	ticket, err := s.ticketRepo.GetByNumber(ctx, strings.TrimSpace(userID), strings.TrimSpace(ticketNumber))
	if err != nil {
		return ticketError(err), err
	}
	return commons.SuccessResponse("ticket retrieved", toTicketResponse(ticket)), nil
}

func (s *SupportTicketService) List(ctx context.Context, userID string) (commons.Response[[]models.TicketResponse], error) {
	tickets, err := s.ticketRepo.ListByUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		return commons.ErrorResponse[[]models.TicketResponse](commons.CodeFor(err), "unable to list tickets", err.Error()), err
	}

	out := make([]models.TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, toTicketResponse(t))
	}
	return commons.SuccessResponse("tickets retrieved", out), nil
}

func (s *SupportTicketService) UpdateStatus(ctx context.Context, req models.UpdateTicketStatusRequest) (commons.Response[models.TicketResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TicketResponse](commons.CodeValidationFailed, "validation failed", err.Error()), err
	}

	userID := strings.TrimSpace(req.UserID)
	ticketNumber := strings.TrimSpace(req.TicketNumber)
	status := domain.TicketStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	if err := s.ticketRepo.UpdateStatus(ctx, userID, ticketNumber, status); err != nil {
		return ticketError(err), err
	}

	updated, err := s.ticketRepo.GetByNumber(ctx, userID, ticketNumber)
	if err != nil {
		return ticketError(err), err
	}
	return commons.SuccessResponse("ticket updated", toTicketResponse(updated)), nil
}

func ticketError(err error) commons.Response[models.TicketResponse] {
	return commons.ErrorResponse[models.TicketResponse](commons.CodeFor(err), "ticket operation failed", err.Error())
}

func toTicketResponse(t domain.SupportTicket) models.TicketResponse {
	resp := models.TicketResponse{
		TicketNumber: t.TicketNumber,
		Category:     string(t.Category),
		Priority:     string(t.Priority),
		Subject:      t.Subject,
		Description:  t.Description,
		Status:       string(t.Status),
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    t.UpdatedAt.Format(time.RFC3339),
	}
	if t.TransactionID != nil {
		resp.TransactionID = *t.TransactionID
	}
	if t.AccountNumber != nil {
		resp.AccountNumber = *t.AccountNumber
	}
	if t.ResolvedAt != nil {
		resp.ResolvedAt = t.ResolvedAt.Format(time.RFC3339)
	}
	if t.ClosedAt != nil {
		resp.ClosedAt = t.ClosedAt.Format(time.RFC3339)
	}
	return resp
}
