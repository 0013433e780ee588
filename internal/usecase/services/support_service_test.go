package services_test

import (
	"context"
	"testing"

	"github.com/royal-shore/core-banking/internal/adapter/http/models"
	"github.com/royal-shore/core-banking/internal/usecase/services"
)

func TestSupportServiceCreateValidationError(t *testing.T) {
	svc := services.NewSupportTicketService(nil, nil)

	_, err := svc.Create(context.Background(), models.CreateTicketRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty ticket request")
	}
}

func TestSupportServiceUpdateStatusValidationError(t *testing.T) {
	svc := services.NewSupportTicketService(nil, nil)

	_, err := svc.UpdateStatus(context.Background(), models.UpdateTicketStatusRequest{
		UserID:       "user-1",
		TicketNumber: "TKT12345678",
		Status:       "SHREDDED",
	})
	if err == nil {
		t.Fatal("expected validation error for unknown ticket status")
	}
}
