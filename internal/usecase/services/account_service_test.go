package services_test

import (
	"context"
	"testing"

	"github.com/royal-shore/core-banking/internal/adapter/http/models"
	"github.com/royal-shore/core-banking/internal/usecase/services"
)

func TestAccountServiceOpenAccountValidationError(t *testing.T) {
	svc := services.NewAccountService(nil, nil, nil)

	_, err := svc.OpenAccount(context.Background(), models.OpenAccountRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty open account request")
	}
}

func TestAccountServiceOpenAccountRejectsUnknownType(t *testing.T) {
	svc := services.NewAccountService(nil, nil, nil)

	_, err := svc.OpenAccount(context.Background(), models.OpenAccountRequest{
		CustomerID:  "user-1",
		AccountName: "Everyday Checking",
		AccountType: "OFFSHORE",
		Currency:    "USD",
	})
	if err == nil {
		t.Fatal("expected validation error for unknown account type")
	}
}

func TestAccountServiceApplyActionValidationError(t *testing.T) {
	svc := services.NewAccountService(nil, nil, nil)

	_, err := svc.ApplyAction(context.Background(), models.AccountActionRequest{
		CustomerID:    "user-1",
		AccountNumber: "0123456789",
		Action:        "destroy",
	})
	if err == nil {
		t.Fatal("expected validation error for unknown action")
	}
}

func TestAccountServiceCloseRequiresReason(t *testing.T) {
	svc := services.NewAccountService(nil, nil, nil)

	_, err := svc.ApplyAction(context.Background(), models.AccountActionRequest{
		CustomerID:    "user-1",
		AccountNumber: "0123456789",
		Action:        "close",
	})
	if err == nil {
		t.Fatal("expected validation error for close without a reason")
	}
}

func TestAccountServiceUpdateLimitsValidationError(t *testing.T) {
	svc := services.NewAccountService(nil, nil, nil)

	_, err := svc.UpdateLimits(context.Background(), models.UpdateAccountLimitsRequest{
		CustomerID:    "user-1",
		AccountNumber: "0123456789",
	})
	if err == nil {
		t.Fatal("expected validation error when no updatable field is set")
	}
}
