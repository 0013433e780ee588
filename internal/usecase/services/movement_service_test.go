package services_test

import (
	"context"
	"testing"

	"github.com/royal-shore/core-banking/internal/adapter/http/models"
	"github.com/royal-shore/core-banking/internal/usecase/services"
)

func TestMovementServiceDepositValidationError(t *testing.T) {
	svc := services.NewMovementService(nil, nil, nil, nil, nil)

	_, err := svc.Deposit(context.Background(), models.DepositRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty deposit request")
	}
}

func TestMovementServiceDepositRejectsBadAccountNumber(t *testing.T) {
	svc := services.NewMovementService(nil, nil, nil, nil, nil)

	_, err := svc.Deposit(context.Background(), models.DepositRequest{
		UserID:        "user-1",
		AccountNumber: "123",
		Amount:        "50.00",
	})
	if err == nil {
		t.Fatal("expected validation error for malformed account number")
	}
}

func TestMovementServiceWithdrawValidationError(t *testing.T) {
	svc := services.NewMovementService(nil, nil, nil, nil, nil)

	_, err := svc.Withdraw(context.Background(), models.WithdrawRequest{
		UserID:        "user-1",
		AccountNumber: "0123456789",
		Amount:        "-5",
	})
	if err == nil {
		t.Fatal("expected validation error for negative amount")
	}
}

func TestMovementServiceTransferValidationError(t *testing.T) {
	svc := services.NewMovementService(nil, nil, nil, nil, nil)

	_, err := svc.Transfer(context.Background(), models.TransferRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty transfer request")
	}
}

func TestMovementServiceReverseValidationError(t *testing.T) {
	svc := services.NewMovementService(nil, nil, nil, nil, nil)

	_, err := svc.Reverse(context.Background(), models.ReverseTransactionRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty reverse request")
	}
}
