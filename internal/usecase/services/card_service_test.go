package services_test

import (
	"context"
	"testing"

	"github.com/royal-shore/core-banking/internal/adapter/http/models"
	"github.com/royal-shore/core-banking/internal/usecase/services"
)

func TestCardServiceIssueCardValidationError(t *testing.T) {
	svc := services.NewCardService(nil, nil)

	_, err := svc.IssueCard(context.Background(), models.IssueCardRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty issue card request")
	}
}

func TestCardServiceIssueCardRejectsShortPIN(t *testing.T) {
	svc := services.NewCardService(nil, nil)

	_, err := svc.IssueCard(context.Background(), models.IssueCardRequest{
		UserID:    "user-1",
		AccountID: "acc-1",
		CardType:  "DEBIT",
		CardName:  "Jane Doe",
		PIN:       "12",
	})
	if err == nil {
		t.Fatal("expected validation error for a PIN that is not four digits")
	}
}

func TestCardServiceApplyActionValidationError(t *testing.T) {
	svc := services.NewCardService(nil, nil)

	_, err := svc.ApplyAction(context.Background(), models.CardActionRequest{
		UserID: "user-1",
		CardID: "card-1",
		Action: "melt",
	})
	if err == nil {
		t.Fatal("expected validation error for unknown card action")
	}
}

func TestCardServiceBlockRequiresReason(t *testing.T) {
	svc := services.NewCardService(nil, nil)

	_, err := svc.ApplyAction(context.Background(), models.CardActionRequest{
		UserID: "user-1",
		CardID: "card-1",
		Action: "block",
	})
	if err == nil {
		t.Fatal("expected validation error for block without a reason")
	}
}
