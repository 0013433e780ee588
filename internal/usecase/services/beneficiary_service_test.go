package services_test

import (
	"context"
	"testing"

	"github.com/royal-shore/core-banking/internal/adapter/http/models"
	"github.com/royal-shore/core-banking/internal/usecase/services"
)

func TestBeneficiaryServiceCreateValidationError(t *testing.T) {
	svc := services.NewBeneficiaryService(nil)

	_, err := svc.Create(context.Background(), models.CreateBeneficiaryRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty beneficiary request")
	}
}
