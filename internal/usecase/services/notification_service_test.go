package services_test

import (
	"context"
	"testing"

	"github.com/royal-shore/core-banking/internal/adapter/http/models"
	"github.com/royal-shore/core-banking/internal/usecase/services"
)

func TestNotificationServiceMarkReadValidationError(t *testing.T) {
	svc := services.NewNotificationService(nil)

	_, err := svc.MarkRead(context.Background(), models.MarkNotificationReadRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty mark read request")
	}
}
