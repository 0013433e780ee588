package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/royal-shore/core-banking/internal/adapter/http/models"
	"github.com/royal-shore/core-banking/internal/usecase/services"
)

func TestAmortizationZeroRate(t *testing.T) {
	payment, interest, total := services.Amortization(decimal.NewFromInt(1200), decimal.Zero, 12)

	if !payment.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected monthly payment 100, got %s", payment)
	}
	if !interest.IsZero() {
		t.Fatalf("expected zero interest, got %s", interest)
	}
	if !total.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("expected total 1200, got %s", total)
	}
}

func TestAmortizationAnnuityFormula(t *testing.T) {
	// 10,000 at 12% APR over 12 months: monthly rate 1%, payment 888.49.
	payment, interest, total := services.Amortization(decimal.NewFromInt(10000), decimal.NewFromInt(12), 12)

	if !payment.Equal(decimal.NewFromFloat(888.49)) {
		t.Fatalf("expected monthly payment 888.49, got %s", payment)
	}
	if !total.Equal(decimal.NewFromFloat(10661.88)) {
		t.Fatalf("expected total 10661.88, got %s", total)
	}
	if !interest.Equal(decimal.NewFromFloat(661.88)) {
		t.Fatalf("expected interest 661.88, got %s", interest)
	}
}

func TestAmortizationTotalEqualsPaymentTimesTerm(t *testing.T) {
	payment, _, total := services.Amortization(decimal.NewFromInt(25000), decimal.NewFromFloat(7.5), 48)

	if !total.Equal(payment.Mul(decimal.NewFromInt(48)).Round(2)) {
		t.Fatalf("total %s does not equal payment %s times term", total, payment)
	}
}

func TestLoanServiceApplyValidationError(t *testing.T) {
	svc := services.NewLoanService(nil, nil, nil, nil)

	_, err := svc.Apply(context.Background(), models.ApplyLoanRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty loan application")
	}
}

func TestLoanServiceApproveValidationError(t *testing.T) {
	svc := services.NewLoanService(nil, nil, nil, nil)

	_, err := svc.Approve(context.Background(), models.LoanActionRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty loan action request")
	}
}

func TestLoanServiceRepayValidationError(t *testing.T) {
	svc := services.NewLoanService(nil, nil, nil, nil)

	_, err := svc.Repay(context.Background(), models.RepayLoanRequest{})
	if err == nil {
		t.Fatal("expected validation error for empty repay request")
	}
}
