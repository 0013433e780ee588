package repo_interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/royal-shore/core-banking/internal/domain"
)

type LoanRepository interface {
	Create(ctx context.Context, loan domain.Loan) (domain.Loan, error)
	GetByID(ctx context.Context, customerID, loanID string) (domain.Loan, error)
	GetForUpdate(ctx context.Context, loanID string) (domain.Loan, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error)
	Approve(ctx context.Context, loanID string) error
	MarkDisbursed(ctx context.Context, loanID string) error
	ApplyRepayment(ctx context.Context, loanID string, amount decimal.Decimal) error
	CreateRepayments(ctx context.Context, repayments []domain.LoanRepayment) error
	ListRepayments(ctx context.Context, loanID string) ([]domain.LoanRepayment, error)
	SettleNextRepayment(ctx context.Context, loanID string, amount decimal.Decimal, transactionID string) error
}
