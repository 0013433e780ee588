package repo_interfaces

import (
	"context"

	"github.com/royal-shore/core-banking/internal/domain"
)

type BeneficiaryRepository interface {
	Create(ctx context.Context, beneficiary domain.Beneficiary) (domain.Beneficiary, error)
	GetOrCreate(ctx context.Context, beneficiary domain.Beneficiary) (domain.Beneficiary, error)
	GetByID(ctx context.Context, userID, beneficiaryID string) (domain.Beneficiary, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Beneficiary, error)
	Delete(ctx context.Context, userID, beneficiaryID string) error
	TouchLastUsed(ctx context.Context, userID, accountNumber, bankName string) error
}
