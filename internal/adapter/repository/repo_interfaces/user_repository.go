package repo_interfaces

import (
	"context"

	"github.com/royal-shore/core-banking/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, userID string) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
}
