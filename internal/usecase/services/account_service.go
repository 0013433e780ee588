package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/royal-shore/core-banking/internal/adapter/http/models"
	"github.com/royal-shore/core-banking/internal/adapter/repository/repo_interfaces"
	"github.com/royal-shore/core-banking/internal/commons"
	"github.com/royal-shore/core-banking/internal/domain"
	"github.com/royal-shore/core-banking/internal/identifier"
	"github.com/royal-shore/core-banking/internal/logger"
)

const bankName = "Royal Shore International"

// Default limits applied to newly opened accounts.
var (
	defaultDailyWithdrawalLimit = decimal.NewFromInt(5000)
	defaultDailyTransferLimit   = decimal.NewFromInt(10000)
)

// IDGenerator mints collision-checked identifiers for the back office.
type IDGenerator interface {
	Generate(ctx context.Context, kind identifier.Kind) (string, error)
}

type AccountService struct {
	accountRepo repo_interfaces.AccountRepository
	userRepo    repo_interfaces.UserRepository
	ids         IDGenerator
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	userRepo repo_interfaces.UserRepository,
	ids IDGenerator,
) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		userRepo:    userRepo,
		ids:         ids,
	}
}

// maxOpenRetries bounds the account-number collision retry loop. The
// repository surfaces unique violations as ErrDuplicateIdentifier.
const maxOpenRetries = 3

func (s *AccountService) OpenAccount(ctx context.Context, req models.OpenAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service open account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.AccountResponse](commons.CodeValidationFailed, "validation failed", err.Error()), err
	}

	customerID := strings.TrimSpace(req.CustomerID)
	if _, err := s.userRepo.GetByID(ctx, customerID); err != nil {
		return accountError(err), err
	}

	var created domain.Account
	var err error
	for attempt := 0; attempt < maxOpenRetries; attempt++ {
		var account domain.Account
		account, err = s.buildAccount(ctx, req, customerID)
		if err != nil {
			return accountError(err), err
		}

		created, err = s.accountRepo.Create(ctx, account)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrDuplicateIdentifier) {
			logger.Info("account service retrying with fresh account number", logger.Fields{
				"customerId": customerID,
				"attempt":    attempt + 1,
			})
			continue
		}
		break
	}
	if err != nil {
		logger.Error("account service open account failed", err, logger.Fields{
			"customerId": customerID,
		})
		return accountError(err), err
	}

	logger.Info("account service open account success", logger.Fields{
		"accountId":     created.ID,
		"accountNumber": created.AccountNumber,
		"customerId":    created.CustomerID,
	})
	return commons.SuccessResponse("account opened, pending activation", toAccountResponse(created)), nil
}

func (s *AccountService) buildAccount(ctx context.Context, req models.OpenAccountRequest, customerID string) (domain.Account, error) {
	accountNumber, err := s.ids.Generate(ctx, identifier.KindAccountNumber)
	if err != nil {
		return domain.Account{}, err
	}
	achRouting, err := s.ids.Generate(ctx, identifier.KindRoutingNumber)
	if err != nil {
		return domain.Account{}, err
	}
	swiftCode, err := s.ids.Generate(ctx, identifier.KindSwiftCode)
	if err != nil {
		return domain.Account{}, err
	}

	return domain.Account{
		CustomerID:           customerID,
		AccountNumber:        accountNumber,
		AccountName:          strings.TrimSpace(req.AccountName),
		AccountType:          domain.AccountType(strings.ToUpper(strings.TrimSpace(req.AccountType))),
		Currency:             strings.ToUpper(strings.TrimSpace(req.Currency)),
		Balance:              decimal.Zero,
		ACHRouting:           achRouting,
		SwiftCode:            swiftCode,
		BankName:             bankName,
		Status:               domain.AccountStatusPending,
		DailyWithdrawalLimit: defaultDailyWithdrawalLimit,
		DailyTransferLimit:   defaultDailyTransferLimit,
		MinimumBalance:       decimal.Zero,
		OverdraftLimit:       decimal.Zero,
	}, nil
}

func (s *AccountService) GetAccount(ctx context.Context, customerID, accountNumber string) (commons.Response[models.AccountResponse], error) {
	account, err := s.ownedAccount(ctx, customerID, accountNumber)
	if err != nil {
		return accountError(err), err
	}
	return commons.SuccessResponse("account retrieved", toAccountResponse(account)), nil
}

func (s *AccountService) ListAccounts(ctx context.Context, customerID string) (commons.Response[[]models.AccountResponse], error) {
	accounts, err := s.accountRepo.ListByCustomer(ctx, strings.TrimSpace(customerID))
	if err != nil {
		return commons.ErrorResponse[[]models.AccountResponse](commons.CodeFor(err), "unable to list accounts", err.Error()), err
	}

	out := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, toAccountResponse(account))
	}
	return commons.SuccessResponse("accounts retrieved", out), nil
}

// ApplyAction transitions account lifecycle state: activate, freeze,
// unfreeze, close. Closed accounts are terminal.
func (s *AccountService) ApplyAction(ctx context.Context, req models.AccountActionRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service action request", logger.Fields{
		"accountNumber": req.AccountNumber,
		"action":        req.Action,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.AccountResponse](commons.CodeValidationFailed, "validation failed", err.Error()), err
	}

	account, err := s.ownedAccount(ctx, req.CustomerID, req.AccountNumber)
	if err != nil {
		return accountError(err), err
	}
	if account.IsClosed {
		err := domain.ErrAccountNotOperable
		return accountError(err), err
	}

	var status domain.AccountStatus
	var reason *string
	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case "activate":
		status = domain.AccountStatusActive
	case "freeze":
		status = domain.AccountStatusFrozen
	case "unfreeze":
		status = domain.AccountStatusActive
	case "close":
		status = domain.AccountStatusClosed
		trimmed := strings.TrimSpace(req.Reason)
		reason = &trimmed
	}

	if err := s.accountRepo.UpdateStatus(ctx, account.ID, status, reason); err != nil {
		return accountError(err), err
	}

	updated, err := s.accountRepo.GetByAccountNumber(ctx, account.AccountNumber)
	if err != nil {
		return accountError(err), err
	}

	logger.Info("account service action applied", logger.Fields{
		"accountNumber": updated.AccountNumber,
		"status":        string(updated.Status),
	})
	return commons.SuccessResponse("account updated", toAccountResponse(updated)), nil
}

func (s *AccountService) UpdateLimits(ctx context.Context, req models.UpdateAccountLimitsRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service update limits request", logger.Fields{
		"accountNumber": req.AccountNumber,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.AccountResponse](commons.CodeValidationFailed, "validation failed", err.Error()), err
	}

	account, err := s.ownedAccount(ctx, req.CustomerID, req.AccountNumber)
	if err != nil {
		return accountError(err), err
	}

	update := domain.AccountLimitsUpdate{}
	if name := strings.TrimSpace(req.AccountName); name != "" {
		update.AccountName = &name
	}
	if v := strings.TrimSpace(req.DailyWithdrawalLimit); v != "" {
		parsed, _ := decimal.NewFromString(v)
		update.DailyWithdrawalLimit = &parsed
	}
	if v := strings.TrimSpace(req.DailyTransferLimit); v != "" {
		parsed, _ := decimal.NewFromString(v)
		update.DailyTransferLimit = &parsed
	}

	if err := s.accountRepo.UpdateLimits(ctx, account.ID, update); err != nil {
		return accountError(err), err
	}

	updated, err := s.accountRepo.GetByAccountNumber(ctx, account.AccountNumber)
	if err != nil {
		return accountError(err), err
	}
	return commons.SuccessResponse("account limits updated", toAccountResponse(updated)), nil
}

func (s *AccountService) ownedAccount(ctx context.Context, customerID, accountNumber string) (domain.Account, error) {
	account, err := s.accountRepo.GetByAccountNumber(ctx, strings.TrimSpace(accountNumber))
	if err != nil {
		return domain.Account{}, err
	}
	if account.CustomerID != strings.TrimSpace(customerID) {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return account, nil
}

func accountError(err error) commons.Response[models.AccountResponse] {
	return commons.ErrorResponse[models.AccountResponse](commons.CodeFor(err), "account operation failed", err.Error())
}

func toAccountResponse(account domain.Account) models.AccountResponse {
	return models.AccountResponse{
		ID:                   account.ID,
		CustomerID:           account.CustomerID,
		AccountNumber:        account.AccountNumber,
		AccountName:          account.AccountName,
		AccountType:          string(account.AccountType),
		Currency:             account.Currency,
		Balance:              account.Balance.StringFixed(2),
		ACHRouting:           account.ACHRouting,
		SwiftCode:            account.SwiftCode,
		BankName:             account.BankName,
		Status:               string(account.Status),
		DailyWithdrawalLimit: account.DailyWithdrawalLimit.StringFixed(2),
		DailyTransferLimit:   account.DailyTransferLimit.StringFixed(2),
		MinimumBalance:       account.MinimumBalance.StringFixed(2),
		OverdraftLimit:       account.OverdraftLimit.StringFixed(2),
		CreatedAt:            account.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            account.UpdatedAt.Format(time.RFC3339),
	}
}
