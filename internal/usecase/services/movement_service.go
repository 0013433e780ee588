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
	"github.com/royal-shore/core-banking/internal/ledger"
	"github.com/royal-shore/core-banking/internal/logger"
)

// MovementEngine is the ledger surface the movement service drives.
type MovementEngine interface {
	Execute(ctx context.Context, req ledger.MovementRequest) (domain.Transaction, error)
	Reverse(ctx context.Context, transactionID string, userID string) (domain.Transaction, error)
}

type MovementService struct {
	engine          MovementEngine
	accountRepo     repo_interfaces.AccountRepository
	transactionRepo repo_interfaces.TransactionRepository
	beneficiaryRepo repo_interfaces.BeneficiaryRepository
	userRepo        repo_interfaces.UserRepository
}

func NewMovementService(
	engine MovementEngine,
	accountRepo repo_interfaces.AccountRepository,
	transactionRepo repo_interfaces.TransactionRepository,
	beneficiaryRepo repo_interfaces.BeneficiaryRepository,
	userRepo repo_interfaces.UserRepository,
) *MovementService {
	return &MovementService{
		engine:          engine,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		beneficiaryRepo: beneficiaryRepo,
		userRepo:        userRepo,
	}
}

func (s *MovementService) Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("movement service deposit request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse](commons.CodeValidationFailed, "validation failed", err.Error()), err
	}

	if _, err := s.ownedAccount(ctx, req.UserID, req.AccountNumber); err != nil {
		return movementError(err), err
	}

	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))
	txn, err := s.engine.Execute(ctx, ledger.MovementRequest{
		AccountNumber: strings.TrimSpace(req.AccountNumber),
		UserID:        strings.TrimSpace(req.UserID),
		Type:          domain.TransactionTypeDeposit,
		Amount:        amount,
		Description:   req.Description,
		Channel:       channelOrDefault(req.Channel),
	})
	if err != nil {
		return movementError(err), err
	}

	logger.Info("movement service deposit completed", logger.Fields{
		"transactionId": txn.TransactionID,
		"accountNumber": txn.AccountNumber,
	})
	return commons.SuccessResponse("deposit completed", toTransactionResponse(txn)), nil
}

func (s *MovementService) Withdraw(ctx context.Context, req models.WithdrawRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("movement service withdraw request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse](commons.CodeValidationFailed, "validation failed", err.Error()), err
	}

	if _, err := s.ownedAccount(ctx, req.UserID, req.AccountNumber); err != nil {
		return movementError(err), err
	}
	if err := s.checkCanTransact(ctx, req.UserID); err != nil {
		return movementError(err), err
	}

	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))
	txn, err := s.engine.Execute(ctx, ledger.MovementRequest{
		AccountNumber: strings.TrimSpace(req.AccountNumber),
		UserID:        strings.TrimSpace(req.UserID),
		Type:          domain.TransactionTypeWithdrawal,
		Amount:        amount,
		Description:   req.Description,
		Channel:       channelOrDefault(req.Channel),
	})
	if err != nil {
		return movementError(err), err
	}

	logger.Info("movement service withdraw completed", logger.Fields{
		"transactionId": txn.TransactionID,
		"accountNumber": txn.AccountNumber,
	})
	return commons.SuccessResponse("withdrawal completed", toTransactionResponse(txn)), nil
}

func (s *MovementService) Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("movement service transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse](commons.CodeValidationFailed, "validation failed", err.Error()), err
	}

	if _, err := s.ownedAccount(ctx, req.UserID, req.AccountNumber); err != nil {
		return movementError(err), err
	}
	if err := s.checkCanTransact(ctx, req.UserID); err != nil {
		return movementError(err), err
	}

	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))
	txn, err := s.engine.Execute(ctx, ledger.MovementRequest{
		AccountNumber: strings.TrimSpace(req.AccountNumber),
		UserID:        strings.TrimSpace(req.UserID),
		Type:          domain.TransactionTypeTransfer,
		Amount:        amount,
		Description:   req.Description,
		Channel:       channelOrDefault(req.Channel),
		Beneficiary: &ledger.BeneficiaryInfo{
			AccountNumber: strings.TrimSpace(req.BeneficiaryAccountNumber),
			Name:          strings.TrimSpace(req.BeneficiaryName),
			Bank:          strings.TrimSpace(req.BeneficiaryBank),
		},
	})
	if err != nil {
		return movementError(err), err
	}

	s.recordBeneficiaryUse(ctx, req)

	logger.Info("movement service transfer completed", logger.Fields{
		"transactionId": txn.TransactionID,
		"accountNumber": txn.AccountNumber,
	})
	return commons.SuccessResponse("transfer completed", toTransactionResponse(txn)), nil
}

func (s *MovementService) Reverse(ctx context.Context, req models.ReverseTransactionRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("movement service reverse request", logger.Fields{
		"transactionId": req.TransactionID,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse](commons.CodeValidationFailed, "validation failed", err.Error()), err
	}

	userID := strings.TrimSpace(req.UserID)
	transactionID := strings.TrimSpace(req.TransactionID)

	original, err := s.transactionRepo.FindByTransactionID(ctx, transactionID)
	if err != nil {
		return movementError(err), err
	}
	if original.UserID != userID {
		err := domain.ErrRecordNotFound
		return movementError(err), err
	}

	reversal, err := s.engine.Reverse(ctx, transactionID, userID)
	if err != nil {
		return movementError(err), err
	}

	logger.Info("movement service reverse completed", logger.Fields{
		"transactionId":         reversal.TransactionID,
		"originalTransactionId": transactionID,
	})
	return commons.SuccessResponse("transaction reversed", toTransactionResponse(reversal)), nil
}

func (s *MovementService) GetTransaction(ctx context.Context, userID, transactionID string) (commons.Response[models.TransactionResponse], error) {
	txn, err := s.transactionRepo.FindByTransactionID(ctx, strings.TrimSpace(transactionID))
	if err != nil {
		return movementError(err), err
	}
	if txn.UserID != strings.TrimSpace(userID) {
		err := domain.ErrRecordNotFound
		return movementError(err), err
	}
	return commons.SuccessResponse("transaction retrieved", toTransactionResponse(txn)), nil
}

func (s *MovementService) ListTransactions(ctx context.Context, userID, accountNumber string, limit int) (commons.Response[[]models.TransactionResponse], error) {
	account, err := s.ownedAccount(ctx, userID, accountNumber)
	if err != nil {
		return commons.ErrorResponse[[]models.TransactionResponse](commons.CodeFor(err), "unable to list transactions", err.Error()), err
	}

	txns, err := s.transactionRepo.ListByAccount(ctx, account.ID, limit)
	if err != nil {
		return commons.ErrorResponse[[]models.TransactionResponse](commons.CodeFor(err), "unable to list transactions", err.Error()), err
	}

	out := make([]models.TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		out = append(out, toTransactionResponse(txn))
	}
	return commons.SuccessResponse("transactions retrieved", out), nil
}

// ownedAccount loads the account and hides its existence from callers
// who do not own it.
func (s *MovementService) ownedAccount(ctx context.Context, userID, accountNumber string) (domain.Account, error) {
	account, err := s.accountRepo.GetByAccountNumber(ctx, strings.TrimSpace(accountNumber))
	if err != nil {
		return domain.Account{}, err
	}
	if account.CustomerID != strings.TrimSpace(userID) {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	return account, nil
}

func (s *MovementService) checkCanTransact(ctx context.Context, userID string) error {
	user, err := s.userRepo.GetByID(ctx, strings.TrimSpace(userID))
	if err != nil {
		return err
	}
	if !user.CanMakeTransfers {
		return domain.ErrTransferNotAllowed
	}
	return nil
}

// recordBeneficiaryUse saves or touches the beneficiary after a
// completed transfer. Best effort.
func (s *MovementService) recordBeneficiaryUse(ctx context.Context, req models.TransferRequest) {
	userID := strings.TrimSpace(req.UserID)
	accountNumber := strings.TrimSpace(req.BeneficiaryAccountNumber)
	bankName := strings.TrimSpace(req.BeneficiaryBank)

	if req.SaveBeneficiary {
		_, err := s.beneficiaryRepo.GetOrCreate(ctx, domain.Beneficiary{
			UserID:        userID,
			Nickname:      strings.TrimSpace(req.BeneficiaryName),
			AccountNumber: accountNumber,
			AccountName:   strings.TrimSpace(req.BeneficiaryName),
			BankName:      bankName,
		})
		if err != nil {
			logger.Error("movement service save beneficiary failed", err, logger.Fields{
				"userId": userID,
			})
			return
		}
	}
	if err := s.beneficiaryRepo.TouchLastUsed(ctx, userID, accountNumber, bankName); err != nil {
		logger.Error("movement service touch beneficiary failed", err, logger.Fields{
			"userId": userID,
		})
	}
}

func movementError(err error) commons.Response[models.TransactionResponse] {
	return commons.ErrorResponse[models.TransactionResponse](commons.CodeFor(err), movementMessage(err), err.Error())
}

func movementMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound), errors.Is(err, domain.ErrRecordNotFound):
		return "record not found"
	case errors.Is(err, domain.ErrLockTimeout):
		return "ledger is busy, try again"
	case errors.Is(err, domain.ErrPersistenceFailure):
		return "unable to process movement right now"
	default:
		return "movement rejected"
	}
}

func channelOrDefault(value string) domain.TransactionChannel {
	channel := domain.TransactionChannel(strings.ToUpper(strings.TrimSpace(value)))
	if channel == "" {
		return domain.ChannelAPI
	}
	return channel
}

func toTransactionResponse(txn domain.Transaction) models.TransactionResponse {
	resp := models.TransactionResponse{
		TransactionID:   txn.TransactionID,
		AccountNumber:   txn.AccountNumber,
		Type:            string(txn.Type),
		Status:          string(txn.Status),
		Amount:          txn.Amount.StringFixed(2),
		Fee:             txn.Fee.StringFixed(2),
		Currency:        txn.Currency,
		BalanceBefore:   txn.BalanceBefore.StringFixed(2),
		BalanceAfter:    txn.BalanceAfter.StringFixed(2),
		Description:     txn.Description,
		ReferenceNumber: txn.ReferenceNumber,
		Channel:         string(txn.Channel),
		InitiatedAt:     txn.InitiatedAt.Format(time.RFC3339),
	}
	if txn.BeneficiaryAccountNumber != nil {
		resp.BeneficiaryAccountNumber = *txn.BeneficiaryAccountNumber
	}
	if txn.BeneficiaryName != nil {
		resp.BeneficiaryName = *txn.BeneficiaryName
	}
	if txn.BeneficiaryBank != nil {
		resp.BeneficiaryBank = *txn.BeneficiaryBank
	}
	if txn.RelatedTransactionID != nil {
		resp.RelatedTransactionID = *txn.RelatedTransactionID
	}
	if txn.FailureReason != nil {
		resp.FailureReason = *txn.FailureReason
	}
	if txn.CompletedAt != nil {
		resp.CompletedAt = txn.CompletedAt.Format(time.RFC3339)
	}
	return resp
}
