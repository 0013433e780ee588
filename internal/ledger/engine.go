package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/royal-shore/core-banking/internal/domain"
	"github.com/royal-shore/core-banking/internal/identifier"
	"github.com/royal-shore/core-banking/internal/logger"
)

// errRetryTransactionID signals a transaction-ID unique violation inside
// the storage transaction; the engine rolls back and retries with a
// fresh identifier.
var errRetryTransactionID = errors.New("transaction id collided, retry")

const defaultIDRetries = 5

type BeneficiaryInfo struct {
	AccountNumber string
	Name          string
	Bank          string
}

// MovementRequest describes one proposed balance change.
type MovementRequest struct {
	AccountNumber   string
	UserID          string
	Type            domain.TransactionType
	Amount          decimal.Decimal
	Currency        string
	Description     string
	ReferenceNumber string
	Channel         domain.TransactionChannel
	Beneficiary     *BeneficiaryInfo
}

// Engine applies money movements. Each movement runs as one storage
// transaction: the account row is locked, state is re-read under the
// lock, the limit policy runs against that fresh state, and the
// transaction record, balance update and daily counters commit as a
// single unit.
type Engine struct {
	tx       TxManager
	accounts AccountStore
	log      TransactionLog
	usage    LimitUsageStore
	users    UserStore
	ids      IDGenerator
	notifier Notifier
	policy   Policy

	now          func() time.Time
	maxIDRetries int
}

func NewEngine(
	tx TxManager,
	accounts AccountStore,
	log TransactionLog,
	usage LimitUsageStore,
	users UserStore,
	ids IDGenerator,
	notifier Notifier,
	policy Policy,
) *Engine {
	return &Engine{
		tx:           tx,
		accounts:     accounts,
		log:          log,
		usage:        usage,
		users:        users,
		ids:          ids,
		notifier:     notifier,
		policy:       policy,
		now:          time.Now,
		maxIDRetries: defaultIDRetries,
	}
}

// Execute applies the movement and returns the resulting transaction
// record. Business rejections return the specific domain error alongside
// the FAILED record; the balance and counters are untouched. On success
// the returned record is COMPLETED and the stored balance equals its
// BalanceAfter before Execute returns.
func (e *Engine) Execute(ctx context.Context, req MovementRequest) (domain.Transaction, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.Transaction{}, domain.ErrInvalidAmount
	}
	if !req.Type.IsCredit() && !req.Type.IsDebit() {
		return domain.Transaction{}, fmt.Errorf("%w: movement type %q is not executable", domain.ErrValidation, req.Type)
	}
	if req.Type == domain.TransactionTypeTransfer {
		if req.Beneficiary == nil {
			return domain.Transaction{}, fmt.Errorf("%w: transfer requires beneficiary details", domain.ErrValidation)
		}
		if strings.TrimSpace(req.Beneficiary.AccountNumber) == strings.TrimSpace(req.AccountNumber) {
			return domain.Transaction{}, domain.ErrSameAccountTransfer
		}
	}

	var (
		result      domain.Transaction
		businessErr error
	)

	var err error
	for attempt := 0; attempt < e.maxIDRetries; attempt++ {
		result = domain.Transaction{}
		businessErr = nil

		err = e.tx.WithTransaction(ctx, func(txCtx context.Context) error {
			txn, policyErr, innerErr := e.applyMovement(txCtx, req)
			if innerErr != nil {
				return innerErr
			}
			result = txn
			// Business rejections commit: the FAILED row is kept for
			// audit while balance and counters stay untouched.
			businessErr = policyErr
			return nil
		})
		if errors.Is(err, errRetryTransactionID) {
			logger.Info("ledger engine retrying with fresh transaction id", logger.Fields{
				"accountNumber": req.AccountNumber,
				"attempt":       attempt + 1,
			})
			continue
		}
		break
	}

	if err != nil {
		if errors.Is(err, errRetryTransactionID) {
			err = domain.ErrDuplicateIdentifier
		}
		return domain.Transaction{}, e.classifyFault(req, err)
	}
	if businessErr != nil {
		return result, businessErr
	}

	e.dispatchNotification(result)
	return result, nil
}

// applyMovement runs inside the storage transaction. It returns the
// transaction record, a business rejection (nil on success), and an
// infrastructure error that must roll the transaction back.
func (e *Engine) applyMovement(ctx context.Context, req MovementRequest) (domain.Transaction, error, error) {
	account, err := e.accounts.GetForUpdate(ctx, req.AccountNumber)
	if err != nil {
		return domain.Transaction{}, nil, err
	}

	fee := e.policy.Fee(req.Type, req.Amount)
	day := e.now().UTC().Truncate(24 * time.Hour)

	var usage domain.DailyLimitUsage
	var delta domain.LimitDelta
	switch req.Type {
	case domain.TransactionTypeWithdrawal:
		usage, err = e.usage.GetForUpdate(ctx, req.UserID, day)
		if err != nil {
			return domain.Transaction{}, nil, err
		}
		delta = domain.LimitDelta{WithdrawalCount: 1, WithdrawalAmount: req.Amount}
	case domain.TransactionTypeTransfer:
		usage, err = e.usage.GetForUpdate(ctx, req.UserID, day)
		if err != nil {
			return domain.Transaction{}, nil, err
		}
		delta = domain.LimitDelta{TransferCount: 1, TransferAmount: req.Amount}
	}

	policyErr := e.validate(ctx, req, account, usage, fee)
	if policyErr != nil {
		if !isBusinessRejection(policyErr) {
			return domain.Transaction{}, nil, policyErr
		}
		failed, err := e.appendRecord(ctx, req, account, fee, account.Balance, domain.TransactionStatusFailed, policyErr.Error())
		if err != nil {
			return domain.Transaction{}, nil, err
		}
		return failed, policyErr, nil
	}

	balanceAfter := account.Balance
	if req.Type.IsCredit() {
		balanceAfter = balanceAfter.Add(req.Amount)
	} else {
		balanceAfter = balanceAfter.Sub(req.Amount.Add(fee))
	}

	txn, err := e.appendRecord(ctx, req, account, fee, balanceAfter, domain.TransactionStatusCompleted, "")
	if err != nil {
		return domain.Transaction{}, nil, err
	}

	if err := e.accounts.UpdateBalance(ctx, account.ID, balanceAfter); err != nil {
		return domain.Transaction{}, nil, err
	}

	if delta.WithdrawalCount > 0 || delta.TransferCount > 0 {
		if err := e.usage.Apply(ctx, req.UserID, day, delta); err != nil {
			return domain.Transaction{}, nil, err
		}
	}

	return txn, nil, nil
}

func (e *Engine) validate(ctx context.Context, req MovementRequest, account domain.Account, usage domain.DailyLimitUsage, fee decimal.Decimal) error {
	switch req.Type {
	case domain.TransactionTypeDeposit:
		return e.policy.ValidateDeposit(account, req.Amount)
	case domain.TransactionTypeWithdrawal:
		return e.policy.ValidateWithdrawal(account, usage, req.Amount)
	case domain.TransactionTypeTransfer:
		user, err := e.users.GetByID(ctx, req.UserID)
		if err != nil {
			return err
		}
		return e.policy.ValidateTransfer(account, user, usage, req.Amount, fee)
	case domain.TransactionTypeInterest, domain.TransactionTypeRefund, domain.TransactionTypeLoanDisbursement:
		if !account.Operable() {
			return domain.ErrAccountNotOperable
		}
		return nil
	default:
		return e.policy.ValidateDebit(account, req.Amount.Add(fee))
	}
}

func (e *Engine) appendRecord(
	ctx context.Context,
	req MovementRequest,
	account domain.Account,
	fee decimal.Decimal,
	balanceAfter decimal.Decimal,
	status domain.TransactionStatus,
	failureReason string,
) (domain.Transaction, error) {
	transactionID, err := e.ids.Generate(ctx, identifier.KindTransactionID)
	if err != nil {
		return domain.Transaction{}, err
	}

	now := e.now().UTC()
	txn := domain.Transaction{
		TransactionID:   transactionID,
		UserID:          req.UserID,
		AccountID:       account.ID,
		AccountNumber:   account.AccountNumber,
		Type:            req.Type,
		Amount:          req.Amount.Round(2),
		Currency:        account.Currency,
		Fee:             fee,
		Status:          status,
		Channel:         req.Channel,
		BalanceBefore:   account.Balance,
		BalanceAfter:    balanceAfter,
		Description:     strings.TrimSpace(req.Description),
		ReferenceNumber: strings.TrimSpace(req.ReferenceNumber),
		InitiatedAt:     now,
	}
	if req.Beneficiary != nil {
		txn.BeneficiaryAccountNumber = trimmedPtr(req.Beneficiary.AccountNumber)
		txn.BeneficiaryName = trimmedPtr(req.Beneficiary.Name)
		txn.BeneficiaryBank = trimmedPtr(req.Beneficiary.Bank)
	}
	switch status {
	case domain.TransactionStatusCompleted:
		txn.CompletedAt = &now
	case domain.TransactionStatusFailed:
		txn.FailedAt = &now
		txn.FailureReason = &failureReason
	}

	created, err := e.log.Append(ctx, txn)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentifier) {
			return domain.Transaction{}, errRetryTransactionID
		}
		return domain.Transaction{}, err
	}
	return created, nil
}

// Reverse books a compensating REVERSAL entry for a COMPLETED
// transaction and marks the original REVERSED, atomically.
func (e *Engine) Reverse(ctx context.Context, transactionID string, userID string) (domain.Transaction, error) {
	var (
		result      domain.Transaction
		businessErr error
	)

	var err error
	for attempt := 0; attempt < e.maxIDRetries; attempt++ {
		result = domain.Transaction{}
		businessErr = nil

		err = e.tx.WithTransaction(ctx, func(txCtx context.Context) error {
			original, err := e.log.FindByTransactionID(txCtx, transactionID)
			if err != nil {
				return err
			}
			if original.Status != domain.TransactionStatusCompleted {
				businessErr = domain.ErrNotReversible
				return nil
			}
			// A reversal entry is itself final. Undoing an undo would
			// re-run the original movement without its policy checks.
			if original.Type == domain.TransactionTypeReversal {
				businessErr = domain.ErrNotReversible
				return nil
			}

			account, err := e.accounts.GetForUpdate(txCtx, original.AccountNumber)
			if err != nil {
				return err
			}

			// Reversal of a debit credits back amount+fee; reversal of a
			// credit takes the amount back out.
			compensation := original.Amount.Add(original.Fee)
			balanceAfter := account.Balance.Add(compensation)
			if original.Type.IsCredit() {
				compensation = original.Amount
				if compensation.GreaterThan(account.Balance) {
					businessErr = domain.ErrInsufficientFunds
					return nil
				}
				balanceAfter = account.Balance.Sub(compensation)
			}

			reversalID, err := e.ids.Generate(txCtx, identifier.KindTransactionID)
			if err != nil {
				return err
			}

			now := e.now().UTC()
			reversal := domain.Transaction{
				TransactionID:        reversalID,
				UserID:               userID,
				AccountID:            account.ID,
				AccountNumber:        account.AccountNumber,
				Type:                 domain.TransactionTypeReversal,
				Amount:               compensation,
				Currency:             original.Currency,
				Fee:                  decimal.Zero,
				Status:               domain.TransactionStatusCompleted,
				Channel:              original.Channel,
				BalanceBefore:        account.Balance,
				BalanceAfter:         balanceAfter,
				Description:          fmt.Sprintf("Reversal of %s", original.TransactionID),
				RelatedTransactionID: &original.TransactionID,
				InitiatedAt:          now,
				CompletedAt:          &now,
			}

			created, err := e.log.Append(txCtx, reversal)
			if err != nil {
				if errors.Is(err, domain.ErrDuplicateIdentifier) {
					return errRetryTransactionID
				}
				return err
			}
			if err := e.accounts.UpdateBalance(txCtx, account.ID, balanceAfter); err != nil {
				return err
			}
			if err := e.log.MarkReversed(txCtx, original.TransactionID, created.TransactionID); err != nil {
				return err
			}

			result = created
			return nil
		})
		if errors.Is(err, errRetryTransactionID) {
			logger.Info("ledger engine retrying reversal with fresh transaction id", logger.Fields{
				"transactionId": transactionID,
				"attempt":       attempt + 1,
			})
			continue
		}
		break
	}

	if err != nil {
		if errors.Is(err, errRetryTransactionID) {
			err = domain.ErrDuplicateIdentifier
		}
		return domain.Transaction{}, e.classifyFault(MovementRequest{}, err)
	}
	if businessErr != nil {
		return domain.Transaction{}, businessErr
	}

	e.dispatchNotification(result)
	return result, nil
}

func (e *Engine) dispatchNotification(txn domain.Transaction) {
	if e.notifier == nil {
		return
	}
	go e.notifier.MovementCompleted(context.Background(), txn)
}

// classifyFault keeps domain errors intact and folds everything else
// into ErrPersistenceFailure so callers never see raw storage errors.
func (e *Engine) classifyFault(req MovementRequest, err error) error {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrRecordNotFound),
		errors.Is(err, domain.ErrLockTimeout):
		return err
	default:
		logger.Error("ledger engine movement failed", err, logger.Fields{
			"accountNumber": req.AccountNumber,
			"movementType":  string(req.Type),
		})
		return fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
	}
}

func isBusinessRejection(err error) bool {
	for _, sentinel := range []error{
		domain.ErrInvalidAmount,
		domain.ErrAccountNotOperable,
		domain.ErrInsufficientFunds,
		domain.ErrLimitExceeded,
		domain.ErrBelowMinimumBalance,
		domain.ErrSameAccountTransfer,
		domain.ErrTransferNotAllowed,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func trimmedPtr(value string) *string {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	return &v
}
