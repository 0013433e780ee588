package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/royal-shore/core-banking/internal/adapter/http/models"
	"github.com/royal-shore/core-banking/internal/adapter/repository/repo_interfaces"
	"github.com/royal-shore/core-banking/internal/commons"
	"github.com/royal-shore/core-banking/internal/domain"
	"github.com/royal-shore/core-banking/internal/identifier"
	"github.com/royal-shore/core-banking/internal/ledger"
	"github.com/royal-shore/core-banking/internal/logger"
)

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

type LoanService struct {
	loanRepo    repo_interfaces.LoanRepository
	accountRepo repo_interfaces.AccountRepository
	engine      MovementEngine
	ids         IDGenerator
}

func NewLoanService(
	loanRepo repo_interfaces.LoanRepository,
	accountRepo repo_interfaces.AccountRepository,
	engine MovementEngine,
	ids IDGenerator,
) *LoanService {
	return &LoanService{
		loanRepo:    loanRepo,
		accountRepo: accountRepo,
		engine:      engine,
		ids:         ids,
	}
}

// Amortization computes the fixed monthly payment for a principal at an
// annual percentage rate over termMonths, by the standard annuity
// formula. A zero rate degenerates to principal/termMonths.
func Amortization(principal, annualRate decimal.Decimal, termMonths int) (monthlyPayment, totalInterest, totalAmount decimal.Decimal) {
	n := decimal.NewFromInt(int64(termMonths))

	monthlyRate := annualRate.Div(twelve).Div(hundred)
	if monthlyRate.IsZero() {
		monthlyPayment = principal.Div(n).Round(2)
	} else {
		// payment = P * r * (1+r)^n / ((1+r)^n - 1)
		factor := decimal.NewFromInt(1).Add(monthlyRate).Pow(n)
		monthlyPayment = principal.Mul(monthlyRate).Mul(factor).
			Div(factor.Sub(decimal.NewFromInt(1))).Round(2)
	}

	totalAmount = monthlyPayment.Mul(n).Round(2)
	totalInterest = totalAmount.Sub(principal).Round(2)
	return monthlyPayment, totalInterest, totalAmount
}

func (s *LoanService) Apply(ctx context.Context, req models.ApplyLoanRequest) (commons.Response[models.LoanResponse], error) {
	logger.Info("loan service apply request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.LoanResponse](commons.CodeValidationFailed, "validation failed", err.Error()), err
	}

	customerID := strings.TrimSpace(req.CustomerID)
	account, err := s.accountRepo.GetByAccountNumber(ctx, strings.TrimSpace(req.AccountNumber))
	if err != nil {
		return loanError(err), err
	}
	if account.CustomerID != customerID {
		err := domain.ErrAccountNotFound
		return loanError(err), err
	}

	loanNumber, err := s.ids.Generate(ctx, identifier.KindLoanNumber)
	if err != nil {
		return loanError(err), err
	}

	principal, _ := decimal.NewFromString(strings.TrimSpace(req.PrincipalAmount))
	rate, _ := decimal.NewFromString(strings.TrimSpace(req.InterestRate))
	monthlyPayment, totalInterest, totalAmount := Amortization(principal, rate, req.TermMonths)

	created, err := s.loanRepo.Create(ctx, domain.Loan{
		CustomerID:       customerID,
		AccountNumber:    account.AccountNumber,
		LoanNumber:       loanNumber,
		LoanType:         domain.LoanType(strings.ToUpper(strings.TrimSpace(req.LoanType))),
		PrincipalAmount:  principal,
		InterestRate:     rate,
		TermMonths:       req.TermMonths,
		MonthlyPayment:   monthlyPayment,
		TotalInterest:    totalInterest,
		TotalAmount:      totalAmount,
		AmountPaid:       decimal.Zero,
		BalanceRemaining: totalAmount,
		Status:           domain.LoanStatusPending,
	})
	if err != nil {
		logger.Error("loan service apply failed", err, logger.Fields{
			"customerId": customerID,
		})
		return loanError(err), err
	}

	logger.Info("loan service apply success", logger.Fields{
		"loanId":     created.ID,
		"loanNumber": created.LoanNumber,
	})
	return commons.SuccessResponse("loan application received", toLoanResponse(created)), nil
}

// Approve moves a PENDING loan to APPROVED and writes its repayment
// schedule.
func (s *LoanService) Approve(ctx context.Context, req models.LoanActionRequest) (commons.Response[models.LoanResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.LoanResponse](commons.CodeValidationFailed, "validation failed", err.Error()), err
	}

	customerID := strings.TrimSpace(req.CustomerID)
	loanID := strings.TrimSpace(req.LoanID)

	loan, err := s.loanRepo.GetByID(ctx, customerID, loanID)
	if err != nil {
		return loanError(err), err
	}
	if loan.Status != domain.LoanStatusPending {
		err := fmt.Errorf("%w: only pending loans can be approved", domain.ErrValidation)
		return loanError(err), err
	}

	if err := s.loanRepo.Approve(ctx, loan.ID); err != nil {
		return loanError(err), err
	}

	approved, err := s.loanRepo.GetByID(ctx, customerID, loanID)
	if err != nil {
		return loanError(err), err
	}

	if err := s.loanRepo.CreateRepayments(ctx, buildSchedule(approved)); err != nil {
		logger.Error("loan service schedule creation failed", err, logger.Fields{
			"loanId": approved.ID,
		})
		return loanError(err), err
	}

	logger.Info("loan service approved", logger.Fields{
		"loanId":     approved.ID,
		"loanNumber": approved.LoanNumber,
	})
	return commons.SuccessResponse("loan approved", toLoanResponse(approved)), nil
}

func buildSchedule(loan domain.Loan) []domain.LoanRepayment {
	firstDue := time.Now().UTC().AddDate(0, 1, 0)
	if loan.FirstPaymentDate != nil {
		firstDue = *loan.FirstPaymentDate
	}

	schedule := make([]domain.LoanRepayment, 0, loan.TermMonths)
	remaining := loan.TotalAmount
	for i := 0; i < loan.TermMonths; i++ {
		due := loan.MonthlyPayment
		// Last installment absorbs the rounding remainder.
		if i == loan.TermMonths-1 {
			due = remaining
		}
		remaining = remaining.Sub(due)

		schedule = append(schedule, domain.LoanRepayment{
			LoanID:        loan.ID,
			PaymentNumber: i + 1,
			DueDate:       firstDue.AddDate(0, i, 0),
			AmountDue:     due,
			AmountPaid:    decimal.Zero,
		})
	}
	return schedule
}

// Disburse credits the loan account with the principal through the
// ledger engine and activates the loan.
func (s *LoanService) Disburse(ctx context.Context, req models.LoanActionRequest) (commons.Response[models.LoanResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.LoanResponse](commons.CodeValidationFailed, "validation failed", err.Error()), err
	}

	customerID := strings.TrimSpace(req.CustomerID)
	loan, err := s.loanRepo.GetByID(ctx, customerID, strings.TrimSpace(req.LoanID))
	if err != nil {
		return loanError(err), err
	}
	if loan.Status != domain.LoanStatusApproved {
		err := fmt.Errorf("%w: only approved loans can be disbursed", domain.ErrValidation)
		return loanError(err), err
	}

	txn, err := s.engine.Execute(ctx, ledger.MovementRequest{
		AccountNumber:   loan.AccountNumber,
		UserID:          customerID,
		Type:            domain.TransactionTypeLoanDisbursement,
		Amount:          loan.PrincipalAmount,
		Description:     fmt.Sprintf("Disbursement of loan %s", loan.LoanNumber),
		ReferenceNumber: loan.LoanNumber,
		Channel:         domain.ChannelAPI,
	})
	if err != nil {
		return loanError(err), err
	}

	if err := s.loanRepo.MarkDisbursed(ctx, loan.ID); err != nil {
		return loanError(err), err
	}

	active, err := s.loanRepo.GetByID(ctx, customerID, loan.ID)
	if err != nil {
		return loanError(err), err
	}

	logger.Info("loan service disbursed", logger.Fields{
		"loanId":        active.ID,
		"transactionId": txn.TransactionID,
	})
	return commons.SuccessResponse("loan disbursed", toLoanResponse(active)), nil
}

// Repay debits the loan account through the ledger engine, settles the
// next schedule installment and reduces the outstanding balance. An
// empty amount repays the scheduled monthly payment.
func (s *LoanService) Repay(ctx context.Context, req models.RepayLoanRequest) (commons.Response[models.LoanResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.LoanResponse](commons.CodeValidationFailed, "validation failed", err.Error()), err
	}

	customerID := strings.TrimSpace(req.CustomerID)
	loan, err := s.loanRepo.GetByID(ctx, customerID, strings.TrimSpace(req.LoanID))
	if err != nil {
		return loanError(err), err
	}
	if loan.Status != domain.LoanStatusActive {
		err := fmt.Errorf("%w: only active loans can be repaid", domain.ErrValidation)
		return loanError(err), err
	}

	amount := loan.MonthlyPayment
	if strings.TrimSpace(req.Amount) != "" {
		amount, _ = decimal.NewFromString(strings.TrimSpace(req.Amount))
	}
	if amount.GreaterThan(loan.BalanceRemaining) {
		amount = loan.BalanceRemaining
	}

	txn, err := s.engine.Execute(ctx, ledger.MovementRequest{
		AccountNumber:   loan.AccountNumber,
		UserID:          customerID,
		Type:            domain.TransactionTypeLoanRepayment,
		Amount:          amount,
		Description:     fmt.Sprintf("Repayment of loan %s", loan.LoanNumber),
		ReferenceNumber: loan.LoanNumber,
		Channel:         channelOrDefault(req.Channel),
	})
	if err != nil {
		return loanError(err), err
	}

	if err := s.loanRepo.ApplyRepayment(ctx, loan.ID, amount); err != nil {
		return loanError(err), err
	}
	if err := s.loanRepo.SettleNextRepayment(ctx, loan.ID, amount, txn.TransactionID); err != nil {
		logger.Error("loan service settle installment failed", err, logger.Fields{
			"loanId":        loan.ID,
			"transactionId": txn.TransactionID,
		})
	}

	updated, err := s.loanRepo.GetByID(ctx, customerID, loan.ID)
	if err != nil {
		return loanError(err), err
	}

	logger.Info("loan service repayment applied", logger.Fields{
		"loanId":        updated.ID,
		"transactionId": txn.TransactionID,
	})
	return commons.SuccessResponse("loan repayment applied", toLoanResponse(updated)), nil
}

func (s *LoanService) ListLoans(ctx context.Context, customerID string) (commons.Response[[]models.LoanResponse], error) {
	loans, err := s.loanRepo.ListByCustomer(ctx, strings.TrimSpace(customerID))
	if err != nil {
		return commons.ErrorResponse[[]models.LoanResponse](commons.CodeFor(err), "unable to list loans", err.Error()), err
	}

	out := make([]models.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		out = append(out, toLoanResponse(loan))
	}
	return commons.SuccessResponse("loans retrieved", out), nil
}

func (s *LoanService) Schedule(ctx context.Context, customerID, loanID string) (commons.Response[[]models.LoanRepaymentResponse], error) {
	loan, err := s.loanRepo.GetByID(ctx, strings.TrimSpace(customerID), strings.TrimSpace(loanID))
	if err != nil {
		return commons.ErrorResponse[[]models.LoanRepaymentResponse](commons.CodeFor(err), "unable to load schedule", err.Error()), err
	}

	repayments, err := s.loanRepo.ListRepayments(ctx, loan.ID)
	if err != nil {
		return commons.ErrorResponse[[]models.LoanRepaymentResponse](commons.CodeFor(err), "unable to load schedule", err.Error()), err
	}

	out := make([]models.LoanRepaymentResponse, 0, len(repayments))
	for _, p := range repayments {
		item := models.LoanRepaymentResponse{
			PaymentNumber: p.PaymentNumber,
			DueDate:       p.DueDate.Format(time.RFC3339),
			AmountDue:     p.AmountDue.StringFixed(2),
			AmountPaid:    p.AmountPaid.StringFixed(2),
			IsPaid:        p.IsPaid,
		}
		if p.PaidDate != nil {
			item.PaidDate = p.PaidDate.Format(time.RFC3339)
		}
		if p.TransactionID != nil {
			item.TransactionID = *p.TransactionID
		}
		out = append(out, item)
	}
	return commons.SuccessResponse("schedule retrieved", out), nil
}

func loanError(err error) commons.Response[models.LoanResponse] {
	return commons.ErrorResponse[models.LoanResponse](commons.CodeFor(err), "loan operation failed", err.Error())
}

func toLoanResponse(loan domain.Loan) models.LoanResponse {
	resp := models.LoanResponse{
		ID:               loan.ID,
		LoanNumber:       loan.LoanNumber,
		AccountNumber:    loan.AccountNumber,
		LoanType:         string(loan.LoanType),
		PrincipalAmount:  loan.PrincipalAmount.StringFixed(2),
		InterestRate:     loan.InterestRate.String(),
		TermMonths:       loan.TermMonths,
		MonthlyPayment:   loan.MonthlyPayment.StringFixed(2),
		TotalInterest:    loan.TotalInterest.StringFixed(2),
		TotalAmount:      loan.TotalAmount.StringFixed(2),
		AmountPaid:       loan.AmountPaid.StringFixed(2),
		BalanceRemaining: loan.BalanceRemaining.StringFixed(2),
		Status:           string(loan.Status),
		ApplicationDate:  loan.ApplicationDate.Format(time.RFC3339),
	}
	if loan.ApprovalDate != nil {
		resp.ApprovalDate = loan.ApprovalDate.Format(time.RFC3339)
	}
	if loan.DisbursementDate != nil {
		resp.DisbursementDate = loan.DisbursementDate.Format(time.RFC3339)
	}
	if loan.FirstPaymentDate != nil {
		resp.FirstPaymentDate = loan.FirstPaymentDate.Format(time.RFC3339)
	}
	if loan.MaturityDate != nil {
		resp.MaturityDate = loan.MaturityDate.Format(time.RFC3339)
	}
	return resp
}
