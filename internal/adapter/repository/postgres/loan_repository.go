package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/royal-shore/core-banking/internal/domain"
)

const loanColumns = `
	id,
	customer_id,
	account_number,
	loan_number,
	loan_type,
	principal_amount,
	interest_rate,
	term_months,
	monthly_payment,
	total_interest,
	total_amount,
	amount_paid,
	balance_remaining,
	status,
	application_date,
	approval_date,
	disbursement_date,
	first_payment_date,
	maturity_date`

type LoanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

func (r *LoanRepository) Create(ctx context.Context, l domain.Loan) (domain.Loan, error) {
	const query = `
INSERT INTO loans (
	customer_id,
	account_number,
	loan_number,
	loan_type,
	principal_amount,
	interest_rate,
	term_months,
	monthly_payment,
	total_interest,
	total_amount,
	amount_paid,
	balance_remaining,
	status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id, application_date`

	if err := chooseQuerier(ctx, r.db).QueryRowContext(
		ctx,
		query,
		l.CustomerID,
		l.AccountNumber,
		l.LoanNumber,
		l.LoanType,
		l.PrincipalAmount,
		l.InterestRate,
		l.TermMonths,
		l.MonthlyPayment,
		l.TotalInterest,
		l.TotalAmount,
		l.AmountPaid,
		l.BalanceRemaining,
		l.Status,
	).Scan(&l.ID, &l.ApplicationDate); err != nil {
		if isUniqueViolation(err) {
			return domain.Loan{}, domain.ErrDuplicateIdentifier
		}
		return domain.Loan{}, fmt.Errorf("create loan: %w", err)
	}
	return l, nil
}

func (r *LoanRepository) GetByID(ctx context.Context, customerID, loanID string) (domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1 AND customer_id = $2`
	return scanLoan(chooseQuerier(ctx, r.db).QueryRowContext(ctx, query, loanID, customerID))
}

func (r *LoanRepository) GetForUpdate(ctx context.Context, loanID string) (domain.Loan, error) {
	if txFromContext(ctx) == nil {
		return domain.Loan{}, fmt.Errorf("loan GetForUpdate requires a transaction in context")
	}

	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1 FOR UPDATE`
	l, err := scanLoan(chooseQuerier(ctx, r.db).QueryRowContext(ctx, query, loanID))
	if err != nil {
		if isLockTimeout(err) {
			return domain.Loan{}, domain.ErrLockTimeout
		}
		return domain.Loan{}, err
	}
	return l, nil
}

func (r *LoanRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE customer_id = $1 ORDER BY application_date DESC`

	rows, err := chooseQuerier(ctx, r.db).QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()

	var out []domain.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list loans rows: %w", err)
	}
	return out, nil
}

// Approve transitions a PENDING loan to APPROVED and stamps its dates.
func (r *LoanRepository) Approve(ctx context.Context, loanID string) error {
	const query = `
UPDATE loans
SET status = 'APPROVED',
    approval_date = NOW(),
    first_payment_date = NOW() + INTERVAL '1 month',
    maturity_date = NOW() + (term_months || ' months')::interval
WHERE id = $1 AND status = 'PENDING'`

	return r.exec(ctx, query, "approve loan", loanID)
}

// MarkDisbursed transitions an APPROVED loan to ACTIVE.
func (r *LoanRepository) MarkDisbursed(ctx context.Context, loanID string) error {
	const query = `
UPDATE loans
SET status = 'ACTIVE',
    disbursement_date = NOW()
WHERE id = $1 AND status = 'APPROVED'`

	return r.exec(ctx, query, "disburse loan", loanID)
}

// ApplyRepayment decreases the remaining balance and settles the loan
// when it reaches zero.
func (r *LoanRepository) ApplyRepayment(ctx context.Context, loanID string, amount decimal.Decimal) error {
	const query = `
UPDATE loans
SET amount_paid = amount_paid + $2,
    balance_remaining = balance_remaining - $2,
    status = CASE WHEN balance_remaining - $2 <= 0 THEN 'PAID' ELSE status END
WHERE id = $1 AND status = 'ACTIVE'`

	return r.exec(ctx, query, "apply loan repayment", loanID, amount)
}

func (r *LoanRepository) CreateRepayments(ctx context.Context, repayments []domain.LoanRepayment) error {
	const query = `
INSERT INTO loan_repayments (loan_id, payment_number, due_date, amount_due, amount_paid, is_paid)
VALUES ($1, $2, $3, $4, $5, $6)`

	q := chooseQuerier(ctx, r.db)
	for _, p := range repayments {
		if _, err := q.ExecContext(ctx, query, p.LoanID, p.PaymentNumber, p.DueDate, p.AmountDue, p.AmountPaid, p.IsPaid); err != nil {
			return fmt.Errorf("create loan repayment %d: %w", p.PaymentNumber, err)
		}
	}
	return nil
}

func (r *LoanRepository) ListRepayments(ctx context.Context, loanID string) ([]domain.LoanRepayment, error) {
	const query = `
SELECT id, loan_id, payment_number, due_date, amount_due, amount_paid, paid_date, is_paid, transaction_id
FROM loan_repayments
WHERE loan_id = $1
ORDER BY payment_number`

	rows, err := chooseQuerier(ctx, r.db).QueryContext(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("list loan repayments: %w", err)
	}
	defer rows.Close()

	var out []domain.LoanRepayment
	for rows.Next() {
		var (
			p        domain.LoanRepayment
			paidDate sql.NullTime
			txnID    sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.LoanID, &p.PaymentNumber, &p.DueDate, &p.AmountDue, &p.AmountPaid, &paidDate, &p.IsPaid, &txnID); err != nil {
			return nil, fmt.Errorf("scan loan repayment: %w", err)
		}
		p.PaidDate = nullTimePtr(paidDate)
		p.TransactionID = nullStringPtr(txnID)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list loan repayments rows: %w", err)
	}
	return out, nil
}

// SettleNextRepayment marks the earliest unpaid installment as paid.
func (r *LoanRepository) SettleNextRepayment(ctx context.Context, loanID string, amount decimal.Decimal, transactionID string) error {
	const query = `
UPDATE loan_repayments
SET amount_paid = $2,
    paid_date = NOW(),
    is_paid = TRUE,
    transaction_id = $3
WHERE id = (
	SELECT id FROM loan_repayments
	WHERE loan_id = $1 AND is_paid = FALSE
	ORDER BY payment_number
	LIMIT 1
)`

	if _, err := chooseQuerier(ctx, r.db).ExecContext(ctx, query, loanID, amount, transactionID); err != nil {
		return fmt.Errorf("settle loan repayment: %w", err)
	}
	return nil
}

func (r *LoanRepository) exec(ctx context.Context, query, op string, args ...any) error {
	result, err := chooseQuerier(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if rows == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func scanLoan(row rowScanner) (domain.Loan, error) {
	var (
		l                domain.Loan
		approvalDate     sql.NullTime
		disbursementDate sql.NullTime
		firstPaymentDate sql.NullTime
		maturityDate     sql.NullTime
	)

	if err := row.Scan(
		&l.ID,
		&l.CustomerID,
		&l.AccountNumber,
		&l.LoanNumber,
		&l.LoanType,
		&l.PrincipalAmount,
		&l.InterestRate,
		&l.TermMonths,
		&l.MonthlyPayment,
		&l.TotalInterest,
		&l.TotalAmount,
		&l.AmountPaid,
		&l.BalanceRemaining,
		&l.Status,
		&l.ApplicationDate,
		&approvalDate,
		&disbursementDate,
		&firstPaymentDate,
		&maturityDate,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Loan{}, domain.ErrRecordNotFound
		}
		return domain.Loan{}, fmt.Errorf("scan loan: %w", err)
	}

	l.ApprovalDate = nullTimePtr(approvalDate)
	l.DisbursementDate = nullTimePtr(disbursementDate)
	l.FirstPaymentDate = nullTimePtr(firstPaymentDate)
	l.MaturityDate = nullTimePtr(maturityDate)
	return l, nil
}
