package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spinhall/ledgercore/internal/domain"
	"github.com/spinhall/ledgercore/internal/usecase"
)

const accountColumns = `id, balance, status, version,
	total_deposited, total_withdrawn, total_won, total_lost,
	total_transferred_out, total_transferred_in,
	created_at, updated_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new account inside the transaction.
func (r *AccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	q := tx.(*Tx).PgxTx()

	_, err := q.Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		account.ID,
		decimalToNumeric(account.Balance),
		string(account.Status),
		account.Version,
		decimalToNumeric(account.Totals.Deposited),
		decimalToNumeric(account.Totals.Withdrawn),
		decimalToNumeric(account.Totals.Won),
		decimalToNumeric(account.Totals.Lost),
		decimalToNumeric(account.Totals.TransferredOut),
		decimalToNumeric(account.Totals.TransferredIn),
		timeToPgTimestamptz(account.CreatedAt),
		timeToPgTimestamptz(account.UpdatedAt),
	)

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
}

// GetByIDForUpdate retrieves an account with a FOR UPDATE row lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	q := tx.(*Tx).PgxTx()

	return scanAccount(q.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id))
}

// GetByIDsForUpdate retrieves multiple accounts with FOR UPDATE row
// locks. Rows are locked in the order given, so callers must pass ids
// sorted to keep the lock order globally consistent.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	q := tx.(*Tx).PgxTx()

	rows, err := q.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}

	return accounts, rows.Err()
}

// Update writes the account row. The write is conditioned on the stored
// version still being account.Version-1; a zero-row update means a
// concurrent writer won and the caller must retry.
func (r *AccountRepository) Update(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	q := tx.(*Tx).PgxTx()

	tag, err := q.Exec(ctx, `
		UPDATE accounts
		SET balance = $3,
			status = $4,
			version = $2,
			total_deposited = $5,
			total_withdrawn = $6,
			total_won = $7,
			total_lost = $8,
			total_transferred_out = $9,
			total_transferred_in = $10,
			updated_at = $11
		WHERE id = $1 AND version = $2 - 1`,
		account.ID,
		account.Version,
		decimalToNumeric(account.Balance),
		string(account.Status),
		decimalToNumeric(account.Totals.Deposited),
		decimalToNumeric(account.Totals.Withdrawn),
		decimalToNumeric(account.Totals.Won),
		decimalToNumeric(account.Totals.Lost),
		decimalToNumeric(account.Totals.TransferredOut),
		decimalToNumeric(account.Totals.TransferredIn),
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConcurrencyConflict
	}

	return nil
}

// List lists accounts with pagination, oldest first.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}

	return accounts, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		acc       domain.Account
		status    string
		balance   pgtype.Numeric
		deposited pgtype.Numeric
		withdrawn pgtype.Numeric
		won       pgtype.Numeric
		lost      pgtype.Numeric
		out       pgtype.Numeric
		in        pgtype.Numeric
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&acc.ID, &balance, &status, &acc.Version,
		&deposited, &withdrawn, &won, &lost, &out, &in,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	acc.Balance = numericToDecimal(balance)
	acc.Status = domain.AccountStatus(status)
	acc.Totals = domain.Totals{
		Deposited:      numericToDecimal(deposited),
		Withdrawn:      numericToDecimal(withdrawn),
		Won:            numericToDecimal(won),
		Lost:           numericToDecimal(lost),
		TransferredOut: numericToDecimal(out),
		TransferredIn:  numericToDecimal(in),
	}
	acc.CreatedAt = createdAt.Time
	acc.UpdatedAt = updatedAt.Time

	return &acc, nil
}
