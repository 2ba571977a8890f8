package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/spinhall/ledgercore/internal/domain"
	"github.com/spinhall/ledgercore/internal/usecase"
)

const entryColumns = `id, account_id, counterparty_account_id, correlation_id,
	kind, amount, balance_before, balance_after, status, actor, reason,
	metadata, created_at`

// EntryRepository implements usecase.EntryRepository. Entries are
// append-only; there is deliberately no update or delete here.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create appends an entry inside the transaction.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	q := tx.(*Tx).PgxTx()

	var metadata []byte
	if entry.Metadata != nil {
		b, err := json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("marshal entry metadata: %w", err)
		}
		metadata = b
	}

	_, err := q.Exec(ctx, `
		INSERT INTO entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		entry.ID,
		entry.AccountID,
		entry.CounterpartyAccountID,
		entry.CorrelationID,
		string(entry.Kind),
		decimalToNumeric(entry.Amount),
		decimalToNumeric(entry.BalanceBefore),
		decimalToNumeric(entry.BalanceAfter),
		string(entry.Status),
		entry.Actor,
		entry.Reason,
		metadata,
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return err
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	entries, err := r.query(ctx, r.pool, `
		SELECT `+entryColumns+` FROM entries WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrEntryNotFound
	}

	return entries[0], nil
}

// ListByAccount lists entries for an account, newest first.
func (r *EntryRepository) ListByAccount(ctx context.Context, accountID string, filter usecase.EntryFilter) ([]*domain.Entry, error) {
	sql := `SELECT ` + entryColumns + ` FROM entries WHERE account_id = $1`
	args := []any{accountID}

	if len(filter.Kinds) > 0 {
		kinds := make([]string, 0, len(filter.Kinds))
		for _, k := range filter.Kinds {
			kinds = append(kinds, string(k))
		}
		args = append(args, kinds)
		sql += fmt.Sprintf(" AND kind = ANY($%d)", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		sql += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		sql += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}

	args = append(args, filter.Limit, filter.Offset)
	sql += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return r.query(ctx, r.pool, sql, args...)
}

// GetByCorrelation returns the entries linked by one correlation id,
// such as both halves of a transfer.
func (r *EntryRepository) GetByCorrelation(ctx context.Context, correlationID string) ([]*domain.Entry, error) {
	return r.query(ctx, r.pool, `
		SELECT `+entryColumns+` FROM entries
		WHERE correlation_id = $1
		ORDER BY created_at, id`, correlationID)
}

// SumSignedByAccount replays the completed entry log for an account in
// the database, crediting or debiting each amount by kind.
func (r *EntryRepository) SumSignedByAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	var sum pgtype.Numeric

	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(
			CASE WHEN kind IN ('withdrawal', 'bet', 'transfer_out', 'admin_debit')
				THEN -amount
				ELSE amount
			END), 0)
		FROM entries
		WHERE account_id = $1 AND status = 'completed'`, accountID).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func (r *EntryRepository) query(ctx context.Context, q querier, sql string, args ...any) ([]*domain.Entry, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var (
		entry         domain.Entry
		kind          string
		status        string
		amount        pgtype.Numeric
		balanceBefore pgtype.Numeric
		balanceAfter  pgtype.Numeric
		metadata      []byte
		createdAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&entry.ID, &entry.AccountID, &entry.CounterpartyAccountID, &entry.CorrelationID,
		&kind, &amount, &balanceBefore, &balanceAfter, &status, &entry.Actor, &entry.Reason,
		&metadata, &createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	entry.Kind = domain.EntryKind(kind)
	entry.Status = domain.EntryStatus(status)
	entry.Amount = numericToDecimal(amount)
	entry.BalanceBefore = numericToDecimal(balanceBefore)
	entry.BalanceAfter = numericToDecimal(balanceAfter)
	entry.CreatedAt = createdAt.Time

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &entry.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal entry metadata: %w", err)
		}
	}

	return &entry, nil
}
