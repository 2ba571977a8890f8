package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spinhall/ledgercore/internal/domain"
	"github.com/spinhall/ledgercore/internal/usecase"
)

const requestColumns = `id, account_id, direction, amount, method,
	status, resolved_by, resolved_at, created_at`

// RequestRepository implements usecase.RequestRepository.
type RequestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository creates a new RequestRepository.
func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

// Create inserts a pending settlement request. Runs outside any ledger
// transaction since it never touches a balance.
func (r *RequestRepository) Create(ctx context.Context, request *domain.SettlementRequest) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO settlement_requests (`+requestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		request.ID,
		request.AccountID,
		string(request.Direction),
		decimalToNumeric(request.Amount),
		request.Method,
		string(request.Status),
		request.ResolvedBy,
		request.ResolvedAt,
		timeToPgTimestamptz(request.CreatedAt),
	)

	return err
}

// GetByID retrieves a request by ID.
func (r *RequestRepository) GetByID(ctx context.Context, id string) (*domain.SettlementRequest, error) {
	return scanRequest(r.pool.QueryRow(ctx, `
		SELECT `+requestColumns+` FROM settlement_requests WHERE id = $1`, id))
}

// GetByIDForUpdate retrieves a request with a FOR UPDATE row lock, so
// concurrent resolutions serialize on the request row.
func (r *RequestRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.SettlementRequest, error) {
	q := tx.(*Tx).PgxTx()

	return scanRequest(q.QueryRow(ctx, `
		SELECT `+requestColumns+` FROM settlement_requests WHERE id = $1 FOR UPDATE`, id))
}

// UpdateStatus moves a pending request to a terminal state inside the
// transaction. The pending guard makes the transition one-way even if
// the caller raced past the row lock.
func (r *RequestRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.RequestStatus, resolvedBy string, resolvedAt time.Time) error {
	q := tx.(*Tx).PgxTx()

	tag, err := q.Exec(ctx, `
		UPDATE settlement_requests
		SET status = $2, resolved_by = $3, resolved_at = $4
		WHERE id = $1 AND status = 'pending'`,
		id, string(status), resolvedBy, timeToPgTimestamptz(resolvedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyProcessed
	}

	return nil
}

// ListByAccount lists requests for an account, newest first.
func (r *RequestRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.SettlementRequest, error) {
	return r.list(ctx, `
		SELECT `+requestColumns+` FROM settlement_requests
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, accountID, limit, offset)
}

// ListPending lists unresolved requests, oldest first, for the
// operator queue.
func (r *RequestRepository) ListPending(ctx context.Context, limit, offset int) ([]*domain.SettlementRequest, error) {
	return r.list(ctx, `
		SELECT `+requestColumns+` FROM settlement_requests
		WHERE status = 'pending'
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *RequestRepository) list(ctx context.Context, sql string, args ...any) ([]*domain.SettlementRequest, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*domain.SettlementRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, rows.Err()
}

func scanRequest(row pgx.Row) (*domain.SettlementRequest, error) {
	var (
		request    domain.SettlementRequest
		direction  string
		status     string
		amount     pgtype.Numeric
		resolvedBy pgtype.Text
		resolvedAt pgtype.Timestamptz
		createdAt  pgtype.Timestamptz
	)

	err := row.Scan(
		&request.ID, &request.AccountID, &direction, &amount, &request.Method,
		&status, &resolvedBy, &resolvedAt, &createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}

		return nil, err
	}

	request.Direction = domain.RequestDirection(direction)
	request.Status = domain.RequestStatus(status)
	request.Amount = numericToDecimal(amount)
	request.CreatedAt = createdAt.Time
	if resolvedBy.Valid {
		request.ResolvedBy = resolvedBy.String
	}
	if resolvedAt.Valid {
		t := resolvedAt.Time
		request.ResolvedAt = &t
	}

	return &request, nil
}
