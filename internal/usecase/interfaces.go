package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spinhall/ledgercore/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	// Create inserts a new account inside the given transaction.
	Create(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	// GetByIDForUpdate reads an account with a row lock held for the
	// remainder of the transaction.
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	// GetByIDsForUpdate locks multiple accounts; ids must be pre-sorted
	// by the caller to keep lock acquisition order stable.
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	// Update persists balance, totals and status. account.Version must
	// already be incremented; the write is conditioned on the stored row
	// still holding account.Version-1 and fails with
	// domain.ErrConcurrencyConflict otherwise.
	Update(ctx context.Context, tx Transaction, account *domain.Account) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// EntryFilter narrows entry listings.
type EntryFilter struct {
	Kinds  []domain.EntryKind
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// EntryRepository defines data access for the append-only entry log.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	// ListByAccount returns entries ordered by created_at descending.
	ListByAccount(ctx context.Context, accountID string, filter EntryFilter) ([]*domain.Entry, error)
	GetByCorrelation(ctx context.Context, correlationID string) ([]*domain.Entry, error)
	// SumSignedByAccount replays the completed entry log into a single
	// signed sum for reconciliation.
	SumSignedByAccount(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// RequestRepository defines data access for settlement requests.
type RequestRepository interface {
	Create(ctx context.Context, request *domain.SettlementRequest) error
	GetByID(ctx context.Context, id string) (*domain.SettlementRequest, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.SettlementRequest, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.RequestStatus, resolvedBy string, resolvedAt time.Time) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.SettlementRequest, error)
	ListPending(ctx context.Context, limit, offset int) ([]*domain.SettlementRequest, error)
}

// Transaction represents a store transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines the balance cache invalidation signal. The cache is
// never a source of truth; readers re-fetch the account record.
type Cache interface {
	Invalidate(ctx context.Context, accountID string) error
}

// BalanceCache extends Cache with read-through access for the hot
// balance read path. Writes invalidate; the TTL bounds staleness when
// an invalidation is lost. Get reports a miss with a non-nil error.
type BalanceCache interface {
	Cache
	Get(ctx context.Context, accountID string) (string, error)
	Set(ctx context.Context, accountID, balance string, ttl time.Duration) error
}

// Notifier is the best-effort notification sink. Publish failures are
// logged by the caller and never affect the committed mutation.
type Notifier interface {
	Publish(ctx context.Context, n domain.Notification) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release removes a key whose operation failed so the caller may retry.
	Release(ctx context.Context, key string) error
}
