// Package mocks provides hand-maintained in-memory fakes for the
// usecase interfaces. The fake store applies writes staged during a
// transaction atomically on commit, so atomicity and conflict behavior
// can be exercised without a database.
package mocks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spinhall/ledgercore/internal/domain"
	"github.com/spinhall/ledgercore/internal/usecase"
)

// Store is an in-memory fake of the transactional account store.
type Store struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	entries  []*domain.Entry
	requests map[string]*domain.SettlementRequest

	// Failure injection hooks, called before the write is staged.
	FailEntryCreate   func(e *domain.Entry) error
	FailAccountUpdate func(a *domain.Account) error

	// ForceConflicts makes the next N account updates fail with
	// domain.ErrConcurrencyConflict.
	ForceConflicts int32
}

// NewStore creates an empty fake store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*domain.Account),
		requests: make(map[string]*domain.SettlementRequest),
	}
}

// Seed inserts an account directly, bypassing transactions.
func (s *Store) Seed(acc *domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *acc
	s.accounts[acc.ID] = &c
}

// SeedEntry appends an entry directly, bypassing transactions.
func (s *Store) SeedEntry(e *domain.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *e
	s.entries = append(s.entries, &c)
}

// AccountSnapshot returns a copy of the committed account state.
func (s *Store) AccountSnapshot(id string) (*domain.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[id]
	if !ok {
		return nil, false
	}
	c := *acc
	return &c, true
}

// EntryCount returns the number of committed entries for an account.
func (s *Store) EntryCount(accountID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.entries {
		if e.AccountID == accountID {
			n++
		}
	}
	return n
}

// Entries returns copies of all committed entries for an account.
func (s *Store) Entries(accountID string) []*domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Entry
	for _, e := range s.entries {
		if e.AccountID == accountID {
			c := *e
			out = append(out, &c)
		}
	}
	return out
}

// Tx is a fake transaction. It holds the store-wide lock from Begin to
// Commit/Rollback, emulating row locking coarsely, and buffers writes
// until commit.
type Tx struct {
	store *Store
	done  bool

	stagedAccounts map[string]*domain.Account
	stagedEntries  []*domain.Entry
	stagedRequests map[string]*domain.SettlementRequest
}

// TxManager implements usecase.TransactionManager.
type TxManager struct {
	store *Store
}

// NewTxManager creates a TxManager bound to the store.
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Begin starts a fake transaction, acquiring the store lock.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	m.store.mu.Lock()
	return &Tx{
		store:          m.store,
		stagedAccounts: make(map[string]*domain.Account),
		stagedRequests: make(map[string]*domain.SettlementRequest),
	}, nil
}

// Commit applies staged writes atomically and releases the lock.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return fmt.Errorf("transaction already finished")
	}
	t.done = true

	for id, acc := range t.stagedAccounts {
		t.store.accounts[id] = acc
	}
	t.store.entries = append(t.store.entries, t.stagedEntries...)
	for id, req := range t.stagedRequests {
		t.store.requests[id] = req
	}

	t.store.mu.Unlock()
	return nil
}

// Rollback discards staged writes and releases the lock. Safe to call
// after Commit.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}

func asTx(tx usecase.Transaction) *Tx {
	return tx.(*Tx)
}

// AccountRepo implements usecase.AccountRepository against the store.
type AccountRepo struct {
	store *Store
}

// NewAccountRepo creates an AccountRepo.
func NewAccountRepo(store *Store) *AccountRepo {
	return &AccountRepo{store: store}
}

func (r *AccountRepo) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	t := asTx(tx)
	if _, exists := r.store.accounts[account.ID]; exists {
		return fmt.Errorf("account %s already exists", account.ID)
	}
	c := *account
	t.stagedAccounts[account.ID] = &c
	return nil
}

func (r *AccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.getLocked(id)
}

func (r *AccountRepo) getLocked(id string) (*domain.Account, error) {
	acc, ok := r.store.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	c := *acc
	return &c, nil
}

func (r *AccountRepo) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	// Lock already held by the transaction.
	return r.getLocked(id)
}

func (r *AccountRepo) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	out := make([]*domain.Account, 0, len(ids))
	for _, id := range ids {
		acc, err := r.getLocked(id)
		if err != nil {
			if err == domain.ErrAccountNotFound {
				continue
			}
			return nil, err
		}
		out = append(out, acc)
	}
	return out, nil
}

func (r *AccountRepo) Update(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	t := asTx(tx)

	if r.store.FailAccountUpdate != nil {
		if err := r.store.FailAccountUpdate(account); err != nil {
			return err
		}
	}
	if atomic.LoadInt32(&r.store.ForceConflicts) > 0 {
		atomic.AddInt32(&r.store.ForceConflicts, -1)
		return domain.ErrConcurrencyConflict
	}

	current, ok := r.store.accounts[account.ID]
	if !ok {
		if _, staged := t.stagedAccounts[account.ID]; !staged {
			return domain.ErrAccountNotFound
		}
	} else if current.Version != account.Version-1 {
		return domain.ErrConcurrencyConflict
	}

	c := *account
	t.stagedAccounts[account.ID] = &c
	return nil
}

func (r *AccountRepo) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ids := make([]string, 0, len(r.store.accounts))
	for id := range r.store.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []*domain.Account
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(out) >= limit {
			break
		}
		c := *r.store.accounts[id]
		out = append(out, &c)
	}
	return out, nil
}

// EntryRepo implements usecase.EntryRepository against the store.
type EntryRepo struct {
	store *Store
}

// NewEntryRepo creates an EntryRepo.
func NewEntryRepo(store *Store) *EntryRepo {
	return &EntryRepo{store: store}
}

func (r *EntryRepo) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	t := asTx(tx)
	if r.store.FailEntryCreate != nil {
		if err := r.store.FailEntryCreate(entry); err != nil {
			return err
		}
	}
	c := *entry
	t.stagedEntries = append(t.stagedEntries, &c)
	return nil
}

func (r *EntryRepo) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, e := range r.store.entries {
		if e.ID == id {
			c := *e
			return &c, nil
		}
	}
	return nil, domain.ErrEntryNotFound
}

func (r *EntryRepo) ListByAccount(ctx context.Context, accountID string, filter usecase.EntryFilter) ([]*domain.Entry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var matched []*domain.Entry
	for _, e := range r.store.entries {
		if e.AccountID != accountID {
			continue
		}
		if len(filter.Kinds) > 0 && !containsKind(filter.Kinds, e.Kind) {
			continue
		}
		if filter.From != nil && e.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.CreatedAt.After(*filter.To) {
			continue
		}
		c := *e
		matched = append(matched, &c)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if filter.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (r *EntryRepo) GetByCorrelation(ctx context.Context, correlationID string) ([]*domain.Entry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*domain.Entry
	for _, e := range r.store.entries {
		if e.CorrelationID == correlationID {
			c := *e
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *EntryRepo) SumSignedByAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	sum := decimal.Zero
	for _, e := range r.store.entries {
		if e.AccountID != accountID || e.Status != domain.EntryStatusCompleted {
			continue
		}
		sum = sum.Add(e.SignedAmount())
	}
	return sum, nil
}

func containsKind(kinds []domain.EntryKind, k domain.EntryKind) bool {
	for _, kind := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}

// RequestRepo implements usecase.RequestRepository against the store.
type RequestRepo struct {
	store *Store
}

// NewRequestRepo creates a RequestRepo.
func NewRequestRepo(store *Store) *RequestRepo {
	return &RequestRepo{store: store}
}

func (r *RequestRepo) Create(ctx context.Context, request *domain.SettlementRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *request
	r.store.requests[request.ID] = &c
	return nil
}

func (r *RequestRepo) GetByID(ctx context.Context, id string) (*domain.SettlementRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.getLocked(id)
}

func (r *RequestRepo) getLocked(id string) (*domain.SettlementRequest, error) {
	req, ok := r.store.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}
	c := *req
	return &c, nil
}

func (r *RequestRepo) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.SettlementRequest, error) {
	return r.getLocked(id)
}

func (r *RequestRepo) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.RequestStatus, resolvedBy string, resolvedAt time.Time) error {
	t := asTx(tx)
	req, err := r.getLocked(id)
	if err != nil {
		return err
	}
	req.Status = status
	req.ResolvedBy = resolvedBy
	req.ResolvedAt = &resolvedAt
	t.stagedRequests[id] = req
	return nil
}

func (r *RequestRepo) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.SettlementRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.listLocked(func(req *domain.SettlementRequest) bool {
		return req.AccountID == accountID
	}, limit, offset), nil
}

func (r *RequestRepo) ListPending(ctx context.Context, limit, offset int) ([]*domain.SettlementRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.listLocked(func(req *domain.SettlementRequest) bool {
		return req.Status == domain.RequestStatusPending
	}, limit, offset), nil
}

func (r *RequestRepo) listLocked(match func(*domain.SettlementRequest) bool, limit, offset int) []*domain.SettlementRequest {
	ids := make([]string, 0, len(r.store.requests))
	for id := range r.store.requests {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []*domain.SettlementRequest
	skipped := 0
	for _, id := range ids {
		req := r.store.requests[id]
		if !match(req) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		c := *req
		out = append(out, &c)
	}
	return out
}

// IDGen is a deterministic sequential ID generator.
type IDGen struct {
	counter atomic.Int64
	Prefix  string
}

// NewIDGen creates an IDGen with the given prefix.
func NewIDGen(prefix string) *IDGen {
	return &IDGen{Prefix: prefix}
}

func (g *IDGen) Generate() string {
	return fmt.Sprintf("%s%06d", g.Prefix, g.counter.Add(1))
}

// NopRetrier runs the operation exactly once.
type NopRetrier struct{}

func (NopRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

// CountingRetrier retries conflicts up to MaxRetries, tracking attempts.
type CountingRetrier struct {
	MaxRetries int
	attempts   atomic.Int64
}

func (r *CountingRetrier) Retry(ctx context.Context, operation func() error) error {
	var err error
	for i := 0; i <= r.MaxRetries; i++ {
		r.attempts.Add(1)
		err = operation()
		if err == nil || err != domain.ErrConcurrencyConflict {
			return err
		}
	}
	return err
}

// Attempts returns the total number of operation invocations.
func (r *CountingRetrier) Attempts() int {
	return int(r.attempts.Load())
}

// IdempotencyStore is an in-memory fake of the replay guard.
type IdempotencyStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewIdempotencyStore creates an empty store.
func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{data: make(map[string][]byte)}
}

func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		s.data[key] = response
	} else {
		s.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = response
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Notifier records published notifications.
type Notifier struct {
	mu     sync.Mutex
	Events []domain.Notification
	Err    error
}

func (n *Notifier) Publish(ctx context.Context, event domain.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Err != nil {
		return n.Err
	}
	n.Events = append(n.Events, event)
	return nil
}

// EventCount returns the number of published events.
func (n *Notifier) EventCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Events)
}

// Cache implements usecase.BalanceCache in memory, recording
// invalidation signals. TTLs are ignored.
type Cache struct {
	mu          sync.Mutex
	Invalidated []string
	Err         error
	values      map[string]string
}

func (c *Cache) Invalidate(ctx context.Context, accountID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.Invalidated = append(c.Invalidated, accountID)
	delete(c.values, accountID)
	return nil
}

func (c *Cache) Get(ctx context.Context, accountID string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return "", c.Err
	}
	v, ok := c.values[accountID]
	if !ok {
		return "", errors.New("cache miss")
	}
	return v, nil
}

func (c *Cache) Set(ctx context.Context, accountID, balance string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	if c.values == nil {
		c.values = make(map[string]string)
	}
	c.values[accountID] = balance
	return nil
}
