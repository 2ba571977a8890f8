package usecase

import (
	"context"

	"github.com/spinhall/ledgercore/internal/domain"
)

// EntryUseCase serves the read-only entry log surface.
type EntryUseCase struct {
	entries EntryRepository
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(entries EntryRepository) *EntryUseCase {
	return &EntryUseCase{entries: entries}
}

// ListByAccount lists entries for an account, newest first, filtered by
// kind and time range.
func (uc *EntryUseCase) ListByAccount(ctx context.Context, accountID string, filter EntryFilter) ([]*domain.Entry, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)

	for _, k := range filter.Kinds {
		if !k.IsValid() {
			return nil, domain.ErrInvalidKind
		}
	}

	return uc.entries.ListByAccount(ctx, accountID, filter)
}

// GetByCorrelation returns the linked entries of a transfer or wager.
func (uc *EntryUseCase) GetByCorrelation(ctx context.Context, correlationID string) ([]*domain.Entry, error) {
	return uc.entries.GetByCorrelation(ctx, correlationID)
}

// Get retrieves a single entry.
func (uc *EntryUseCase) Get(ctx context.Context, id string) (*domain.Entry, error) {
	return uc.entries.GetByID(ctx, id)
}
