package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AmountBounds is a closed [Min, Max] range for operation amounts.
// A non-positive Max disables the upper bound.
type AmountBounds struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// ValidateAmount checks that amount is positive and within bounds.
func ValidateAmount(amount decimal.Decimal, bounds AmountBounds) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if amount.LessThan(bounds.Min) {
		return fmt.Errorf("%w: minimum amount is %s", ErrAmountOutOfBounds, bounds.Min)
	}
	if bounds.Max.IsPositive() && amount.GreaterThan(bounds.Max) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountOutOfBounds, bounds.Max)
	}
	return nil
}

// ValidateMethod checks a settlement method against the allow-list.
func ValidateMethod(method string, allowed []string) error {
	for _, m := range allowed {
		if m == method {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidMethod, method)
}

// ValidateMetadata bounds the serialized size of caller metadata.
// The ledger never interprets metadata contents.
func ValidateMetadata(metadata map[string]any) error {
	const maxMetadataSize = 10240 // 10KB

	if metadata == nil {
		return nil
	}

	size := 0
	for k, v := range metadata {
		size += len(k)
		size += len(fmt.Sprintf("%v", v))
	}
	if size > maxMetadataSize {
		return fmt.Errorf("metadata size %d bytes exceeds limit of %d bytes", size, maxMetadataSize)
	}
	return nil
}

// ValidatePagination validates and limits pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 1000
	const defaultPageSize = 50

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
