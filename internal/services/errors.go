package services

import (
	"database/sql"
	"errors"
	"fmt"

	"apparelstock/internal/metrics"
	"apparelstock/internal/repos"
)

var (
	// ErrNotFound means a single-row lookup or update matched nothing.
	ErrNotFound = errors.New("not found")
	// ErrQueryFailed wraps any other store error; the store message follows it.
	ErrQueryFailed = errors.New("query failed")
	// ErrStoreUnavailable is fatal at startup.
	ErrStoreUnavailable = repos.ErrStoreUnavailable
)

// storeErr classifies a store error for op on entity id (0 for list calls).
func storeErr(op, entity string, id int64, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
	}
	metrics.StoreErrors.WithLabelValues(op).Inc()
	return fmt.Errorf("%w: %w", ErrQueryFailed, err)
}
