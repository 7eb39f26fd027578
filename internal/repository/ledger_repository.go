package repository

import "context"

// LedgerRepository is the persistence contract for the set of
// publication ids that have already been processed in earlier runs.
//
// Implementations must treat a missing ledger as an empty one: the
// first run of the watcher has no prior state and that is not an error.
// Ids are int64 regardless of how the backing store represents them;
// implementations coerce on load so novelty comparison is always
// numeric.
type LedgerRepository interface {
	// Load returns every known publication id. The returned slice
	// preserves the stored order but callers must not rely on it.
	Load(ctx context.Context) ([]int64, error)

	// Save overwrites the persisted ledger with the given ids.
	// The write replaces the previous contents in full; partial
	// updates are not part of the contract.
	Save(ctx context.Context, ids []int64) error
}
