package repository

import "context"

// SettingsRepository defines the interface for the key/value setting store.
// Every read and write is a direct persistent operation; callers needing a
// value several times within one operation should read once and reuse.
type SettingsRepository interface {
	// Get returns the stored value, or def when the key is absent.
	Get(ctx context.Context, key, def string) (string, error)
	// Set is an idempotent upsert.
	Set(ctx context.Context, key, value string) error
	// ReserveReceiptSeq atomically reserves the next counter value for the
	// period key and advances it. Two concurrent reservations never observe
	// the same value. A period with no counter row is seeded from the global
	// receipt_seq setting (1 when unset).
	ReserveReceiptSeq(ctx context.Context, yearKey string) (int64, error)
	// PeekReceiptSeq reports the next unissued value for the period without
	// reserving it. A peeked value is not a hold.
	PeekReceiptSeq(ctx context.Context, yearKey string) (int64, error)
}
