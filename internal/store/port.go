package store

import "context"

// Port is the persistence port: a synchronous string key-value store.
// Every piece of scheduling state is kept behind it.
type Port interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Lister is implemented by ports that can enumerate their keys.
type Lister interface {
	// Keys returns every stored key that starts with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Record names. Each is one JSON document under the course prefix.
const (
	KeySchedule = "schedule"
	KeyActivity = "activity"
	KeyStreak   = "streak"
	KeySession  = "session"
	KeyProgress = "progress"
)

// RecordKeys lists every record this module persists, for bulk resets.
func RecordKeys() []string {
	return []string{KeySchedule, KeyActivity, KeyStreak, KeySession, KeyProgress}
}
