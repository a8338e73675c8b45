package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/drill/internal/logger"
)

// Docs reads and writes JSON records through a Port. Failures are logged
// and reported as a false return; they never reach the caller as errors.
type Docs struct {
	port Port
	log  *logger.Logger
}

// NewDocs wraps port. A nil log discards warnings.
func NewDocs(port Port, log *logger.Logger) *Docs {
	return &Docs{port: port, log: logger.OrNop(log)}
}

// Port returns the wrapped port.
func (d *Docs) Port() Port { return d.port }

// Load decodes the record under key into a fresh T. It returns the zero T
// and false when the record is absent, unreadable, or corrupt. A corrupt
// record is removed.
func Load[T any](ctx context.Context, d *Docs, key string) (T, bool) {
	var v T
	raw, ok, err := d.port.Get(ctx, key)
	if err != nil {
		d.log.Warn("record read failed, using default", "key", key, "error", err)
		return v, false
	}
	if !ok || raw == "" {
		return v, false
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		d.log.Warn("discarding corrupt record", "key", key,
			"error", fmt.Errorf("%w: %v", ErrCorruptRecord, err))
		if rmErr := d.port.Remove(ctx, key); rmErr != nil {
			d.log.Warn("remove corrupt record failed", "key", key, "error", rmErr)
		}
		var zero T
		return zero, false
	}
	return v, true
}

// Save encodes v and stores it under key. Returns false on failure.
func (d *Docs) Save(ctx context.Context, key string, v any) bool {
	b, err := json.Marshal(v)
	if err != nil {
		d.log.Error("encode record failed", "key", key, "error", err)
		return false
	}
	if err := d.port.Set(ctx, key, string(b)); err != nil {
		d.log.Warn("record write failed, change kept in memory only", "key", key, "error", err)
		return false
	}
	return true
}

// Delete removes the record under key. Returns false on failure.
func (d *Docs) Delete(ctx context.Context, key string) bool {
	if err := d.port.Remove(ctx, key); err != nil {
		d.log.Warn("record remove failed", "key", key, "error", err)
		return false
	}
	return true
}
