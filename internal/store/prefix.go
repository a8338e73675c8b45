package store

import (
	"context"
	"strings"
)

// Namespaced scopes a Port to one course by prefixing every key.
type Namespaced struct {
	inner  Port
	prefix string
}

var _ Port = (*Namespaced)(nil)

// WithPrefix returns a port that stores key as "<prefix>:<key>" in inner.
func WithPrefix(inner Port, prefix string) *Namespaced {
	return &Namespaced{inner: inner, prefix: prefix}
}

func (n *Namespaced) Prefix() string { return n.prefix }

func (n *Namespaced) key(k string) string {
	return n.prefix + ":" + k
}

func (n *Namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.inner.Get(ctx, n.key(key))
}

func (n *Namespaced) Set(ctx context.Context, key, value string) error {
	return n.inner.Set(ctx, n.key(key), value)
}

func (n *Namespaced) Remove(ctx context.Context, key string) error {
	return n.inner.Remove(ctx, n.key(key))
}

// Keys lists keys under this namespace, with the namespace stripped.
// Returns nil when the inner port cannot enumerate.
func (n *Namespaced) Keys(ctx context.Context, prefix string) ([]string, error) {
	l, ok := n.inner.(Lister)
	if !ok {
		return nil, nil
	}
	full, err := l.Keys(ctx, n.key(prefix))
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(full))
	for _, k := range full {
		keys = append(keys, strings.TrimPrefix(k, n.prefix+":"))
	}
	return keys, nil
}

// Reset removes every record this module persists under the namespace.
// It is the bulk data-reset operation; nothing in the scheduling core calls it.
func Reset(ctx context.Context, p Port) error {
	for _, k := range RecordKeys() {
		if err := p.Remove(ctx, k); err != nil {
			return err
		}
	}
	return nil
}
