package cache

import "github.com/trimworks/flashing/pkg/core/profile"

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis instance without seeing each other's entries.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) DiagramKey(p profile.Path, opts DiagramKeyOpts) string {
	return k.prefix + k.inner.DiagramKey(p, opts)
}

func (k *ScopedKeyer) SummaryKey(set profile.DiagramSet, format string) string {
	return k.prefix + k.inner.SummaryKey(set, format)
}
