package cache

// ScopedKeyer wraps a Keyer with a prefix so that several users of one
// shared backend (for example one Redis instance behind several services)
// get separate namespaces.
//
// Example usage:
//
//	// Keys for one tenant of the HTTP service
//	k := NewScopedKeyer(NewDefaultKeyer(), "tenant:abc123:")
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
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// FormatKey generates a prefixed key for format results.
func (k *ScopedKeyer) FormatKey(draftHash string, opts FormatKeyOpts) string {
	return k.prefix + k.inner.FormatKey(draftHash, opts)
}

// ReplayKey generates a prefixed key for replay results.
func (k *ScopedKeyer) ReplayKey(layoutHash, scriptHash string, opts ReplayKeyOpts) string {
	return k.prefix + k.inner.ReplayKey(layoutHash, scriptHash, opts)
}
