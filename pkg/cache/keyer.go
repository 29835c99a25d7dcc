package cache

// FormatKeyOpts holds everything besides the draft that shapes a format
// result.
type FormatKeyOpts struct {
	Width     float64 `json:"w"`
	Height    float64 `json:"h"`
	RootKey   string  `json:"root,omitempty"`
	MinWidth  float64 `json:"min_w"`
	MinHeight float64 `json:"min_h"`
	Leftover  string  `json:"leftover,omitempty"`
}

// ReplayKeyOpts holds everything besides the snapshot and script that shapes
// a replay result.
type ReplayKeyOpts struct {
	MinWidth  float64 `json:"min_w"`
	MinHeight float64 `json:"min_h"`
}

// Keyer derives cache keys.
type Keyer interface {
	// FormatKey keys the snapshot produced by formatting the draft whose
	// content hash is draftHash.
	FormatKey(draftHash string, opts FormatKeyOpts) string

	// ReplayKey keys the snapshot produced by replaying the script with hash
	// scriptHash against the snapshot with hash layoutHash.
	ReplayKey(layoutHash, scriptHash string, opts ReplayKeyOpts) string
}

// DefaultKeyer produces keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// FormatKey implements [Keyer].
func (DefaultKeyer) FormatKey(draftHash string, opts FormatKeyOpts) string {
	return hashKey("format", draftHash, opts)
}

// ReplayKey implements [Keyer].
func (DefaultKeyer) ReplayKey(layoutHash, scriptHash string, opts ReplayKeyOpts) string {
	return hashKey("replay", layoutHash, scriptHash, opts)
}
