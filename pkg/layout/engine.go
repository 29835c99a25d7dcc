package layout

// Engine applies layout operations under one set of [Constraints].
// It holds no other state and is safe for concurrent use.
type Engine struct {
	cons Constraints
}

// New creates an engine after validating cons.
// An empty leftover policy is treated as [LeftoverDrop].
func New(cons Constraints) (*Engine, error) {
	if err := cons.Validate(); err != nil {
		return nil, err
	}
	if cons.Leftover == "" {
		cons.Leftover = LeftoverDrop
	}
	return &Engine{cons: cons}, nil
}

// Default returns an engine with [DefaultConstraints].
func Default() *Engine {
	return &Engine{cons: DefaultConstraints()}
}

// Constraints returns the engine's size policy.
func (e *Engine) Constraints() Constraints {
	return e.cons
}
