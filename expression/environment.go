package expression

// Environment supplies the runtime-dependent symbols an expression may refer
// to. Implementations must be pure reads of current state: values are queried
// again on every evaluation and may be called from multiple goroutines.
type Environment interface {
	Idiom() Idiom
	Orientation() Orientation
	HorizontalSizeClass() SizeClass
	VerticalSizeClass() SizeClass
}

// VariableProvider is an optional upgrade for Environment implementations
// that want to expose additional symbols to expressions.
type VariableProvider interface {
	Variables() map[string]any
}

// Snapshot is a fixed-value Environment. Useful wherever deterministic
// evaluation is needed: tests, command line tools, previews.
type Snapshot struct {
	Device Idiom
	Orient Orientation
	HSize  SizeClass
	VSize  SizeClass
	Vars   map[string]any
}

func (s Snapshot) Idiom() Idiom                   { return s.Device }
func (s Snapshot) Orientation() Orientation       { return s.Orient }
func (s Snapshot) HorizontalSizeClass() SizeClass { return s.HSize }
func (s Snapshot) VerticalSizeClass() SizeClass   { return s.VSize }
func (s Snapshot) Variables() map[string]any      { return s.Vars }
