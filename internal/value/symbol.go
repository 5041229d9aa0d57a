package value

// Symbol is a unique token. Two symbols are equal only if they are the same
// pointer, regardless of description.
type Symbol struct {
	description string
	described   bool
}

// NewSymbol returns a fresh symbol with the given description.
func NewSymbol(description string) *Symbol {
	return &Symbol{description: description, described: true}
}

// AnonymousSymbol returns a fresh symbol without a description.
func AnonymousSymbol() *Symbol {
	return &Symbol{}
}

// Description returns the description and whether one was set.
func (s *Symbol) Description() (string, bool) {
	return s.description, s.described
}

// String renders the symbol as Symbol(description).
func (s *Symbol) String() string {
	if s == nil {
		return "Symbol(nil)"
	}
	return "Symbol(" + s.description + ")"
}
