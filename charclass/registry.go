package charclass

// Registry interns canonical character classes and assigns stable class IDs.
//
// The registry must be fully populated before any NFA edge that references a
// class ID is finalized, so the IDs stay consistent across all DFAs of one
// scanner.
type Registry struct {
	classes []RangeSet
	index   map[string]ID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[string]ID),
	}
}

// Intern returns the ID of the canonical class, assigning a fresh ID on the
// first occurrence. Interning is idempotent: equal canonical sets yield
// equal IDs.
func (r *Registry) Intern(set RangeSet) ID {
	key := set.Key()
	if id, ok := r.index[key]; ok {
		return id
	}
	id := ID(len(r.classes))
	r.classes = append(r.classes, set)
	r.index[key] = id
	return id
}

// Count returns the number of interned classes.
func (r *Registry) Count() int {
	return len(r.classes)
}

// Set returns the canonical range set of the given class.
// Returns the empty set for an unknown ID.
func (r *Registry) Set(id ID) RangeSet {
	if id < 0 || int(id) >= len(r.classes) {
		return RangeSet{}
	}
	return r.classes[id]
}

// Predicate returns a total membership function for the given class.
func (r *Registry) Predicate(id ID) func(rune) bool {
	set := r.Set(id)
	return set.Contains
}

// Predicates returns the full predicate vector, indexed by class ID.
// This is the vector bound into a compiled scanner.
func (r *Registry) Predicates() []func(rune) bool {
	preds := make([]func(rune) bool, len(r.classes))
	for i := range r.classes {
		preds[i] = r.classes[i].Contains
	}
	return preds
}

// Matches reports whether ch is a member of the class with the given ID.
func (r *Registry) Matches(ch rune, id ID) bool {
	return r.Set(id).Contains(ch)
}
