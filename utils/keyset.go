package utils

// KeySet is an insertion-ordered set of strings.
type KeySet struct {
	order []string
	seen  map[string]struct{}
}

// NewKeySet creates an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{seen: make(map[string]struct{})}
}

// Add returns true if the key was newly added, false if already present.
func (s *KeySet) Add(key string) bool {
	if _, exists := s.seen[key]; exists {
		return false
	}
	s.seen[key] = struct{}{}
	s.order = append(s.order, key)
	return true
}

// Size returns the number of unique keys tracked.
func (s *KeySet) Size() int {
	return len(s.order)
}

// Keys returns the keys in insertion order.
func (s *KeySet) Keys() []string {
	return append([]string(nil), s.order...)
}
