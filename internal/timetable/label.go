package timetable

import "fmt"

// Label is a uniquely keyed participant or resource marker. Key is the
// identity; Name is display text and defaults to the key.
type Label struct {
	Key  string
	Name string
}

// Registry holds the canonical *Label per key, so that every event
// mentioning a key shares one pointer and renames propagate everywhere.
type Registry struct {
	byKey map[string]*Label
	order []string // keys in first-encounter order
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]*Label)}
}

// Intern returns the label for key, creating a fresh one with Name equal
// to the key on first sight. It never fails.
func (r *Registry) Intern(key string) *Label {
	if l, ok := r.byKey[key]; ok {
		return l
	}
	l := &Label{Key: key, Name: key}
	r.byKey[key] = l
	r.order = append(r.order, key)
	return l
}

// Define stores an explicitly constructed label under its key. Unlike
// Intern it fails with ErrDuplicateLabel when the key is taken.
func (r *Registry) Define(l *Label) error {
	if _, ok := r.byKey[l.Key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateLabel, l.Key)
	}
	r.byKey[l.Key] = l
	r.order = append(r.order, l.Key)
	return nil
}

// Rename moves the label at oldKey to newKey, in place, so every event
// holding the pointer follows. A Name still equal to the old key is
// renamed with it; a customized Name stays. Renaming onto an existing key
// fails with ErrDuplicateLabel, renaming a missing key is a no-op.
func (r *Registry) Rename(oldKey, newKey string) error {
	if _, ok := r.byKey[newKey]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateLabel, newKey)
	}
	l, ok := r.byKey[oldKey]
	if !ok {
		return nil
	}
	delete(r.byKey, oldKey)
	if l.Name == l.Key {
		l.Name = newKey
	}
	l.Key = newKey
	r.byKey[newKey] = l
	for i, k := range r.order {
		if k == oldKey {
			r.order[i] = newKey
			break
		}
	}
	return nil
}

// Get returns the label for key, if present.
func (r *Registry) Get(key string) (*Label, bool) {
	l, ok := r.byKey[key]
	return l, ok
}

// Len returns the number of labels.
func (r *Registry) Len() int { return len(r.byKey) }

// Keys returns the label keys in first-encounter order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
