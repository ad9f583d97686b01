// Package reconcile keeps the option list of a relationship field consistent
// with the entity currently assigned to that field.
//
// An edit screen fetches the selectable options for a relationship from the
// API, but the value already assigned to the record being edited may not be
// part of that page (it was loaded earlier, it is soft deleted, or the page
// simply does not include it). AddToCollectionIfMissing puts it back.
//
// Collections are expected to be unique by identifier. Duplicate identifiers
// are not rejected: the first match counts as "already present" and the input
// is returned as is.
package reconcile

// Identify returns the identifier of an entity. ok is false for an entity that
// has not been persisted yet; such entities only match themselves (same pointer).
type Identify[T any, K comparable] func(entity *T) (id K, ok bool)

// AddToCollectionIfMissing returns collection with selected appended at the end
// when no member of collection has the same identifier. A nil selected, or one
// that is already present, returns collection unchanged. The input slice is
// never written to.
func AddToCollectionIfMissing[T any, K comparable](collection []*T, selected *T, identify Identify[T, K]) []*T {
	if selected == nil || Contains(collection, selected, identify) {
		return collection
	}

	result := make([]*T, len(collection), len(collection)+1)
	copy(result, collection)
	return append(result, selected)
}

// AddAllToCollectionIfMissing applies AddToCollectionIfMissing for every
// selected entity in order, so entities repeated in selected are only added
// once. It is meant for multi-select (many-to-many) fields.
func AddAllToCollectionIfMissing[T any, K comparable](collection []*T, identify Identify[T, K], selected ...*T) []*T {
	var result []*T
	current := collection
	for _, entity := range selected {
		if entity == nil || Contains(current, entity, identify) {
			continue
		}
		if result == nil {
			result = make([]*T, len(collection), len(collection)+len(selected))
			copy(result, collection)
		}
		result = append(result, entity)
		current = result
	}

	if result == nil {
		return collection
	}
	return result
}

// Contains reports whether collection holds an entity with the same identifier
// as entity, or entity itself.
func Contains[T any, K comparable](collection []*T, entity *T, identify Identify[T, K]) bool {
	if entity == nil {
		return false
	}

	id, persisted := identify(entity)
	for _, item := range collection {
		if item == nil {
			continue
		}
		if item == entity {
			return true
		}
		if !persisted {
			continue
		}
		if itemID, ok := identify(item); ok && itemID == id {
			return true
		}
	}
	return false
}

// Reconciler binds an identifier function for one entity kind.
type Reconciler[T any, K comparable] struct {
	identify Identify[T, K]
}

// New creates a Reconciler for the entity kind identified by identify.
func New[T any, K comparable](identify Identify[T, K]) Reconciler[T, K] {
	return Reconciler[T, K]{identify: identify}
}

// Reconcile is AddToCollectionIfMissing with the bound identifier function.
func (r Reconciler[T, K]) Reconcile(collection []*T, selected *T) []*T {
	return AddToCollectionIfMissing(collection, selected, r.identify)
}

// ReconcileAll is AddAllToCollectionIfMissing with the bound identifier function.
func (r Reconciler[T, K]) ReconcileAll(collection []*T, selected ...*T) []*T {
	return AddAllToCollectionIfMissing(collection, r.identify, selected...)
}

// Same reports whether a and b are the same entity.
func (r Reconciler[T, K]) Same(a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return Contains([]*T{a}, b, r.identify)
}
