package models

// Identifier is the identifier accessor shared by every entity. A nil id is
// the placeholder of an entity that has not been saved yet.
func Identifier(id *int64) (int64, bool) {
	if id == nil {
		return 0, false
	}
	return *id, true
}

// SameIdentifier reports whether two identifiers are both set and equal.
func SameIdentifier(a, b *int64) bool {
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Float32 returns a pointer to v.
func Float32(v float32) *float32 { return &v }
