// Package forms holds the edit form of every entity. A form starts from an
// edit input (a loaded entity) or a new input (nil id) and is read back with
// Get. The id control is disabled: Get still returns it, Set refuses it.
package forms

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Ramsey-B/babyshop/pkg/utils"
)

var (
	ErrReadOnlyField = errors.New("field is read only")
	ErrUnknownField  = errors.New("unknown field")
	ErrInvalidValue  = errors.New("invalid value")
)

const idField = "id"

type setter[T any] func(entity *T, value any) error

// Form is the edit form of an entity of type T
type Form[T any] struct {
	value   T
	setters map[string]setter[T]
}

func newForm[T any](input *T, setters map[string]setter[T]) *Form[T] {
	f := &Form[T]{setters: setters}
	f.Reset(input)
	return f
}

// Get returns the raw value of the form, id included
func (f *Form[T]) Get() T {
	return f.value
}

// Reset replaces the whole form value. A nil input resets to the defaults
// of a new entity.
func (f *Form[T]) Reset(input *T) {
	var value T
	if input != nil {
		value = *input
	}
	f.value = value
}

// Set assigns one control by its JSON name. value may be the field type, a
// pointer to it, or nil to clear the control.
func (f *Form[T]) Set(field string, value any) error {
	if field == idField {
		return fmt.Errorf("%w: %s", ErrReadOnlyField, field)
	}
	set, ok := f.setters[field]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if err := set(&f.value, value); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	return nil
}

// Fields lists the editable controls
func (f *Form[T]) Fields() []string {
	fields := make([]string, 0, len(f.setters))
	for name := range f.setters {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
}

// Validate runs the validation rules of the entity on the form value
func (f *Form[T]) Validate() error {
	_, err := utils.Validate(f.value)
	return err
}

// field builds the setter of a control holding a *V
func field[T, V any](assign func(entity *T, value *V)) setter[T] {
	return func(entity *T, value any) error {
		switch v := value.(type) {
		case nil:
			assign(entity, nil)
		case V:
			assign(entity, &v)
		case *V:
			assign(entity, v)
		default:
			var zero V
			return fmt.Errorf("%w: expected %T, got %T", ErrInvalidValue, zero, value)
		}
		return nil
	}
}

// list builds the setter of a multi-select control
func list[T, V any](assign func(entity *T, value []*V)) setter[T] {
	return func(entity *T, value any) error {
		switch v := value.(type) {
		case nil:
			assign(entity, nil)
		case []*V:
			assign(entity, v)
		default:
			return fmt.Errorf("%w: expected %T, got %T", ErrInvalidValue, []*V(nil), value)
		}
		return nil
	}
}
