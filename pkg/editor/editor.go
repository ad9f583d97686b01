// Package editor drives the update screen of an entity: it loads the entity
// into its form, keeps the option list of every relationship field in sync
// with the current selection and saves the form back through the API.
package editor

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/Gobusters/ectologger"
	"golang.org/x/sync/errgroup"

	"github.com/Ramsey-B/babyshop/pkg/forms"
	"github.com/Ramsey-B/babyshop/pkg/reconcile"
	"github.com/Ramsey-B/babyshop/pkg/tracing"
)

// Saver persists the form value
type Saver[T any] interface {
	Create(ctx context.Context, entity *T) (*T, error)
	Update(ctx context.Context, entity *T) (*T, error)
}

// Querier lists the options of a relationship field
type Querier[O any] interface {
	Query(ctx context.Context, params url.Values) ([]*O, error)
}

type relationship[T any] interface {
	name() string
	seed(entity *T)
	load(ctx context.Context, e *Editor[T]) error
}

// Editor is the update screen of an entity of type T
type Editor[T any] struct {
	mu       sync.Mutex
	entity   *T
	form     *forms.Form[T]
	saver    Saver[T]
	identify reconcile.Identify[T, int64]
	fields   []relationship[T]
	isSaving atomic.Bool
	logger   ectologger.Logger
}

func newEditor[T any](form *forms.Form[T], saver Saver[T], identify reconcile.Identify[T, int64], logger ectologger.Logger) *Editor[T] {
	return &Editor[T]{
		form:     form,
		saver:    saver,
		identify: identify,
		logger:   logger,
	}
}

// Init stores the edited entity. A non-nil entity resets the form and adds
// its selections to the option lists.
func (e *Editor[T]) Init(entity *T) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.entity = entity
	if entity == nil {
		return
	}

	e.form.Reset(entity)
	for _, field := range e.fields {
		field.seed(entity)
	}
}

// Open is Init followed by LoadRelationshipOptions
func (e *Editor[T]) Open(ctx context.Context, entity *T) error {
	e.Init(entity)
	return e.LoadRelationshipOptions(ctx)
}

// Entity returns the entity passed to Init
func (e *Editor[T]) Entity() *T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.entity
}

// Form returns the edit form
func (e *Editor[T]) Form() *forms.Form[T] {
	return e.form
}

// LoadRelationshipOptions queries the options of every relationship field
// concurrently. Each result is reconciled with the current selection and
// stored as soon as it arrives. A failed query leaves the options of its
// field untouched; the first failure is returned once every query is done.
func (e *Editor[T]) LoadRelationshipOptions(ctx context.Context) error {
	ctx, span := tracing.StartSpan(ctx, "editor.LoadRelationshipOptions")
	defer span.End()

	var g errgroup.Group
	for _, field := range e.fields {
		g.Go(func() error {
			if err := field.load(ctx, e); err != nil {
				e.logger.WithContext(ctx).WithError(err).WithField("field", field.name()).Warn("failed to load relationship options")
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// IsSaving reports whether a Save is in flight
func (e *Editor[T]) IsSaving() bool {
	return e.isSaving.Load()
}

// Save validates the form and sends it: an update when it has an id, a
// create otherwise.
func (e *Editor[T]) Save(ctx context.Context) (*T, error) {
	ctx, span := tracing.StartSpan(ctx, "editor.Save")
	defer span.End()

	e.isSaving.Store(true)
	defer e.isSaving.Store(false)

	if err := e.form.Validate(); err != nil {
		return nil, err
	}

	value := e.form.Get()
	var (
		saved *T
		err   error
	)
	if _, ok := e.identify(&value); ok {
		saved, err = e.saver.Update(ctx, &value)
	} else {
		saved, err = e.saver.Create(ctx, &value)
	}
	if err != nil {
		e.logger.WithContext(ctx).WithError(err).Warn("failed to save entity")
		return nil, err
	}
	return saved, nil
}

// Options is the option list of one relationship field
type Options[O any] struct {
	mu    *sync.Mutex
	items []*O
}

// List returns the current options
func (o *Options[O]) List() []*O {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.items
}

type relation[T, O any] struct {
	field      string
	options    *Options[O]
	querier    Querier[O]
	reconciler reconcile.Reconciler[O, int64]
	selected   func(entity *T) []*O
}

// addRelation registers a relationship field of e. selected returns the
// entities currently assigned to the field.
func addRelation[T, O any](e *Editor[T], field string, querier Querier[O], identify reconcile.Identify[O, int64], selected func(entity *T) []*O) *Options[O] {
	r := &relation[T, O]{
		field:      field,
		options:    &Options[O]{mu: &e.mu},
		querier:    querier,
		reconciler: reconcile.New(identify),
		selected:   selected,
	}
	e.fields = append(e.fields, r)
	return r.options
}

func (r *relation[T, O]) name() string { return r.field }

// seed runs with the editor lock held
func (r *relation[T, O]) seed(entity *T) {
	r.options.items = r.reconciler.ReconcileAll(r.options.items, r.selected(entity)...)
}

func (r *relation[T, O]) load(ctx context.Context, e *Editor[T]) error {
	items, err := r.querier.Query(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to load %s options: %w", r.field, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var selected []*O
	if e.entity != nil {
		selected = r.selected(e.entity)
	}
	r.options.items = r.reconciler.ReconcileAll(items, selected...)
	return nil
}

func one[O any](entity *O) []*O {
	if entity == nil {
		return nil
	}
	return []*O{entity}
}
