package reconcile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   *int64
	Name string
}

func identifyItem(i *item) (int64, bool) {
	if i.ID == nil {
		return 0, false
	}
	return *i.ID, true
}

func newItem(id int64) *item {
	return &item{ID: &id}
}

func ids(items []*item) []int64 {
	out := make([]int64, 0, len(items))
	for _, i := range items {
		if i.ID == nil {
			out = append(out, -1)
			continue
		}
		out = append(out, *i.ID)
	}
	return out
}

func TestAddToCollectionIfMissing_NilSelectedReturnsInput(t *testing.T) {
	collection := []*item{newItem(1), newItem(2)}

	result := AddToCollectionIfMissing(collection, nil, identifyItem)

	assert.Equal(t, []int64{1, 2}, ids(result))
	assert.Same(t, collection[0], result[0])
}

func TestAddToCollectionIfMissing_EmptyAndNil(t *testing.T) {
	result := AddToCollectionIfMissing([]*item{}, nil, identifyItem)
	assert.Empty(t, result)
	assert.NotNil(t, result)

	result = AddToCollectionIfMissing[item, int64](nil, nil, identifyItem)
	assert.Nil(t, result)
}

func TestAddToCollectionIfMissing_AlreadyPresent(t *testing.T) {
	collection := []*item{newItem(1), newItem(2)}
	selected := newItem(2)

	result := AddToCollectionIfMissing(collection, selected, identifyItem)

	assert.Equal(t, []int64{1, 2}, ids(result))
	// the member from the collection is kept, not replaced by the selection
	assert.Same(t, collection[1], result[1])
	assert.NotSame(t, selected, result[1])
}

func TestAddToCollectionIfMissing_AppendsAtEnd(t *testing.T) {
	collection := []*item{newItem(1), newItem(2)}
	selected := newItem(5)

	result := AddToCollectionIfMissing(collection, selected, identifyItem)

	require.Len(t, result, len(collection)+1)
	assert.Equal(t, []int64{1, 2, 5}, ids(result))
	assert.Same(t, selected, result[2])
}

func TestAddToCollectionIfMissing_EmptyCollection(t *testing.T) {
	selected := newItem(3)

	result := AddToCollectionIfMissing(nil, selected, identifyItem)

	require.Len(t, result, 1)
	assert.Same(t, selected, result[0])
}

func TestAddToCollectionIfMissing_DoesNotWriteIntoInput(t *testing.T) {
	backing := make([]*item, 2, 10)
	backing[0], backing[1] = newItem(1), newItem(2)
	spare := backing[:3]
	spare[2] = newItem(99)

	result := AddToCollectionIfMissing(backing, newItem(7), identifyItem)

	assert.Equal(t, []int64{1, 2, 7}, ids(result))
	assert.Equal(t, int64(99), *spare[2].ID, "spare capacity of the input must stay untouched")
	assert.Len(t, backing, 2)
}

func TestAddToCollectionIfMissing_Idempotent(t *testing.T) {
	cases := []struct {
		name       string
		collection []*item
		selected   *item
	}{
		{name: "nil selected", collection: []*item{newItem(1)}, selected: nil},
		{name: "present", collection: []*item{newItem(1), newItem(2)}, selected: newItem(1)},
		{name: "missing", collection: []*item{newItem(1), newItem(2)}, selected: newItem(3)},
		{name: "empty", collection: nil, selected: newItem(3)},
		{name: "transient", collection: []*item{newItem(1)}, selected: &item{Name: "new"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			once := AddToCollectionIfMissing(tc.collection, tc.selected, identifyItem)
			twice := AddToCollectionIfMissing(once, tc.selected, identifyItem)

			assert.Equal(t, ids(once), ids(twice))
			assert.Len(t, twice, len(once))
		})
	}
}

func TestAddToCollectionIfMissing_PreservesOrder(t *testing.T) {
	collection := []*item{newItem(9), newItem(3), newItem(7), newItem(1)}

	result := AddToCollectionIfMissing(collection, newItem(4), identifyItem)

	if diff := cmp.Diff([]int64{9, 3, 7, 1, 4}, ids(result)); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestAddToCollectionIfMissing_TransientEntities(t *testing.T) {
	a := &item{Name: "a"}
	b := &item{Name: "b"}
	collection := []*item{newItem(1), a}

	// a transient entity only matches itself
	assert.Len(t, AddToCollectionIfMissing(collection, a, identifyItem), 2)

	result := AddToCollectionIfMissing(collection, b, identifyItem)
	require.Len(t, result, 3)
	assert.Same(t, b, result[2])
}

func TestAddToCollectionIfMissing_DuplicateIdentifiersTolerated(t *testing.T) {
	first := newItem(2)
	collection := []*item{newItem(1), first, newItem(2)}

	result := AddToCollectionIfMissing(collection, newItem(2), identifyItem)

	assert.Equal(t, []int64{1, 2, 2}, ids(result))
}

func TestAddToCollectionIfMissing_SkipsNilMembers(t *testing.T) {
	collection := []*item{nil, newItem(1)}

	result := AddToCollectionIfMissing(collection, newItem(1), identifyItem)
	assert.Len(t, result, 2)

	result = AddToCollectionIfMissing(collection, newItem(2), identifyItem)
	assert.Len(t, result, 3)
}

func TestAddAllToCollectionIfMissing(t *testing.T) {
	collection := []*item{newItem(1), newItem(2)}

	result := AddAllToCollectionIfMissing(collection, identifyItem, newItem(2), nil, newItem(3), newItem(3), newItem(4))

	assert.Equal(t, []int64{1, 2, 3, 4}, ids(result))
	assert.Len(t, collection, 2)
}

func TestAddAllToCollectionIfMissing_NothingToAdd(t *testing.T) {
	collection := []*item{newItem(1)}

	result := AddAllToCollectionIfMissing(collection, identifyItem, nil, newItem(1))

	require.Len(t, result, 1)
	assert.Same(t, collection[0], result[0])

	assert.Nil(t, AddAllToCollectionIfMissing[item, int64](nil, identifyItem))
}

func TestReconciler(t *testing.T) {
	r := New(identifyItem)
	collection := []*item{newItem(1)}

	assert.Equal(t, []int64{1, 8}, ids(r.Reconcile(collection, newItem(8))))
	assert.Equal(t, []int64{1, 8, 9}, ids(r.ReconcileAll(collection, newItem(8), newItem(9), newItem(1))))

	assert.True(t, r.Same(newItem(4), newItem(4)))
	assert.False(t, r.Same(newItem(4), newItem(5)))
	assert.False(t, r.Same(&item{}, &item{}))
	assert.True(t, r.Same(nil, nil))
	assert.False(t, r.Same(newItem(1), nil))
}
