package mirror_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagekit/voyagekit.go/pkg/mirror"
)

type hotel struct {
	ID   string
	Name string
}

func TestSetAllReplacesWholesale(t *testing.T) {
	s := mirror.New()

	s.SetAll(mirror.Hotels, []hotel{{ID: "h1"}, {ID: "h2"}})
	s.SetAll(mirror.Hotels, []hotel{{ID: "h3"}})

	items := mirror.AllOf[hotel](s, mirror.Hotels)
	require.Len(t, items, 1)
	assert.Equal(t, "h3", items[0].ID)
}

func TestSingleSlotLifecycle(t *testing.T) {
	s := mirror.New()

	s.SetSingle(mirror.Hotels, hotel{ID: "h1", Name: "Taj Palace"})
	got, ok := mirror.SingleOf[hotel](s, mirror.Hotels)
	require.True(t, ok)
	assert.Equal(t, "Taj Palace", got.Name)

	// a detail view closing must clear the slot so the next one never
	// renders the previous record
	s.ClearSingle(mirror.Hotels)
	_, ok = mirror.SingleOf[hotel](s, mirror.Hotels)
	assert.False(t, ok)
	assert.Nil(t, s.Single(mirror.Hotels))
}

func TestTotalPerNamespace(t *testing.T) {
	s := mirror.New()

	s.SetTotal(mirror.Hotels, 42)
	s.SetTotal(mirror.Bookings, 7)

	assert.Equal(t, 42, s.Total(mirror.Hotels))
	assert.Equal(t, 7, s.Total(mirror.Bookings))
	assert.Equal(t, 0, s.Total(mirror.Reviews))
}

func TestNamespacesAreIndependent(t *testing.T) {
	s := mirror.New()

	s.SetAll(mirror.Hotels, []hotel{{ID: "h1"}})
	assert.Nil(t, mirror.AllOf[hotel](s, mirror.Bookings))
	assert.Nil(t, s.All(mirror.Bookings))
}

func TestAllOfWrongTypeIsNil(t *testing.T) {
	s := mirror.New()
	s.SetAll(mirror.Hotels, []hotel{{ID: "h1"}})
	assert.Nil(t, mirror.AllOf[string](s, mirror.Hotels))
}
