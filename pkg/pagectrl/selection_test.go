package pagectrl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voyagekit/voyagekit.go/pkg/pagectrl"
)

func TestToggleFlipsMembership(t *testing.T) {
	s := pagectrl.NewSelection(nil)

	s.Toggle("h1")
	assert.True(t, s.Has("h1"))

	s.Toggle("h1")
	assert.False(t, s.Has("h1"))
}

func TestDoubleToggleIsIdempotent(t *testing.T) {
	s := pagectrl.NewSelection([]string{"h1", "h2"})

	s.Toggle("h1")
	s.Toggle("h1")

	assert.Equal(t, []string{"h1", "h2"}, s.Confirm())
}

func TestCancelDiscardsWorkingChanges(t *testing.T) {
	s := pagectrl.NewSelection([]string{"h1"})

	s.Toggle("h2")
	s.Toggle("h1")
	s.Cancel()

	assert.Equal(t, []string{"h1"}, s.IDs())
	assert.True(t, s.Has("h1"))
	assert.False(t, s.Has("h2"))
}

func TestConfirmCommits(t *testing.T) {
	s := pagectrl.NewSelection([]string{"h1"})

	s.Toggle("h3")
	s.Toggle("h2")
	got := s.Confirm()

	assert.Equal(t, []string{"h1", "h2", "h3"}, got)
	assert.Equal(t, got, s.IDs())
}

func TestSelectionHoldsUniqueIDs(t *testing.T) {
	s := pagectrl.NewSelection([]string{"h1", "h1", "h1"})
	assert.Equal(t, []string{"h1"}, s.IDs())
}
