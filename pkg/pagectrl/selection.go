package pagectrl

import "sort"

// Selection backs a multi-select picker dialog. Edits go to a working copy;
// Confirm commits it and Cancel discards it, so closing the dialog without
// confirming leaves the committed set untouched.
type Selection struct {
	committed map[string]struct{}
	working   map[string]struct{}
}

func NewSelection(ids []string) *Selection {
	s := &Selection{
		committed: make(map[string]struct{}, len(ids)),
	}
	for _, id := range ids {
		s.committed[id] = struct{}{}
	}
	s.working = copySet(s.committed)
	return s
}

// Toggle flips membership of id in the working set. There is no maximum
// selection count.
func (s *Selection) Toggle(id string) {
	if _, ok := s.working[id]; ok {
		delete(s.working, id)
	} else {
		s.working[id] = struct{}{}
	}
}

// Has reports membership in the working set, for rendering checkboxes.
func (s *Selection) Has(id string) bool {
	_, ok := s.working[id]
	return ok
}

// Confirm commits the working set and returns the selected ids sorted.
func (s *Selection) Confirm() []string {
	s.committed = copySet(s.working)
	return s.IDs()
}

// Cancel discards in-progress toggles.
func (s *Selection) Cancel() {
	s.working = copySet(s.committed)
}

// IDs returns the committed ids sorted.
func (s *Selection) IDs() []string {
	ids := make([]string, 0, len(s.committed))
	for id := range s.committed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func copySet(src map[string]struct{}) map[string]struct{} {
	dst := make(map[string]struct{}, len(src))
	for k := range src {
		dst[k] = struct{}{}
	}
	return dst
}
