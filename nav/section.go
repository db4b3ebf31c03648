package nav

// Scroll-position-driven selection of the "current" in-page section,
// used to highlight the matching navigation entry.

const (
	baseOffset         = 100 // trigger before the section is fully in view
	mobileNavbarHeight = 64
	mobileBreakpoint   = 768
)

// SectionTracker reports which of an ordered list of section ids is
// active for a given scroll position. Handlers feed it every scroll and
// resize observation plus one initial measurement on mount.
type SectionTracker struct {
	ids    []string
	active string
}

func NewSectionTracker(ids []string) *SectionTracker {
	t := &SectionTracker{ids: ids}
	if len(ids) > 0 {
		t.active = ids[0]
	}
	return t
}

// Update recomputes the active section from the vertical scroll offset,
// the viewport width and each section's top offset. Candidates are
// scanned from last to first; the first whose top is at or above the
// threshold wins. When none qualifies the previous active id is kept.
func (t *SectionTracker) Update(scrollY, viewportWidth int, sectionTops map[string]int) string {
	threshold := scrollY + baseOffset
	if viewportWidth < mobileBreakpoint {
		threshold += mobileNavbarHeight
	}

	for i := len(t.ids) - 1; i >= 0; i-- {
		top, ok := sectionTops[t.ids[i]]
		if !ok {
			continue
		}
		if threshold >= top {
			t.active = t.ids[i]
			break
		}
	}
	return t.active
}

// Active returns the current section id.
func (t *SectionTracker) Active() string {
	return t.active
}
