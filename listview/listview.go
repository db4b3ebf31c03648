package listview

import (
	"strings"
)

// State is the lifecycle of a content collection.
type State int

const (
	Idle State = iota
	Loading
	Ready
	Errored
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Errored:
		return "errored"
	}
	return "unknown"
}

// Matcher reports whether an item matches a free-text search term.
type Matcher[T any] func(item T, search string) bool

// Config describes a controller. Matches and Categories are required for
// filtering to do anything; PageSize defaults to 6.
type Config[T any] struct {
	Initial    []T
	Fetch      func() ([]T, error)
	Matches    Matcher[T]
	Categories func(item T) []string
	PageSize   int
	MaxItems   int // homepage preview: truncate and suppress pagination
}

// Controller manages loading, search, single-category filtering and
// pagination for one content collection. The blog and portfolio listings
// each own an instance. Not safe for concurrent use; each request builds
// its own.
type Controller[T any] struct {
	cfg      Config[T]
	items    []T
	state    State
	errMsg   string
	search   string
	category string
	page     int
}

// New builds a controller. A non-empty initial collection starts Ready;
// otherwise the fetch runs immediately.
func New[T any](cfg Config[T]) *Controller[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 6
	}

	c := &Controller[T]{cfg: cfg, page: 1, state: Idle}
	if len(cfg.Initial) > 0 {
		c.items = cfg.Initial
		c.state = Ready
		return c
	}
	if cfg.Fetch != nil {
		c.Load()
	}
	return c
}

// Load fetches the collection. A load already in flight makes this a
// no-op, which also covers rapid re-entry. Failure records a
// user-displayable message; Retry re-invokes it.
func (c *Controller[T]) Load() {
	if c.state == Loading || c.cfg.Fetch == nil {
		return
	}

	c.state = Loading
	c.errMsg = ""

	items, err := c.cfg.Fetch()
	if err != nil {
		c.items = nil
		c.state = Errored
		c.errMsg = err.Error()
		return
	}

	c.items = items
	c.state = Ready
}

// Retry re-runs a failed load.
func (c *Controller[T]) Retry() {
	if c.state == Errored {
		c.state = Idle
	}
	c.Load()
}

func (c *Controller[T]) State() State  { return c.state }
func (c *Controller[T]) Error() string { return c.errMsg }

// SetSearch updates the search term and resets to the first page.
func (c *Controller[T]) SetSearch(text string) {
	c.search = text
	c.page = 1
}

// SetCategory selects a category title (empty means all) and resets to
// the first page.
func (c *Controller[T]) SetCategory(title string) {
	c.category = title
	c.page = 1
}

// SetPage moves to a page. Out-of-range values are clamped when the view
// is derived, so no invalid page is ever rendered.
func (c *Controller[T]) SetPage(page int) {
	if page >= 1 {
		c.page = page
	}
}

// NextPage advances one page; a no-op on the last page.
func (c *Controller[T]) NextPage() {
	if c.page < c.totalPages() {
		c.page++
	}
}

// PrevPage goes back one page; a no-op on the first page.
func (c *Controller[T]) PrevPage() {
	if c.page > 1 {
		c.page--
	}
}

func (c *Controller[T]) filtered() []T {
	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if c.search != "" && c.cfg.Matches != nil && !c.cfg.Matches(item, c.search) {
			continue
		}
		if c.category != "" && !c.matchesCategory(item) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (c *Controller[T]) matchesCategory(item T) bool {
	if c.cfg.Categories == nil {
		return false
	}
	for _, title := range c.cfg.Categories(item) {
		if title == c.category {
			return true
		}
	}
	return false
}

func (c *Controller[T]) totalPages() int {
	n := len(c.filtered())
	return (n + c.cfg.PageSize - 1) / c.cfg.PageSize
}

// PageLink is one entry in the pagination control: either a page number
// or an ellipsis marker collapsing a run of hidden pages.
type PageLink struct {
	Page     int
	Ellipsis bool
	Active   bool
}

// View is the derived, render-ready slice of the collection.
type View[T any] struct {
	State          State
	Error          string
	Items          []T
	FilteredTotal  int
	Page           int
	TotalPages     int
	ShowPagination bool
	PageLinks      []PageLink
	Search         string
	Category       string
}

// View derives the current filtered, paginated window.
func (c *Controller[T]) View() View[T] {
	filtered := c.filtered()
	totalPages := (len(filtered) + c.cfg.PageSize - 1) / c.cfg.PageSize

	page := c.page
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * c.cfg.PageSize
	end := start + c.cfg.PageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}
	items := filtered[start:end]

	showPagination := c.state == Ready && totalPages > 1
	if c.cfg.MaxItems > 0 {
		if len(items) > c.cfg.MaxItems {
			items = items[:c.cfg.MaxItems]
		}
		showPagination = false
	}

	v := View[T]{
		State:          c.state,
		Error:          c.errMsg,
		Items:          items,
		FilteredTotal:  len(filtered),
		Page:           page,
		TotalPages:     totalPages,
		ShowPagination: showPagination,
		Search:         c.search,
		Category:       c.category,
	}
	if showPagination {
		v.PageLinks = pageLinks(page, totalPages)
	}
	return v
}

// pageLinks shows the first page, the last page, the current page and
// its two neighbours; each hidden run collapses into one ellipsis.
func pageLinks(current, total int) []PageLink {
	var links []PageLink
	for page := 1; page <= total; page++ {
		show := page == 1 || page == total ||
			(page >= current-1 && page <= current+1)

		if !show {
			if page == current-2 || page == current+2 {
				links = append(links, PageLink{Ellipsis: true})
			}
			continue
		}

		links = append(links, PageLink{Page: page, Active: page == current})
	}
	return links
}

// MatchFields is the shared search predicate: a case-insensitive
// substring test across the given fields. An empty search matches
// everything.
func MatchFields(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, field := range fields {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
