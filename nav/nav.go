package nav

import (
	"strings"
	"sync"
	"time"
)

// PageType is the logical page the visitor is on, derived from the route.
type PageType string

const (
	PageHome     PageType = "home"
	PageBlog     PageType = "blog"
	PageBlogPost PageType = "blog-post"
	PageOther    PageType = "other"
)

// SidebarState selects which navigation item set is shown.
type SidebarState string

const (
	SidebarHome          SidebarState = "home"
	SidebarBlog          SidebarState = "blog"
	SidebarTransitioning SidebarState = "transitioning"
)

// TransitionDuration matches the cross-fade animation length.
const TransitionDuration = 300 * time.Millisecond

// PageTypeFor maps a route path to its page type.
func PageTypeFor(path string) PageType {
	switch {
	case path == "/":
		return PageHome
	case path == "/blog":
		return PageBlog
	case strings.HasPrefix(path, "/blog/"):
		return PageBlogPost
	}
	return PageOther
}

func sidebarFor(page PageType) SidebarState {
	if page == PageBlog || page == PageBlogPost {
		return SidebarBlog
	}
	return SidebarHome
}

// Coordinator is the single source of truth for the current page and
// sidebar state. The desktop sidebar and the mobile top bar both read
// the same instance so they cannot desynchronize.
type Coordinator struct {
	mu            sync.Mutex
	now           func() time.Time
	currentPage   PageType
	sidebar       SidebarState
	transitioning bool
	target        PageType
	settleAt      time.Time
}

func NewCoordinator() *Coordinator {
	return &Coordinator{
		now:         time.Now,
		currentPage: PageHome,
		sidebar:     SidebarHome,
	}
}

// NewCoordinatorWithClock allows tests to control the transition window.
func NewCoordinatorWithClock(now func() time.Time) *Coordinator {
	c := NewCoordinator()
	c.now = now
	return c
}

// settleLocked closes an elapsed transition window. Callers hold mu.
func (c *Coordinator) settleLocked() {
	if c.transitioning && !c.now().Before(c.settleAt) {
		c.currentPage = c.target
		c.sidebar = sidebarFor(c.target)
		c.transitioning = false
	}
}

// SetRoute records a route change. While a transition window is open,
// route-driven updates are suppressed; the window's target wins.
func (c *Coordinator) SetRoute(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.settleLocked()
	if c.transitioning {
		return
	}

	page := PageTypeFor(path)
	if page != c.currentPage {
		c.currentPage = page
		if page != PageOther {
			c.sidebar = sidebarFor(page)
		}
	}
}

// StartTransition forces the transitioning sidebar state for one
// animation window before settling into the target's state.
func (c *Coordinator) StartTransition(target PageType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.transitioning = true
	c.target = target
	c.sidebar = SidebarTransitioning
	c.settleAt = c.now().Add(TransitionDuration)
}

// EndTransition settles the window immediately.
func (c *Coordinator) EndTransition() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.transitioning {
		c.currentPage = c.target
		c.sidebar = sidebarFor(c.target)
		c.transitioning = false
	}
}

// CurrentPage returns the logical page, settling any elapsed window.
func (c *Coordinator) CurrentPage() PageType {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.settleLocked()
	return c.currentPage
}

// Sidebar returns the navigation variant to render, settling any
// elapsed window.
func (c *Coordinator) Sidebar() SidebarState {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.settleLocked()
	return c.sidebar
}

// IsTransitioning reports whether a transition window is open.
func (c *Coordinator) IsTransitioning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.settleLocked()
	return c.transitioning
}
