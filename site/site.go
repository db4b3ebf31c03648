package site

import (
	"bytes"
	"html/template"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"

	"github.com/j15z/portfolio/bio"
	"github.com/j15z/portfolio/content"
	"github.com/j15z/portfolio/images"
	"github.com/j15z/portfolio/listview"
	"github.com/j15z/portfolio/models"
	"github.com/j15z/portfolio/nav"
)

// markdown renderer configured with Goldmark and useful extensions
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,     // tables, strikethrough, task lists, autolinks (GFM set)
		extension.Linkify, // linkify raw URLs
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithUnsafe(), // allow raw HTML passthrough in Markdown
	),
)

const pageSize = 6

// homeSections are the in-page anchors the section tracker watches.
var homeSections = []string{"about", "skills", "projects", "blog"}

// NavItem is one entry in a navigation variant. Section is set for
// home items so the active in-page section can be highlighted.
type NavItem struct {
	Label   string
	Href    string
	Section string
}

type SiteModule struct {
	db    *gorm.DB
	store *content.Store
	nav   *nav.Coordinator
}

func NewSiteModule(db *gorm.DB) *SiteModule {
	return &SiteModule{
		db:    db,
		store: content.NewStore(db),
		nav:   nav.NewCoordinator(),
	}
}

// Nav exposes the shared coordinator; the desktop sidebar and mobile
// top bar render from this one instance.
func (s *SiteModule) Nav() *nav.Coordinator {
	return s.nav
}

func (s *SiteModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/", s.home)
	router.GET("/blog", s.blogIndex)
	router.GET("/blog/:slug", s.blogPost)
	router.GET("/portfolio", s.portfolioIndex)
	router.GET("/portfolio/:slug", s.portfolioProject)
	router.GET("/sitemap.xml", s.sitemap)
}

// navItemsFor picks the item set the current sidebar state shows. Both
// navigation variants call this with the same coordinator state.
func navItemsFor(state nav.SidebarState) []NavItem {
	if state == nav.SidebarBlog {
		return []NavItem{
			{Label: "Home", Href: "/"},
			{Label: "All Posts", Href: "/blog"},
			{Label: "Portfolio", Href: "/portfolio"},
		}
	}
	return []NavItem{
		{Label: "About", Href: "/#about", Section: "about"},
		{Label: "Skills", Href: "/#skills", Section: "skills"},
		{Label: "Projects", Href: "/#projects", Section: "projects"},
		{Label: "Blog", Href: "/#blog", Section: "blog"},
	}
}

// navData is the shared template payload for both navigation variants.
func (s *SiteModule) navData(c *gin.Context) gin.H {
	s.nav.SetRoute(c.Request.URL.Path)
	sidebar := s.nav.Sidebar()
	return gin.H{
		"currentPage":  s.nav.CurrentPage(),
		"sidebarState": sidebar,
		"navItems":     navItemsFor(sidebar),
	}
}

func (s *SiteModule) home(c *gin.Context) {
	data := s.navData(c)
	tracker := nav.NewSectionTracker(homeSections)

	projects, projectsErr := s.store.FeaturedProjects()

	// Homepage preview: latest three posts, pagination suppressed.
	posts := listview.New(listview.Config[content.PostRecord]{
		Fetch:    func() ([]content.PostRecord, error) { return s.store.AllPosts(0) },
		Matches:  content.MatchPost,
		PageSize: pageSize,
		MaxItems: 3,
	}).View()

	data["bio"] = bio.Current()
	data["sections"] = homeSections
	data["activeSection"] = tracker.Active()
	data["projects"] = projects
	data["projectsError"] = projectsErr != nil
	data["posts"] = posts.Items
	data["postsError"] = posts.State == listview.Errored

	c.HTML(http.StatusOK, "site_home.html", data)
}

func (s *SiteModule) blogIndex(c *gin.Context) {
	data := s.navData(c)

	controller := listview.New(listview.Config[content.PostRecord]{
		Fetch:      func() ([]content.PostRecord, error) { return s.store.AllPosts(0) },
		Matches:    content.MatchPost,
		Categories: content.PostCategoryTitles,
		PageSize:   pageSize,
	})
	applyQuery(controller, c)
	view := controller.View()

	categories, _ := s.store.AllCategories()

	data["view"] = view
	data["categories"] = categories
	data["retryURL"] = c.Request.URL.String()
	c.HTML(statusFor(view.State), "site_blog_index.html", data)
}

func (s *SiteModule) blogPost(c *gin.Context) {
	data := s.navData(c)
	slug := c.Param("slug")

	post, err := s.store.PostBySlug(slug)
	if err != nil {
		if err == content.ErrNotFound {
			c.HTML(http.StatusNotFound, "site_not_found.html", data)
			return
		}
		data["error"] = "Failed to load post"
		c.HTML(http.StatusInternalServerError, "site_error.html", data)
		return
	}

	relatedPosts, _ := s.store.RelatedPosts(post, 3)

	data["post"] = post
	data["image"] = mainImage(post.MainImageURL, post.ID, images.Blog)
	data["bodyHTML"] = template.HTML(renderMarkdown(post.Body))
	data["relatedPosts"] = relatedPosts
	c.HTML(http.StatusOK, "site_blog_post.html", data)
}

func (s *SiteModule) portfolioIndex(c *gin.Context) {
	data := s.navData(c)

	controller := listview.New(listview.Config[content.ProjectRecord]{
		Fetch:      func() ([]content.ProjectRecord, error) { return s.store.AllProjects() },
		Matches:    content.MatchProject,
		Categories: content.ProjectCategoryTitles,
		PageSize:   pageSize,
	})
	applyQuery(controller, c)
	view := controller.View()

	categories, _ := s.store.AllCategories()

	data["view"] = view
	data["categories"] = categories
	data["retryURL"] = c.Request.URL.String()
	c.HTML(statusFor(view.State), "site_portfolio_index.html", data)
}

func (s *SiteModule) portfolioProject(c *gin.Context) {
	data := s.navData(c)
	slug := c.Param("slug")

	project, err := s.store.ProjectBySlug(slug)
	if err != nil {
		if err == content.ErrNotFound {
			c.HTML(http.StatusNotFound, "site_not_found.html", data)
			return
		}
		data["error"] = "Failed to load project"
		c.HTML(http.StatusInternalServerError, "site_error.html", data)
		return
	}

	data["project"] = project
	data["image"] = mainImage(project.MainImageURL, project.ID, images.Portfolio)
	data["bodyHTML"] = template.HTML(renderMarkdown(project.Body))
	c.HTML(http.StatusOK, "site_portfolio_post.html", data)
}

// applyQuery threads ?search, ?category and ?page into a controller.
// The page is set last: search and category changes reset it to 1.
func applyQuery[T any](controller *listview.Controller[T], c *gin.Context) {
	if search := c.Query("search"); search != "" {
		controller.SetSearch(search)
	}
	if category := c.Query("category"); category != "" && category != "all" {
		controller.SetCategory(category)
	}
	if raw := c.Query("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			controller.SetPage(page)
		}
	}
}

func statusFor(state listview.State) int {
	if state == listview.Errored {
		return http.StatusInternalServerError
	}
	return http.StatusOK
}

func mainImage(url, seed string, bucket images.Bucket) string {
	if url != "" {
		return url
	}
	return images.Pick(seed, bucket)
}

func renderMarkdown(body string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		// On render failure fall back to the raw content so the page
		// still shows something.
		return body
	}
	return buf.String()
}

func (s *SiteModule) sitemap(c *gin.Context) {
	domain := os.Getenv("DOMAIN")
	if domain == "" {
		domain = "http://localhost:8080"
	}
	domain = strings.TrimSuffix(domain, "/")

	var sitemap strings.Builder
	sitemap.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sitemap.WriteString("\n")
	sitemap.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	sitemap.WriteString("\n")

	writeURL := func(loc, changefreq, priority string, lastmod *time.Time) {
		sitemap.WriteString("  <url>\n")
		sitemap.WriteString("    <loc>" + loc + "</loc>\n")
		if lastmod != nil {
			sitemap.WriteString("    <lastmod>" + lastmod.Format(time.RFC3339) + "</lastmod>\n")
		}
		sitemap.WriteString("    <changefreq>" + changefreq + "</changefreq>\n")
		sitemap.WriteString("    <priority>" + priority + "</priority>\n")
		sitemap.WriteString("  </url>\n")
	}

	writeURL(domain+"/", "weekly", "1.0", nil)
	writeURL(domain+"/blog", "daily", "0.8", nil)
	writeURL(domain+"/portfolio", "weekly", "0.8", nil)

	var posts []models.Post
	s.db.Where("draft = ? AND slug <> ''", false).Find(&posts)
	for _, post := range posts {
		updated := post.UpdatedAt
		writeURL(domain+"/blog/"+post.Slug, "monthly", "0.6", &updated)
	}

	var projects []models.Project
	s.db.Where("draft = ? AND slug <> ''", false).Find(&projects)
	for _, project := range projects {
		updated := project.UpdatedAt
		writeURL(domain+"/portfolio/"+project.Slug, "monthly", "0.5", &updated)
	}

	sitemap.WriteString("</urlset>\n")

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, sitemap.String())
}
