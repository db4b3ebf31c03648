package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/j15z/portfolio/content"
	"github.com/j15z/portfolio/studio"
)

// blogCacheControl is advertised on blog list and detail responses:
// a one-hour shared cache with a one-day stale-while-revalidate window.
// Project endpoints stay uncached.
const blogCacheControl = "public, s-maxage=3600, stale-while-revalidate=86400"

type ApiModule struct {
	store *content.Store
}

func NewApiModule(db *gorm.DB) *ApiModule {
	return &ApiModule{store: content.NewStore(db)}
}

func (a *ApiModule) RegisterRoutes(router *gin.Engine) {
	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/blog", a.listPosts)
		apiGroup.GET("/blog/:slug", a.getPost)
		apiGroup.GET("/projects", a.listProjects)
		apiGroup.GET("/projects/:slug", a.getProject)
		apiGroup.POST("/studio/auth", a.authPost)
		apiGroup.GET("/studio/auth", a.authCheck)
	}
}

func (a *ApiModule) listPosts(c *gin.Context) {
	search := c.Query("search")
	category := c.Query("category")
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	var posts []content.PostRecord
	var err error

	// Posts filter by category at the query level; see listProjects for
	// the in-memory half of the split.
	switch {
	case search != "":
		posts, err = a.store.SearchPosts(search, limit)
	case category != "" && category != "all":
		posts, err = a.store.PostsByCategory(category, limit)
	default:
		posts, err = a.store.AllPosts(limit)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch blog posts"})
		return
	}

	categories, err := a.store.AllCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch blog posts"})
		return
	}

	c.Header("Cache-Control", blogCacheControl)
	c.JSON(http.StatusOK, gin.H{
		"posts":      posts,
		"categories": categories,
		"total":      len(posts),
	})
}

func (a *ApiModule) getPost(c *gin.Context) {
	slug := c.Param("slug")

	post, err := a.store.PostBySlug(slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch blog post"})
		return
	}

	relatedPosts, err := a.store.RelatedPosts(post, 3)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch blog post"})
		return
	}

	c.Header("Cache-Control", blogCacheControl)
	c.JSON(http.StatusOK, gin.H{
		"post":         post,
		"relatedPosts": relatedPosts,
	})
}

func (a *ApiModule) listProjects(c *gin.Context) {
	search := c.Query("search")
	category := c.Query("category")
	featured := c.Query("featured")

	var projects []content.ProjectRecord
	var err error

	switch {
	case search != "":
		projects, err = a.store.SearchProjects(search)
	case featured == "true":
		projects, err = a.store.FeaturedProjects()
	default:
		projects, err = a.store.AllProjects()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}

	// Category filtering happens in memory for projects, unlike posts.
	projects = content.FilterProjectsByCategory(projects, category)

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"total":    len(projects),
	})
}

func (a *ApiModule) getProject(c *gin.Context) {
	slug := c.Param("slug")

	project, err := a.store.ProjectBySlug(slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project})
}

func (a *ApiModule) authPost(c *gin.Context) {
	var request struct {
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	switch studio.CheckPassword(request.Password) {
	case studio.PasswordUnconfigured:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Studio password not configured"})
	case studio.PasswordWrong:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
	case studio.PasswordOK:
		if err := studio.Grant(c); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func (a *ApiModule) authCheck(c *gin.Context) {
	if studio.Authenticated(c) {
		c.JSON(http.StatusOK, gin.H{"authenticated": true})
		return
	}
	c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
}
