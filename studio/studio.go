package studio

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/j15z/portfolio/cache"
	"github.com/j15z/portfolio/content"
	"github.com/j15z/portfolio/models"
)

// StudioModule is the password-gated authoring area. Everything under
// /studio except the root prompt and the login route requires a session.
type StudioModule struct {
	db *gorm.DB
}

func NewStudioModule(db *gorm.DB) *StudioModule {
	return &StudioModule{db: db}
}

func (s *StudioModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/studio", s.root)
	router.POST("/studio/login", s.loginPost)
	router.GET("/studio/logout", s.logout)

	studioGroup := router.Group("/studio")
	studioGroup.Use(s.requireAuth)
	{
		studioGroup.GET("/posts", s.listPosts)
		studioGroup.GET("/post/new", s.newPost)
		studioGroup.POST("/post/save", s.savePost)
		studioGroup.GET("/post/:id", s.editPost)
		studioGroup.POST("/post/:id", s.updatePost)
		studioGroup.POST("/post/:id/autosave", s.autoSavePost)
		studioGroup.DELETE("/post/:id", s.deletePost)

		studioGroup.GET("/projects", s.listProjects)
		studioGroup.GET("/project/new", s.newProject)
		studioGroup.POST("/project/save", s.saveProject)
		studioGroup.GET("/project/:id", s.editProject)
		studioGroup.POST("/project/:id", s.updateProject)
		studioGroup.DELETE("/project/:id", s.deleteProject)
	}
}

// requireAuth sends unauthenticated requests back to the studio root,
// which renders the password prompt.
func (s *StudioModule) requireAuth(c *gin.Context) {
	if !Authenticated(c) {
		c.Redirect(http.StatusFound, "/studio")
		c.Abort()
		return
	}
	c.Next()
}

func (s *StudioModule) root(c *gin.Context) {
	if !Authenticated(c) {
		c.HTML(http.StatusOK, "studio_login.html", gin.H{})
		return
	}

	var postCount, projectCount int64
	s.db.Model(&models.Post{}).Count(&postCount)
	s.db.Model(&models.Project{}).Count(&projectCount)

	c.HTML(http.StatusOK, "studio_index.html", gin.H{
		"postCount":    postCount,
		"projectCount": projectCount,
	})
}

func (s *StudioModule) loginPost(c *gin.Context) {
	password := c.PostForm("password")

	switch CheckPassword(password) {
	case PasswordUnconfigured:
		c.HTML(http.StatusInternalServerError, "studio_login.html", gin.H{
			"error": "Studio password not configured",
		})
	case PasswordWrong:
		c.HTML(http.StatusUnauthorized, "studio_login.html", gin.H{
			"error": "Invalid password",
		})
	case PasswordOK:
		if err := Grant(c); err != nil {
			c.HTML(http.StatusInternalServerError, "studio_login.html", gin.H{
				"error": "Failed to create session",
			})
			return
		}
		c.Redirect(http.StatusFound, "/studio")
	}
}

func (s *StudioModule) logout(c *gin.Context) {
	Revoke(c)
	c.Redirect(http.StatusFound, "/studio")
}

func (s *StudioModule) listPosts(c *gin.Context) {
	var posts []models.Post
	if err := s.db.Order("created_at DESC").Find(&posts).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "studio_error.html", gin.H{
			"error": "Failed to load posts",
		})
		return
	}

	c.HTML(http.StatusOK, "studio_list_posts.html", gin.H{"posts": posts})
}

func (s *StudioModule) newPost(c *gin.Context) {
	c.HTML(http.StatusOK, "studio_edit_post.html", gin.H{"post": models.Post{}})
}

func (s *StudioModule) savePost(c *gin.Context) {
	title := c.PostForm("title")
	excerpt := c.PostForm("excerpt")
	body := c.PostForm("body")
	categories := c.PostForm("categories")
	action := c.PostForm("action")

	post := models.Post{
		ID:          uuid.NewString(),
		Title:       title,
		Slug:        generateSlug(title),
		Excerpt:     excerpt,
		Body:        body,
		ReadingTime: content.ReadingTime(body),
		Draft:       action == "save_draft",
		PublishedAt: time.Now(),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.db.Create(&post).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "studio_error.html", gin.H{
			"error": "Failed to create post",
		})
		return
	}

	if err := s.assignCategories(&models.PostCategory{}, "post_id", post.ID, categories); err != nil {
		c.HTML(http.StatusInternalServerError, "studio_error.html", gin.H{
			"error": "Failed to process categories: " + err.Error(),
		})
		return
	}

	cache.ClearPost(post.Slug)
	c.Redirect(http.StatusFound, "/studio/posts")
}

func (s *StudioModule) editPost(c *gin.Context) {
	postID := c.Param("id")

	var post models.Post
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		c.HTML(http.StatusNotFound, "studio_error.html", gin.H{
			"error": "Post not found",
		})
		return
	}

	c.HTML(http.StatusOK, "studio_edit_post.html", gin.H{
		"post":       post,
		"categories": s.categoryTitles(&models.PostCategory{}, "post_id", post.ID),
	})
}

func (s *StudioModule) updatePost(c *gin.Context) {
	postID := c.Param("id")

	var post models.Post
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		c.HTML(http.StatusNotFound, "studio_error.html", gin.H{
			"error": "Post not found",
		})
		return
	}

	oldSlug := post.Slug

	post.Title = c.PostForm("title")
	post.Excerpt = c.PostForm("excerpt")
	post.Body = c.PostForm("body")
	post.Slug = generateSlug(post.Title)
	post.ReadingTime = content.ReadingTime(post.Body)
	post.UpdatedAt = time.Now()

	switch c.PostForm("action") {
	case "publish":
		post.Draft = false
		post.PublishedAt = time.Now()
	case "unpublish":
		post.Draft = true
	case "save", "update":
	}

	if err := s.db.Save(&post).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "studio_error.html", gin.H{
			"error": "Failed to update post",
		})
		return
	}

	if categories := c.PostForm("categories"); categories != "" {
		if err := s.assignCategories(&models.PostCategory{}, "post_id", post.ID, categories); err != nil {
			c.HTML(http.StatusInternalServerError, "studio_error.html", gin.H{
				"error": "Failed to process categories: " + err.Error(),
			})
			return
		}
	}

	cache.ClearPost(oldSlug)
	cache.ClearPost(post.Slug)
	c.Redirect(http.StatusFound, "/studio/posts")
}

// autoSavePost saves draft content without a full form round trip.
func (s *StudioModule) autoSavePost(c *gin.Context) {
	postID := c.Param("id")

	var post models.Post
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if !post.Draft {
		c.JSON(http.StatusForbidden, gin.H{"error": "Auto-save only applies to drafts"})
		return
	}

	var request struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	updates := map[string]interface{}{
		"body":         request.Body,
		"reading_time": content.ReadingTime(request.Body),
		"updated_at":   time.Now(),
	}
	if request.Title != "" {
		updates["title"] = request.Title
		updates["slug"] = generateSlug(request.Title)
	}

	if err := s.db.Model(&post).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Auto-save failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"saved_at": time.Now().Format("15:04:05"),
	})
}

func (s *StudioModule) deletePost(c *gin.Context) {
	postID := c.Param("id")

	var post models.Post
	if err := s.db.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if err := s.db.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	s.db.Where("post_id = ?", post.ID).Delete(&models.PostCategory{})
	cache.ClearPost(post.Slug)

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func (s *StudioModule) listProjects(c *gin.Context) {
	var projects []models.Project
	if err := s.db.Order("created_at DESC").Find(&projects).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "studio_error.html", gin.H{
			"error": "Failed to load projects",
		})
		return
	}

	c.HTML(http.StatusOK, "studio_list_projects.html", gin.H{"projects": projects})
}

func (s *StudioModule) newProject(c *gin.Context) {
	c.HTML(http.StatusOK, "studio_edit_project.html", gin.H{"project": models.Project{}})
}

func (s *StudioModule) saveProject(c *gin.Context) {
	title := c.PostForm("title")
	action := c.PostForm("action")

	project := models.Project{
		ID:           uuid.NewString(),
		Title:        title,
		Slug:         generateSlug(title),
		Description:  c.PostForm("description"),
		Body:         c.PostForm("body"),
		Technologies: c.PostForm("technologies"),
		GithubURL:    c.PostForm("github_url"),
		LiveURL:      c.PostForm("live_url"),
		LearnMoreURL: c.PostForm("learn_more_url"),
		Featured:     c.PostForm("featured") == "1",
		Draft:        action == "save_draft",
		PublishedAt:  time.Now(),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.db.Create(&project).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "studio_error.html", gin.H{
			"error": "Failed to create project",
		})
		return
	}

	if err := s.assignCategories(&models.ProjectCategory{}, "project_id", project.ID, c.PostForm("categories")); err != nil {
		c.HTML(http.StatusInternalServerError, "studio_error.html", gin.H{
			"error": "Failed to process categories: " + err.Error(),
		})
		return
	}

	c.Redirect(http.StatusFound, "/studio/projects")
}

func (s *StudioModule) editProject(c *gin.Context) {
	projectID := c.Param("id")

	var project models.Project
	if err := s.db.First(&project, "id = ?", projectID).Error; err != nil {
		c.HTML(http.StatusNotFound, "studio_error.html", gin.H{
			"error": "Project not found",
		})
		return
	}

	c.HTML(http.StatusOK, "studio_edit_project.html", gin.H{
		"project":    project,
		"categories": s.categoryTitles(&models.ProjectCategory{}, "project_id", project.ID),
	})
}

func (s *StudioModule) updateProject(c *gin.Context) {
	projectID := c.Param("id")

	var project models.Project
	if err := s.db.First(&project, "id = ?", projectID).Error; err != nil {
		c.HTML(http.StatusNotFound, "studio_error.html", gin.H{
			"error": "Project not found",
		})
		return
	}

	project.Title = c.PostForm("title")
	project.Slug = generateSlug(project.Title)
	project.Description = c.PostForm("description")
	project.Body = c.PostForm("body")
	project.Technologies = c.PostForm("technologies")
	project.GithubURL = c.PostForm("github_url")
	project.LiveURL = c.PostForm("live_url")
	project.LearnMoreURL = c.PostForm("learn_more_url")
	project.Featured = c.PostForm("featured") == "1"
	project.UpdatedAt = time.Now()

	switch c.PostForm("action") {
	case "publish":
		project.Draft = false
		project.PublishedAt = time.Now()
	case "unpublish":
		project.Draft = true
	case "save", "update":
	}

	if err := s.db.Save(&project).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "studio_error.html", gin.H{
			"error": "Failed to update project",
		})
		return
	}

	if categories := c.PostForm("categories"); categories != "" {
		if err := s.assignCategories(&models.ProjectCategory{}, "project_id", project.ID, categories); err != nil {
			c.HTML(http.StatusInternalServerError, "studio_error.html", gin.H{
				"error": "Failed to process categories: " + err.Error(),
			})
			return
		}
	}

	c.Redirect(http.StatusFound, "/studio/projects")
}

func (s *StudioModule) deleteProject(c *gin.Context) {
	projectID := c.Param("id")

	result := s.db.Where("id = ?", projectID).Delete(&models.Project{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	s.db.Where("project_id = ?", projectID).Delete(&models.ProjectCategory{})

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

// assignCategories replaces an item's category links with the
// comma-separated titles given, creating categories that don't exist.
func (s *StudioModule) assignCategories(join interface{}, column, itemID, titles string) error {
	if err := s.db.Where(column+" = ?", itemID).Delete(join).Error; err != nil {
		return err
	}

	for _, title := range strings.Split(titles, ",") {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}

		var category models.Category
		err := s.db.Where("title = ?", title).First(&category).Error
		if err == gorm.ErrRecordNotFound {
			category = models.Category{ID: uuid.NewString(), Title: title}
			if err := s.db.Create(&category).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		var link interface{}
		switch column {
		case "post_id":
			link = &models.PostCategory{PostID: itemID, CategoryID: category.ID}
		default:
			link = &models.ProjectCategory{ProjectID: itemID, CategoryID: category.ID}
		}
		if err := s.db.Create(link).Error; err != nil {
			return err
		}
	}

	return nil
}

func (s *StudioModule) categoryTitles(join interface{}, column, itemID string) string {
	var titles []string
	s.db.Table("categories").
		Select("categories.title").
		Joins("INNER JOIN "+joinTable(column)+" ON categories.id = "+joinTable(column)+".category_id").
		Where(joinTable(column)+"."+column+" = ?", itemID).
		Pluck("categories.title", &titles)
	return strings.Join(titles, ", ")
}

func joinTable(column string) string {
	if column == "post_id" {
		return "post_categories"
	}
	return "project_categories"
}

func generateSlug(title string) string {
	accentMap := map[rune]rune{
		'á': 'a', 'à': 'a', 'ã': 'a', 'â': 'a', 'ä': 'a',
		'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
		'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i',
		'ó': 'o', 'ò': 'o', 'õ': 'o', 'ô': 'o', 'ö': 'o',
		'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u',
		'ç': 'c', 'ñ': 'n', 'ý': 'y',
	}

	slug := strings.ToLower(title)
	slug = strings.Map(func(r rune) rune {
		if replacement, exists := accentMap[r]; exists {
			return replacement
		}
		return r
	}, slug)

	slug = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		if r == ' ' {
			return '-'
		}
		return -1
	}, slug)

	slug = strings.Trim(slug, "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}

	return slug
}
