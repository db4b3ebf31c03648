package content

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/j15z/portfolio/models"
)

func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	db.AutoMigrate(&models.Author{}, &models.Category{}, &models.Post{},
		&models.Project{}, &models.PostCategory{}, &models.ProjectCategory{})
	return db
}

func createTestAuthor(db *gorm.DB) *models.Author {
	author := &models.Author{
		ID:   uuid.NewString(),
		Name: "Test Author",
	}
	db.Create(author)
	return author
}

func createTestCategory(db *gorm.DB, title string) *models.Category {
	category := &models.Category{
		ID:    uuid.NewString(),
		Title: title,
	}
	db.Create(category)
	return category
}

func createTestPost(db *gorm.DB, title, slug string, draft bool, publishedAt time.Time) *models.Post {
	post := &models.Post{
		ID:          uuid.NewString(),
		Title:       title,
		Slug:        slug,
		Excerpt:     "An excerpt about " + title,
		Body:        "Body of " + title,
		PublishedAt: publishedAt,
		Draft:       draft,
	}
	db.Create(post)
	return post
}

func createTestProject(db *gorm.DB, title, slug string, featured bool, publishedAt time.Time) *models.Project {
	project := &models.Project{
		ID:           uuid.NewString(),
		Title:        title,
		Slug:         slug,
		Description:  "Description of " + title,
		Technologies: "Go, SQLite",
		PublishedAt:  publishedAt,
		Featured:     featured,
	}
	db.Create(project)
	return project
}

func attachPostCategory(db *gorm.DB, post *models.Post, category *models.Category) {
	db.Create(&models.PostCategory{PostID: post.ID, CategoryID: category.ID})
}

func attachProjectCategory(db *gorm.DB, project *models.Project, category *models.Category) {
	db.Create(&models.ProjectCategory{ProjectID: project.ID, CategoryID: category.ID})
}

func TestAllPosts_ExcludesDraftsAndOrders(t *testing.T) {
	db := setupTestDB()
	store := NewStore(db)

	createTestPost(db, "Older", "older", false, time.Now().Add(-48*time.Hour))
	createTestPost(db, "Newer", "newer", false, time.Now())
	createTestPost(db, "Hidden", "hidden", true, time.Now())

	posts, err := store.AllPosts(0)
	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, "Newer", posts[0].Title)
	assert.Equal(t, "Older", posts[1].Title)
}

func TestAllPosts_Limit(t *testing.T) {
	db := setupTestDB()
	store := NewStore(db)

	for i := 0; i < 5; i++ {
		createTestPost(db, fmt.Sprintf("Post %d", i), fmt.Sprintf("post-%d", i),
			false, time.Now().Add(-time.Duration(i)*time.Hour))
	}

	posts, err := store.AllPosts(3)
	assert.NoError(t, err)
	assert.Len(t, posts, 3)
}

func TestSearchPosts_MatchesTitleExcerptBody(t *testing.T) {
	db := setupTestDB()
	store := NewStore(db)

	createTestPost(db, "Concurrency Patterns", "concurrency", false, time.Now())
	body := createTestPost(db, "Other", "other", false, time.Now())
	body.Body = "all about goroutines and channels"
	db.Save(body)
	createTestPost(db, "Unrelated", "unrelated", false, time.Now())

	byTitle, err := store.SearchPosts("Concurrency", 0)
	assert.NoError(t, err)
	assert.Len(t, byTitle, 1)
	assert.Equal(t, "concurrency", byTitle[0].Slug)

	// the term is wrapped in wildcards, so substrings match too
	byBody, err := store.SearchPosts("goroutine", 0)
	assert.NoError(t, err)
	assert.Len(t, byBody, 1)
	assert.Equal(t, "other", byBody[0].Slug)
}

func TestSearchPosts_NoMatches(t *testing.T) {
	db := setupTestDB()
	store := NewStore(db)

	createTestPost(db, "Something", "something", false, time.Now())

	posts, err := store.SearchPosts("zzzzz", 0)
	assert.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostsByCategory(t *testing.T) {
	db := setupTestDB()
	store := NewStore(db)

	golang := createTestCategory(db, "Go")
	design := createTestCategory(db, "Design")

	tagged := createTestPost(db, "Tagged", "tagged", false, time.Now())
	attachPostCategory(db, tagged, golang)
	other := createTestPost(db, "Other", "other", false, time.Now())
	attachPostCategory(db, other, design)
	createTestPost(db, "Untagged", "untagged", false, time.Now())

	posts, err := store.PostsByCategory("Go", 0)
	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, "tagged", posts[0].Slug)
}

func TestPostsByCategory_ExcludesDrafts(t *testing.T) {
	db := setupTestDB()
	store := NewStore(db)

	golang := createTestCategory(db, "Go")
	draft := createTestPost(db, "Draft", "draft", true, time.Now())
	attachPostCategory(db, draft, golang)

	posts, err := store.PostsByCategory("Go", 0)
	assert.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostBySlug(t *testing.T) {
	db := setupTestDB()
	store := NewStore(db)

	author := createTestAuthor(db)
	golang := createTestCategory(db, "Go")
	post := createTestPost(db, "Found", "found", false, time.Now())
	post.AuthorID = author.ID
	db.Save(post)
	attachPostCategory(db, post, golang)

	record, err := store.PostBySlug("found")
	assert.NoError(t, err)
	assert.Equal(t, "Found", record.Title)
	assert.Len(t, record.Categories, 1)
	assert.Equal(t, "Go", record.Categories[0].Title)
	assert.NotNil(t, record.Author)
	assert.Equal(t, "Test Author", record.Author.Name)
}

func TestPostBySlug_NotFound(t *testing.T) {
	db := setupTestDB()
	store := NewStore(db)

	record, err := store.PostBySlug("missing")
	assert.Nil(t, record)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostBySlug_DraftIsNotFound(t *testing.T) {
	db := setupTestDB()
	store := NewStore(db)

	createTestPost(db, "Draft", "draft", true, time.Now())

	_, err := store.PostBySlug("draft")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRelatedPosts(t *testing.T) {
	db := setupTestDB()
	store := NewStore(db)

	golang := createTestCategory(db, "Go")
	design := createTestCategory(db, "Design")

	subject := createTestPost(db, "Subject", "subject", false, time.Now())
	attachPostCategory(db, subject, golang)

	related := createTestPost(db, "Related", "related", false, time.Now())
	attachPostCategory(db, related, golang)

	unrelated := createTestPost(db, "Unrelated", "unrelated", false, time.Now())
	attachPostCategory(db, unrelated, design)

	record, err := store.PostBySlug("subject")
	assert.NoError(t, err)

	posts, err := store.RelatedPosts(record, 3)
	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, "related", posts[0].Slug)
}

func TestRelatedPosts_NoCategories(t *testing.T) {
	db := setupTestDB()
	store := NewStore(db)

	createTestPost(db, "Lonely", "lonely", false, time.Now())
	record, err := store.PostBySlug("lonely")
	assert.NoError(t, err)

	posts, err := store.RelatedPosts(record, 3)
	assert.NoError(t, err)
	assert.Empty(t, posts)
}

func TestRelatedPosts_SharedCategoriesCountOnce(t *testing.T) {
	db := setupTestDB()
	store := NewStore(db)

	golang := createTestCategory(db, "Go")
	web := createTestCategory(db, "Web")

	subject := createTestPost(db, "Subject", "subject", false, time.Now())
	attachPostCategory(db, subject, golang)
	attachPostCategory(db, subject, web)

	// shares both categories, must still appear only once
	twin := createTestPost(db, "Twin", "twin", false, time.Now())
	attachPostCategory(db, twin, golang)
	attachPostCategory(db, twin, web)

	record, err := store.PostBySlug("subject")
	assert.NoError(t, err)

	posts, err := store.RelatedPosts(record, 3)
	assert.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestAllProjects_FeaturedFirst(t *testing.T) {
	db := setupTestDB()
	store := NewStore(db)

	createTestProject(db, "Plain", "plain", false, time.Now())
	createTestProject(db, "Starred", "starred", true, time.Now().Add(-time.Hour))

	projects, err := store.AllProjects()
	assert.NoError(t, err)
	assert.Len(t, projects, 2)
	assert.Equal(t, "starred", projects[0].Slug)
}

func TestFeaturedProjects_CapsAtSix(t *testing.T) {
	db := setupTestDB()
	store := NewStore(db)

	for i := 0; i < 8; i++ {
		createTestProject(db, fmt.Sprintf("Project %d", i), fmt.Sprintf("project-%d", i),
			true, time.Now().Add(-time.Duration(i)*time.Hour))
	}
	createTestProject(db, "Ordinary", "ordinary", false, time.Now())

	projects, err := store.FeaturedProjects()
	assert.NoError(t, err)
	assert.Len(t, projects, 6)
	for _, p := range projects {
		assert.True(t, p.Featured)
	}
}

func TestSearchProjects_MatchesTechnologies(t *testing.T) {
	db := setupTestDB()
	store := NewStore(db)

	match := createTestProject(db, "Pipeline", "pipeline", false, time.Now())
	match.Technologies = "Go, Postgres, Redis"
	db.Save(match)
	createTestProject(db, "Gallery", "gallery", false, time.Now())

	projects, err := store.SearchProjects("Redis")
	assert.NoError(t, err)
	assert.Len(t, projects, 1)
	assert.Equal(t, "pipeline", projects[0].Slug)
}

func TestProjectBySlug_NotFound(t *testing.T) {
	db := setupTestDB()
	store := NewStore(db)

	record, err := store.ProjectBySlug("missing")
	assert.Nil(t, record)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectBySlug_SplitsTechnologies(t *testing.T) {
	db := setupTestDB()
	store := NewStore(db)

	createTestProject(db, "Tooling", "tooling", false, time.Now())

	record, err := store.ProjectBySlug("tooling")
	assert.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQLite"}, record.Technologies)
}

func TestFilterProjectsByCategory(t *testing.T) {
	web := models.Category{ID: "c1", Title: "Web"}
	cli := models.Category{ID: "c2", Title: "CLI"}

	projects := []ProjectRecord{
		{Project: models.Project{Title: "Site"}, Categories: []models.Category{web}},
		{Project: models.Project{Title: "Tool"}, Categories: []models.Category{cli}},
		{Project: models.Project{Title: "Bare"}},
	}

	filtered := FilterProjectsByCategory(projects, "Web")
	assert.Len(t, filtered, 1)
	assert.Equal(t, "Site", filtered[0].Title)

	// the match is case-sensitive on the category title
	assert.Empty(t, FilterProjectsByCategory(projects, "web"))

	// "" and "all" pass everything through
	assert.Len(t, FilterProjectsByCategory(projects, ""), 3)
	assert.Len(t, FilterProjectsByCategory(projects, "all"), 3)
}

func TestAllCategories_OrderedByTitle(t *testing.T) {
	db := setupTestDB()
	store := NewStore(db)

	createTestCategory(db, "Zig")
	createTestCategory(db, "Ada")
	createTestCategory(db, "Go")

	categories, err := store.AllCategories()
	assert.NoError(t, err)
	assert.Len(t, categories, 3)
	assert.Equal(t, "Ada", categories[0].Title)
	assert.Equal(t, "Zig", categories[2].Title)
}

func TestReadingTime(t *testing.T) {
	assert.Equal(t, 0, ReadingTime(""))
	assert.Equal(t, 1, ReadingTime("just a few words"))
	assert.Equal(t, 1, ReadingTime(strings.Repeat("word ", 200)))
	assert.Equal(t, 2, ReadingTime(strings.Repeat("word ", 201)))
}
