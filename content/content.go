package content

import (
	"errors"
	"log"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/j15z/portfolio/models"
)

// ErrNotFound is returned by slug lookups when no record matches.
var ErrNotFound = errors.New("content: not found")

// Store is the fixed catalogue of queries the site runs against the
// content database. Every listing excludes drafts and slugless records.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// PostRecord is a post denormalized with its categories and author,
// the shape the API and templates consume.
type PostRecord struct {
	models.Post
	Categories []models.Category `json:"categories,omitempty"`
	Author     *models.Author    `json:"author,omitempty"`
}

// ProjectRecord is a project denormalized with its categories and
// technology tags.
type ProjectRecord struct {
	models.Project
	Categories   []models.Category `json:"categories,omitempty"`
	Technologies []string          `json:"technologies,omitempty"`
}

func (s *Store) publishedPosts() *gorm.DB {
	return s.db.Where("draft = ? AND slug <> ''", false)
}

func (s *Store) publishedProjects() *gorm.DB {
	return s.db.Where("draft = ? AND slug <> ''", false)
}

// AllPosts returns published posts, newest first. limit <= 0 means no limit.
func (s *Store) AllPosts(limit int) ([]PostRecord, error) {
	var posts []models.Post
	q := s.publishedPosts().Order("published_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&posts).Error; err != nil {
		log.Printf("content: error loading posts: %v", err)
		return []PostRecord{}, err
	}
	return s.decoratePosts(posts), nil
}

// SearchPosts matches the user term, wrapped in wildcards on both sides,
// against title, excerpt and body.
func (s *Store) SearchPosts(term string, limit int) ([]PostRecord, error) {
	pattern := "%" + term + "%"
	var posts []models.Post
	q := s.publishedPosts().
		Where("title LIKE ? OR excerpt LIKE ? OR body LIKE ?", pattern, pattern, pattern).
		Order("published_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&posts).Error; err != nil {
		log.Printf("content: error searching posts: %v", err)
		return []PostRecord{}, err
	}
	return s.decoratePosts(posts), nil
}

// PostsByCategory filters posts at the query level. Projects deliberately
// do not get an equivalent: project listings are filtered in memory via
// FilterProjectsByCategory, preserving the split the site has always had.
func (s *Store) PostsByCategory(categoryTitle string, limit int) ([]PostRecord, error) {
	var posts []models.Post
	q := s.publishedPosts().
		Joins("INNER JOIN post_categories ON post_categories.post_id = posts.id").
		Joins("INNER JOIN categories ON categories.id = post_categories.category_id").
		Where("categories.title = ?", categoryTitle).
		Order("published_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&posts).Error; err != nil {
		log.Printf("content: error loading posts for category %q: %v", categoryTitle, err)
		return []PostRecord{}, err
	}
	return s.decoratePosts(posts), nil
}

// PostBySlug returns a single post or ErrNotFound.
func (s *Store) PostBySlug(slug string) (*PostRecord, error) {
	var post models.Post
	err := s.publishedPosts().Where("slug = ?", slug).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Printf("content: error loading post %q: %v", slug, err)
		return nil, err
	}
	record := s.decoratePosts([]models.Post{post})[0]
	return &record, nil
}

// RelatedPosts returns up to limit posts sharing a category with the
// given post, newest first, excluding the post itself.
func (s *Store) RelatedPosts(post *PostRecord, limit int) ([]PostRecord, error) {
	if len(post.Categories) == 0 {
		return []PostRecord{}, nil
	}

	var categoryIDs []string
	for _, cat := range post.Categories {
		categoryIDs = append(categoryIDs, cat.ID)
	}

	var posts []models.Post
	err := s.publishedPosts().
		Joins("INNER JOIN post_categories ON post_categories.post_id = posts.id").
		Where("post_categories.category_id IN ?", categoryIDs).
		Where("posts.id <> ?", post.ID).
		Group("posts.id").
		Order("published_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		log.Printf("content: error loading related posts for %q: %v", post.Slug, err)
		return []PostRecord{}, err
	}
	return s.decoratePosts(posts), nil
}

// FeaturedPosts returns the latest posts for the homepage preview.
func (s *Store) FeaturedPosts(limit int) ([]PostRecord, error) {
	return s.AllPosts(limit)
}

// AllProjects returns published projects, featured first, then newest.
func (s *Store) AllProjects() ([]ProjectRecord, error) {
	var projects []models.Project
	err := s.publishedProjects().
		Order("featured DESC, published_at DESC").
		Find(&projects).Error
	if err != nil {
		log.Printf("content: error loading projects: %v", err)
		return []ProjectRecord{}, err
	}
	return s.decorateProjects(projects), nil
}

// FeaturedProjects returns up to six featured projects, newest first.
func (s *Store) FeaturedProjects() ([]ProjectRecord, error) {
	var projects []models.Project
	err := s.publishedProjects().
		Where("featured = ?", true).
		Order("published_at DESC").
		Limit(6).
		Find(&projects).Error
	if err != nil {
		log.Printf("content: error loading featured projects: %v", err)
		return []ProjectRecord{}, err
	}
	return s.decorateProjects(projects), nil
}

// SearchProjects matches the wildcard-wrapped term against title,
// description and the technologies column.
func (s *Store) SearchProjects(term string) ([]ProjectRecord, error) {
	pattern := "%" + term + "%"
	var projects []models.Project
	err := s.publishedProjects().
		Where("title LIKE ? OR description LIKE ? OR technologies LIKE ?", pattern, pattern, pattern).
		Order("featured DESC, published_at DESC").
		Find(&projects).Error
	if err != nil {
		log.Printf("content: error searching projects: %v", err)
		return []ProjectRecord{}, err
	}
	return s.decorateProjects(projects), nil
}

// ProjectBySlug returns a single project or ErrNotFound.
func (s *Store) ProjectBySlug(slug string) (*ProjectRecord, error) {
	var project models.Project
	err := s.publishedProjects().Where("slug = ?", slug).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Printf("content: error loading project %q: %v", slug, err)
		return nil, err
	}
	record := s.decorateProjects([]models.Project{project})[0]
	return &record, nil
}

// FilterProjectsByCategory applies the category filter in memory. The
// title must match a category title exactly, case-sensitive.
func FilterProjectsByCategory(projects []ProjectRecord, categoryTitle string) []ProjectRecord {
	if categoryTitle == "" || categoryTitle == "all" {
		return projects
	}
	filtered := []ProjectRecord{}
	for _, project := range projects {
		for _, cat := range project.Categories {
			if cat.Title == categoryTitle {
				filtered = append(filtered, project)
				break
			}
		}
	}
	return filtered
}

// AllCategories returns every category ordered by title.
func (s *Store) AllCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("title ASC").Find(&categories).Error; err != nil {
		log.Printf("content: error loading categories: %v", err)
		return []models.Category{}, err
	}
	return categories, nil
}

func (s *Store) decoratePosts(posts []models.Post) []PostRecord {
	records := make([]PostRecord, 0, len(posts))
	for _, post := range posts {
		record := PostRecord{Post: post}
		record.Categories = s.postCategories(post.ID)

		if post.AuthorID != "" {
			var author models.Author
			if err := s.db.First(&author, "id = ?", post.AuthorID).Error; err == nil {
				record.Author = &author
			}
		}

		records = append(records, record)
	}
	return records
}

func (s *Store) decorateProjects(projects []models.Project) []ProjectRecord {
	records := make([]ProjectRecord, 0, len(projects))
	for _, project := range projects {
		records = append(records, ProjectRecord{
			Project:      project,
			Categories:   s.projectCategories(project.ID),
			Technologies: project.TechnologyList(),
		})
	}
	return records
}

func (s *Store) postCategories(postID string) []models.Category {
	var categories []models.Category
	s.db.Table("categories").
		Joins("INNER JOIN post_categories ON categories.id = post_categories.category_id").
		Where("post_categories.post_id = ?", postID).
		Order("categories.title ASC").
		Find(&categories)
	return categories
}

func (s *Store) projectCategories(projectID string) []models.Category {
	var categories []models.Category
	s.db.Table("categories").
		Joins("INNER JOIN project_categories ON categories.id = project_categories.category_id").
		Where("project_categories.project_id = ?", projectID).
		Order("categories.title ASC").
		Find(&categories)
	return categories
}

// ReadingTime estimates minutes to read at 200 words per minute.
func ReadingTime(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / 200.0))
}
