package content

import "github.com/j15z/portfolio/listview"

// MatchPost is the blog listing's search predicate: title and excerpt.
func MatchPost(post PostRecord, search string) bool {
	return listview.MatchFields(search, post.Title, post.Excerpt)
}

// MatchProject is the portfolio listing's search predicate: title,
// description and each technology tag.
func MatchProject(project ProjectRecord, search string) bool {
	fields := append([]string{project.Title, project.Description}, project.Technologies...)
	return listview.MatchFields(search, fields...)
}

// PostCategoryTitles feeds the category filter for posts.
func PostCategoryTitles(post PostRecord) []string {
	titles := make([]string, 0, len(post.Categories))
	for _, cat := range post.Categories {
		titles = append(titles, cat.Title)
	}
	return titles
}

// ProjectCategoryTitles feeds the category filter for projects.
func ProjectCategoryTitles(project ProjectRecord) []string {
	titles := make([]string, 0, len(project.Categories))
	for _, cat := range project.Categories {
		titles = append(titles, cat.Title)
	}
	return titles
}
