package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/nhle/techtrack/internal/model"
	"github.com/nhle/techtrack/internal/source"
)

// defaultPageSize is used when the caller does not specify one.
const defaultPageSize = 10

// Adapter implements source.Searcher over the GitHub repository search
// API, mapping repositories to candidate technology records.
type Adapter struct {
	client   *Client
	pageSize int
}

// NewAdapter creates a new GitHub search adapter. The token may be empty.
func NewAdapter(baseURL, token string, pageSize int) *Adapter {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Adapter{
		client:   NewClient(baseURL, token),
		pageSize: pageSize,
	}
}

// Name returns the source identifier for GitHub.
func (a *Adapter) Name() string { return "github" }

// Search finds repositories matching the query and converts them to
// candidate technologies.
func (a *Adapter) Search(
	ctx context.Context,
	query string,
	opts source.FetchOptions,
) (*source.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &source.SearchResult{}, nil
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	pageSize := opts.PageSize
	if pageSize < 1 {
		pageSize = a.pageSize
	}

	resp, err := a.client.SearchRepositories(ctx, query, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("searching GitHub repositories: %w", err)
	}

	items := make([]model.Technology, 0, len(resp.Items))
	for _, repo := range resp.Items {
		items = append(items, repoToTechnology(repo, query))
	}

	return &source.SearchResult{
		Items:   items,
		Total:   resp.TotalCount,
		HasMore: (page-1)*pageSize+len(resp.Items) < resp.TotalCount,
	}, nil
}

// FallbackCandidates returns a canned candidate for the query, used
// when the API is unreachable so the search view always has something
// actionable to show.
func FallbackCandidates(query string) []model.Technology {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	return []model.Technology{{
		Title:       titleCase(query),
		Description: fmt.Sprintf("Technology related to %s", query),
		Category:    model.CategoryTools,
		Status:      model.StatusNotStarted,
		Difficulty:  model.DifficultyBeginner,
		Resources: []string{
			"https://www.npmjs.com/search?q=" + query,
			"https://github.com/topics/" + query,
		},
		EstimatedHours: 20,
	}}
}

// repoToTechnology maps a GitHub repository to a candidate technology.
func repoToTechnology(repo Repo, query string) model.Technology {
	description := repo.Description
	if description == "" {
		description = fmt.Sprintf("Open source project related to %s", query)
	}

	resources := []string{repo.HTMLURL}
	if repo.Homepage != "" {
		resources = append(resources, repo.Homepage)
	}

	return model.Technology{
		Title:          formatTechName(repo.Name, query),
		Description:    description,
		Category:       categorize(repo),
		Status:         model.StatusNotStarted,
		Difficulty:     difficultyFromStars(repo.Stars),
		EstimatedHours: hoursFromStars(repo.Stars),
		Resources:      resources,
	}
}

// categorize infers a category label from the repository's language,
// name, description, and topics.
func categorize(repo Repo) string {
	name := strings.ToLower(repo.Name)
	description := strings.ToLower(repo.Description)
	language := strings.ToLower(repo.Language)

	switch language {
	case "javascript", "typescript", "coffeescript":
		if strings.Contains(name, "react") || strings.Contains(name, "vue") ||
			strings.Contains(name, "angular") ||
			strings.Contains(description, "frontend") ||
			strings.Contains(description, "ui") ||
			hasTopic(repo, "frontend") || hasTopic(repo, "react") {
			return model.CategoryFrontend
		}
		return model.CategoryBackend
	case "python", "java", "go", "rust", "c++", "c#":
		return model.CategoryBackend
	case "html", "css", "sass", "less":
		return model.CategoryFrontend
	}

	allText := name + " " + description + " " + strings.ToLower(strings.Join(repo.Topics, " "))

	keywordCategories := []struct {
		category string
		keywords []string
	}{
		{model.CategoryBackend, []string{"server", "api", "framework", "backend"}},
		{model.CategoryFrontend, []string{"ui", "component", "frontend", "browser", "client"}},
		{model.CategoryDevops, []string{"docker", "kubernetes", "deploy", "ci/cd", "infrastructure"}},
		{model.CategoryDatabase, []string{"database", "db", "mongodb", "mysql", "postgres"}},
	}
	for _, kc := range keywordCategories {
		for _, keyword := range kc.keywords {
			if strings.Contains(allText, keyword) {
				return kc.category
			}
		}
	}

	return model.CategoryTools
}

func hasTopic(repo Repo, topic string) bool {
	for _, t := range repo.Topics {
		if strings.EqualFold(t, topic) {
			return true
		}
	}
	return false
}

// formatTechName cleans a repository name into a display title,
// falling back to the query for overly generic names.
func formatTechName(repoName, query string) string {
	name := strings.TrimPrefix(repoName, "awesome-")
	name = strings.ReplaceAll(name, "-", " ")

	words := strings.Fields(name)
	for i, w := range words {
		switch strings.ToLower(w) {
		case "js":
			words[i] = "JavaScript"
		case "ts":
			words[i] = "TypeScript"
		default:
			words[i] = titleCase(w)
		}
	}
	name = strings.Join(words, " ")

	generic := map[string]bool{"api": true, "lib": true, "library": true, "utils": true}
	if len(name) < 3 || generic[strings.ToLower(name)] {
		return titleCase(query)
	}
	return name
}

// difficultyFromStars estimates learning difficulty from popularity.
func difficultyFromStars(stars int) model.Difficulty {
	switch {
	case stars > 10000:
		return model.DifficultyAdvanced
	case stars > 1000:
		return model.DifficultyIntermediate
	default:
		return model.DifficultyBeginner
	}
}

// hoursFromStars estimates learning time from popularity: the bigger
// the ecosystem, the more there is to learn.
func hoursFromStars(stars int) int {
	switch {
	case stars > 50000:
		return 60
	case stars > 10000:
		return 40
	case stars > 1000:
		return 25
	default:
		return 15
	}
}

// titleCase upper-cases the first rune of s.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
