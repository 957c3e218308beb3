package profile

import (
	"sort"
	"strconv"
	"strings"

	"github.com/willyv3/ghprofile/internal/github"
)

// Repository is a card in the popular repositories grid.
type Repository struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	FullName    string   `yaml:"full_name"`
	Description string   `yaml:"description"`
	Language    Language `yaml:"language"`
	Visibility  string   `yaml:"visibility"`
	ForkedFrom  *Fork    `yaml:"forked_from,omitempty"`
	Stars       int      `yaml:"stars"`
	Forks       int      `yaml:"forks"`
	URL         string   `yaml:"url"`
}

// Language is a repository's primary language and its GitHub colour.
type Language struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// Fork names the upstream of a forked repository.
type Fork struct {
	Owner string `yaml:"owner"`
	Repo  string `yaml:"repo"`
	URL   string `yaml:"url"`
}

const (
	VisibilityPublic  = "Public"
	VisibilityPrivate = "Private"

	unknownLanguage    = "Unknown"
	defaultLangColor   = "#586069"
	defaultDescription = "No description provided"
)

// languageColors are GitHub's linguist colours for common languages.
var languageColors = map[string]string{
	"JavaScript":       "#f1e05a",
	"TypeScript":       "#3178c6",
	"Python":           "#3572A5",
	"Java":             "#b07219",
	"C":                "#555555",
	"C++":              "#f34b7d",
	"C#":               "#178600",
	"PHP":              "#4F5D95",
	"Ruby":             "#701516",
	"Go":               "#00ADD8",
	"Rust":             "#dea584",
	"Swift":            "#ffac45",
	"Kotlin":           "#A97BFF",
	"Dart":             "#00B4AB",
	"HTML":             "#e34c26",
	"CSS":              "#563d7c",
	"Shell":            "#89e051",
	"Jupyter Notebook": "#DA5B0B",
}

// LanguageColor returns the display colour of a language.
func LanguageColor(lang string) string {
	if color, ok := languageColors[lang]; ok {
		return color
	}
	return defaultLangColor
}

// FromRepo maps a raw repository to a card.
func FromRepo(r github.Repo) Repository {
	lang := r.Language
	if lang == "" {
		lang = unknownLanguage
	}
	description := r.Description
	if description == "" {
		description = defaultDescription
	}
	visibility := VisibilityPublic
	if r.Private {
		visibility = VisibilityPrivate
	}

	var fork *Fork
	if r.Fork && r.Parent != nil {
		owner, repo, _ := strings.Cut(r.Parent.FullName, "/")
		fork = &Fork{Owner: owner, Repo: repo, URL: r.Parent.HTMLURL}
	}

	return Repository{
		ID:          formatID(r.ID),
		Name:        r.Name,
		FullName:    r.FullName,
		Description: description,
		Language:    Language{Name: lang, Color: LanguageColor(lang)},
		Visibility:  visibility,
		ForkedFrom:  fork,
		Stars:       r.StargazersCount,
		Forks:       r.ForksCount,
		URL:         r.HTMLURL,
	}
}

// FromRepos maps a list of repositories, keeping order.
func FromRepos(repos []github.Repo) []Repository {
	out := make([]Repository, 0, len(repos))
	for _, r := range repos {
		out = append(out, FromRepo(r))
	}
	return out
}

// RepoStats aggregates a user's repositories.
type RepoStats struct {
	TotalStars     int
	TotalForks     int
	Languages      []string
	HasPopularRepo bool
}

// Popularity thresholds for HasPopularRepo.
const (
	popularStars = 10
	popularForks = 5
)

// RepoStatsOf computes aggregate repository statistics. Languages are
// distinct and sorted, without the "Unknown" placeholder.
func RepoStatsOf(repos []Repository) RepoStats {
	var stats RepoStats
	seen := make(map[string]bool)

	for _, r := range repos {
		stats.TotalStars += r.Stars
		stats.TotalForks += r.Forks
		if lang := r.Language.Name; lang != "" && lang != unknownLanguage && !seen[lang] {
			seen[lang] = true
			stats.Languages = append(stats.Languages, lang)
		}
		if r.Stars >= popularStars || r.Forks >= popularForks {
			stats.HasPopularRepo = true
		}
	}

	sort.Strings(stats.Languages)
	return stats
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
