package profile

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/willyv3/ghprofile/internal/github"
)

// ActivityKind classifies timeline entries.
type ActivityKind string

const (
	KindCommit      ActivityKind = "commit"
	KindPullRequest ActivityKind = "pr"
	KindIssue       ActivityKind = "issue"
	KindReview      ActivityKind = "review"
)

// kindOrder is the order of entries within one month.
var kindOrder = map[ActivityKind]int{
	KindCommit:      0,
	KindPullRequest: 1,
	KindIssue:       2,
	KindReview:      3,
}

// ActivityRepository is one repository line of an expanded timeline entry.
type ActivityRepository struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
	URL   string `yaml:"url"`
}

// Activity is one timeline entry: everything of one kind in one month.
type Activity struct {
	ID              string               `yaml:"id"`
	Kind            ActivityKind         `yaml:"type"`
	Count           int                  `yaml:"count"`
	Repositories    []ActivityRepository `yaml:"repositories"`
	Date            string               `yaml:"date"` // YYYY-MM
	Month           string               `yaml:"month"`
	RepositoryCount int                  `yaml:"repository_count"`
}

// Summary is the collapsed headline of the entry.
func (a Activity) Summary() string {
	repos := plural(a.RepositoryCount, "repository", "repositories")
	switch a.Kind {
	case KindCommit:
		return fmt.Sprintf("Created %s in %s", plural(a.Count, "commit", "commits"), repos)
	case KindPullRequest:
		return fmt.Sprintf("Opened %s in %s", plural(a.Count, "pull request", "pull requests"), repos)
	case KindIssue:
		return fmt.Sprintf("Opened %s in %s", plural(a.Count, "issue", "issues"), repos)
	case KindReview:
		return fmt.Sprintf("Reviewed %s in %s", plural(a.Count, "pull request", "pull requests"), repos)
	default:
		return fmt.Sprintf("%d %s events in %s", a.Count, a.Kind, repos)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// kindOf maps an event to a timeline kind and the number of units it adds.
func kindOf(e github.Event) (ActivityKind, int, bool) {
	switch e.Type {
	case "PushEvent":
		return KindCommit, max(e.Payload.CommitCount(), 1), true
	case "PullRequestEvent":
		if e.Payload.Action != "opened" && e.Payload.Action != "" {
			return "", 0, false
		}
		return KindPullRequest, 1, true
	case "IssuesEvent":
		if e.Payload.Action != "opened" && e.Payload.Action != "" {
			return "", 0, false
		}
		return KindIssue, 1, true
	case "PullRequestReviewEvent":
		return KindReview, 1, true
	default:
		return "", 0, false
	}
}

// ActivitiesFromEvents groups events into monthly timeline entries, newest
// month first, using months in loc. Repositories within an entry are ordered
// by count, then name.
func ActivitiesFromEvents(events []github.Event, loc *time.Location) []Activity {
	type bucket struct {
		activity Activity
		repos    map[string]int
	}
	buckets := make(map[string]*bucket)

	for _, e := range events {
		kind, n, ok := kindOf(e)
		if !ok {
			continue
		}
		month := e.CreatedAt.In(loc)
		date := month.Format("2006-01")
		id := date + "/" + string(kind)

		b, exists := buckets[id]
		if !exists {
			b = &bucket{
				activity: Activity{
					ID:    id,
					Kind:  kind,
					Date:  date,
					Month: month.Format("January 2006"),
				},
				repos: make(map[string]int),
			}
			buckets[id] = b
		}
		b.activity.Count += n
		b.repos[e.Repo.Name] += n
	}

	activities := make([]Activity, 0, len(buckets))
	for _, b := range buckets {
		a := b.activity
		for name, count := range b.repos {
			a.Repositories = append(a.Repositories, ActivityRepository{
				Name:  name,
				Count: count,
				URL:   "https://github.com/" + name,
			})
		}
		sort.Slice(a.Repositories, func(i, j int) bool {
			ri, rj := a.Repositories[i], a.Repositories[j]
			if ri.Count != rj.Count {
				return ri.Count > rj.Count
			}
			return ri.Name < rj.Name
		})
		a.RepositoryCount = len(a.Repositories)
		activities = append(activities, a)
	}

	sort.Slice(activities, func(i, j int) bool {
		ai, aj := activities[i], activities[j]
		if ai.Date != aj.Date {
			return ai.Date > aj.Date
		}
		return kindOrder[ai.Kind] < kindOrder[aj.Kind]
	})
	return activities
}

// RepoLink is a repository reference in the activity overview.
type RepoLink struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Breakdown splits contributions by kind.
type Breakdown struct {
	Commits      int `yaml:"commits"`
	Issues       int `yaml:"issues"`
	PullRequests int `yaml:"pull_requests"`
	CodeReview   int `yaml:"code_review"`
}

// Total is the sum over all kinds.
func (b Breakdown) Total() int {
	return b.Commits + b.Issues + b.PullRequests + b.CodeReview
}

// Percent is the rounded share of a kind, 0 when there is nothing at all.
func (b Breakdown) Percent(kind ActivityKind) int {
	total := b.Total()
	if total == 0 {
		return 0
	}
	var n int
	switch kind {
	case KindCommit:
		n = b.Commits
	case KindPullRequest:
		n = b.PullRequests
	case KindIssue:
		n = b.Issues
	case KindReview:
		n = b.CodeReview
	}
	return int(math.Round(float64(n) * 100 / float64(total)))
}

// Overview is the activity overview panel.
type Overview struct {
	Organizations           []Organization `yaml:"organizations"`
	ContributedRepositories []RepoLink     `yaml:"contributed_repositories"`
	TotalRepositories       int            `yaml:"total_repositories"`
	CodeReview              Breakdown      `yaml:"code_review"`
	PeakHour                string         `yaml:"peak_hour"`
}

// OverviewFrom builds the overview from recent events. Hours are taken in
// loc.
func OverviewFrom(events []github.Event, orgs []Organization, loc *time.Location) Overview {
	ov := Overview{Organizations: orgs}
	seen := make(map[string]bool)
	var times []time.Time

	for _, e := range events {
		kind, n, ok := kindOf(e)
		if !ok {
			continue
		}
		switch kind {
		case KindCommit:
			ov.CodeReview.Commits += n
		case KindPullRequest:
			ov.CodeReview.PullRequests += n
		case KindIssue:
			ov.CodeReview.Issues += n
		case KindReview:
			ov.CodeReview.CodeReview += n
		}
		if !seen[e.Repo.Name] {
			seen[e.Repo.Name] = true
			ov.ContributedRepositories = append(ov.ContributedRepositories, RepoLink{
				Name: e.Repo.Name,
				URL:  "https://github.com/" + e.Repo.Name,
			})
		}
		times = append(times, e.CreatedAt.In(loc))
	}

	ov.TotalRepositories = len(ov.ContributedRepositories)
	ov.PeakHour = PeakHour(times)
	return ov
}

// PeakHour finds the most active hour of the day across timestamps and
// formats it as a range like "2-3pm". Ties go to the earliest hour.
func PeakHour(times []time.Time) string {
	hourCounts := make(map[int]int)
	for _, t := range times {
		hourCounts[t.Hour()]++
	}

	maxCount, peak := 0, 0
	for hour := 0; hour < 24; hour++ {
		if hourCounts[hour] > maxCount {
			maxCount = hourCounts[hour]
			peak = hour
		}
	}
	if maxCount == 0 {
		return "No data"
	}

	start, startPeriod := clockHour(peak)
	end, endPeriod := clockHour((peak + 1) % 24)
	return formatHourRange(start, startPeriod, end, endPeriod)
}

// clockHour converts a 24-hour value to 12-hour form.
func clockHour(hour int) (int, string) {
	period := "am"
	if hour >= 12 {
		period = "pm"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return display, period
}

func formatHourRange(start int, startPeriod string, end int, endPeriod string) string {
	if startPeriod == endPeriod {
		// Same period: "2-3pm"
		return fmt.Sprintf("%d-%d%s", start, end, endPeriod)
	}
	// Different periods: "11am-12pm"
	return fmt.Sprintf("%d%s-%d%s", start, startPeriod, end, endPeriod)
}
