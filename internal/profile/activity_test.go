package profile

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/willyv3/ghprofile/internal/github"
)

func event(typ, repo, action string, size int, at time.Time) github.Event {
	return github.Event{
		Type:      typ,
		CreatedAt: at,
		Repo:      github.EventRepo{Name: repo},
		Payload:   github.EventPayload{Action: action, Size: size},
	}
}

func sampleEvents() []github.Event {
	oct := time.Date(2025, 10, 14, 14, 30, 0, 0, time.UTC)
	sep := time.Date(2025, 9, 2, 9, 0, 0, 0, time.UTC)
	return []github.Event{
		event("PushEvent", "acme/web", "", 3, oct),
		event("PushEvent", "acme/api", "", 5, oct.Add(10*time.Minute)),
		event("PushEvent", "acme/web", "", 4, oct.Add(20*time.Minute)),
		event("PullRequestEvent", "acme/web", "opened", 0, oct.Add(-3*time.Hour)),
		event("PullRequestEvent", "acme/web", "closed", 0, oct),
		event("PullRequestReviewEvent", "acme/api", "created", 0, oct),
		event("WatchEvent", "golang/go", "started", 0, oct),
		event("IssuesEvent", "octocat/dotfiles", "opened", 0, sep),
		event("PushEvent", "octocat/dotfiles", "", 0, sep),
	}
}

func TestActivitiesFromEvents(t *testing.T) {
	got := ActivitiesFromEvents(sampleEvents(), time.UTC)

	want := []Activity{
		{
			ID: "2025-10/commit", Kind: KindCommit, Count: 12, Date: "2025-10", Month: "October 2025",
			RepositoryCount: 2,
			Repositories: []ActivityRepository{
				{Name: "acme/web", Count: 7, URL: "https://github.com/acme/web"},
				{Name: "acme/api", Count: 5, URL: "https://github.com/acme/api"},
			},
		},
		{
			ID: "2025-10/pr", Kind: KindPullRequest, Count: 1, Date: "2025-10", Month: "October 2025",
			RepositoryCount: 1,
			Repositories:    []ActivityRepository{{Name: "acme/web", Count: 1, URL: "https://github.com/acme/web"}},
		},
		{
			ID: "2025-10/review", Kind: KindReview, Count: 1, Date: "2025-10", Month: "October 2025",
			RepositoryCount: 1,
			Repositories:    []ActivityRepository{{Name: "acme/api", Count: 1, URL: "https://github.com/acme/api"}},
		},
		{
			ID: "2025-09/commit", Kind: KindCommit, Count: 1, Date: "2025-09", Month: "September 2025",
			RepositoryCount: 1,
			Repositories:    []ActivityRepository{{Name: "octocat/dotfiles", Count: 1, URL: "https://github.com/octocat/dotfiles"}},
		},
		{
			ID: "2025-09/issue", Kind: KindIssue, Count: 1, Date: "2025-09", Month: "September 2025",
			RepositoryCount: 1,
			Repositories:    []ActivityRepository{{Name: "octocat/dotfiles", Count: 1, URL: "https://github.com/octocat/dotfiles"}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ActivitiesFromEvents mismatch (-want +got):\n%s", diff)
	}
}

func TestActivitySummary(t *testing.T) {
	tests := []struct {
		a    Activity
		want string
	}{
		{Activity{Kind: KindCommit, Count: 56, RepositoryCount: 11}, "Created 56 commits in 11 repositories"},
		{Activity{Kind: KindPullRequest, Count: 1, RepositoryCount: 1}, "Opened 1 pull request in 1 repository"},
		{Activity{Kind: KindIssue, Count: 2, RepositoryCount: 1}, "Opened 2 issues in 1 repository"},
		{Activity{Kind: KindReview, Count: 3, RepositoryCount: 2}, "Reviewed 3 pull requests in 2 repositories"},
	}
	for _, tt := range tests {
		if got := tt.a.Summary(); got != tt.want {
			t.Errorf("Summary() = %q, want %q", got, tt.want)
		}
	}
}

func TestOverviewFrom(t *testing.T) {
	orgs := []Organization{{Name: "acme"}}
	ov := OverviewFrom(sampleEvents(), orgs, time.UTC)

	wantRepos := []RepoLink{
		{Name: "acme/web", URL: "https://github.com/acme/web"},
		{Name: "acme/api", URL: "https://github.com/acme/api"},
		{Name: "octocat/dotfiles", URL: "https://github.com/octocat/dotfiles"},
	}
	if diff := cmp.Diff(wantRepos, ov.ContributedRepositories); diff != "" {
		t.Errorf("contributed repositories mismatch (-want +got):\n%s", diff)
	}
	if ov.TotalRepositories != 3 {
		t.Errorf("TotalRepositories = %d, want 3", ov.TotalRepositories)
	}
	want := Breakdown{Commits: 13, Issues: 1, PullRequests: 1, CodeReview: 1}
	if ov.CodeReview != want {
		t.Errorf("CodeReview = %+v, want %+v", ov.CodeReview, want)
	}
	if ov.PeakHour != "2-3pm" {
		t.Errorf("PeakHour = %q, want 2-3pm", ov.PeakHour)
	}
	if len(ov.Organizations) != 1 {
		t.Errorf("organizations not carried through")
	}
}

func TestBreakdownPercent(t *testing.T) {
	b := Breakdown{Commits: 83, PullRequests: 17}
	if got := b.Percent(KindCommit); got != 83 {
		t.Errorf("commits = %d%%, want 83%%", got)
	}
	if got := b.Percent(KindPullRequest); got != 17 {
		t.Errorf("pull requests = %d%%, want 17%%", got)
	}
	if got := (Breakdown{}).Percent(KindIssue); got != 0 {
		t.Errorf("empty breakdown = %d%%, want 0", got)
	}
}

func TestActivitiesFromEventsUsesLocation(t *testing.T) {
	// 23:30 in New York on September 30 is already October in UTC.
	at := time.Date(2025, 10, 1, 3, 30, 0, 0, time.UTC)
	events := []github.Event{event("PushEvent", "acme/web", "", 2, at)}

	newYork := time.FixedZone("EDT", -4*60*60)
	tests := []struct {
		name  string
		loc   *time.Location
		date  string
		month string
	}{
		{"UTC", time.UTC, "2025-10", "October 2025"},
		{"New York", newYork, "2025-09", "September 2025"},
	}
	for _, tt := range tests {
		got := ActivitiesFromEvents(events, tt.loc)
		if len(got) != 1 {
			t.Fatalf("%s: got %d activities, want 1", tt.name, len(got))
		}
		if got[0].Date != tt.date || got[0].Month != tt.month {
			t.Errorf("%s: bucketed into %s (%s), want %s (%s)", tt.name, got[0].Date, got[0].Month, tt.date, tt.month)
		}
	}

	// The overview's peak hour reads the same clock.
	if peak := OverviewFrom(events, nil, newYork).PeakHour; peak != "11pm-12am" {
		t.Errorf("peak hour = %q, want 11pm-12am", peak)
	}
}

func TestFormatHourRange(t *testing.T) {
	tests := []struct {
		start       int
		startPeriod string
		end         int
		endPeriod   string
		expected    string
	}{
		{2, "pm", 3, "pm", "2-3pm"},
		{11, "am", 12, "pm", "11am-12pm"},
		{1, "am", 2, "am", "1-2am"},
	}

	for _, tt := range tests {
		result := formatHourRange(tt.start, tt.startPeriod, tt.end, tt.endPeriod)
		if result != tt.expected {
			t.Errorf("formatHourRange(%d%s, %d%s) = %s, want %s",
				tt.start, tt.startPeriod, tt.end, tt.endPeriod, result, tt.expected)
		}
	}
}

func TestPeakHour(t *testing.T) {
	base := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	times := []time.Time{
		base.Add(14*time.Hour + 30*time.Minute),
		base.Add(14*time.Hour + 45*time.Minute),
		base.Add(10 * time.Hour),
		base.Add(10*time.Hour + 30*time.Minute),
		base.Add(23 * time.Hour),
	}

	// 10:00 and 14:00 tie; the earlier hour wins.
	if peak := PeakHour(times); peak != "10-11am" {
		t.Errorf("peak = %q, want 10-11am", peak)
	}

	if got := PeakHour([]time.Time{base.Add(23 * time.Hour)}); got != "11pm-12am" {
		t.Errorf("late peak = %q, want 11pm-12am", got)
	}
	if got := PeakHour([]time.Time{base.Add(11 * time.Hour)}); got != "11am-12pm" {
		t.Errorf("noon peak = %q, want 11am-12pm", got)
	}
	if got := PeakHour(nil); got != "No data" {
		t.Errorf("empty peak = %q", got)
	}
}
