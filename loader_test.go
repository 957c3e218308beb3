package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/willyv3/ghprofile/internal/fixtures"
	"github.com/willyv3/ghprofile/internal/github"
)

var errOffline = errors.New("offline")

type fakeSource struct {
	user   *github.User
	repos  []github.Repo
	orgs   []github.Org
	events []github.Event
	err    error // returned by every call that has no data
}

func (f *fakeSource) ContributionCalendar(context.Context, string, time.Time, time.Time) ([]byte, error) {
	return nil, errOffline
}

func (f *fakeSource) User(context.Context, string) (*github.User, error) {
	if f.user == nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeSource) Repos(context.Context, string, int) ([]github.Repo, error) {
	if f.repos == nil {
		return nil, f.err
	}
	return f.repos, nil
}

func (f *fakeSource) Orgs(context.Context, string) ([]github.Org, error) {
	if f.orgs == nil {
		return nil, f.err
	}
	return f.orgs, nil
}

func (f *fakeSource) Events(context.Context, string, int) ([]github.Event, error) {
	if f.events == nil {
		return nil, f.err
	}
	return f.events, nil
}

func testLoader(src profileSource) *pageLoader {
	return &pageLoader{
		source:       src,
		logger:       zap.NewNop(),
		now:          func() time.Time { return graphToday },
		loc:          time.UTC,
		earliestYear: 2023,
		repoLimit:    3,
		eventLimit:   30,
	}
}

func TestLoadOffline(t *testing.T) {
	set := fixtures.MustLoad()
	page := testLoader(nil).Load(context.Background(), "octocat")

	if page.Live {
		t.Error("offline page should not be live")
	}
	if page.Profile.Username != set.Profile.Username {
		t.Errorf("profile = %s, want the sample %s", page.Profile.Username, set.Profile.Username)
	}
	if len(page.Repositories) != 3 {
		t.Errorf("got %d repositories, want the limit of 3", len(page.Repositories))
	}
	if len(page.Activities) != len(set.Activities) {
		t.Errorf("got %d activities, want %d", len(page.Activities), len(set.Activities))
	}
	if page.Contributions.TotalContributions != 2994 {
		t.Errorf("total = %d, want the synthetic 2994", page.Contributions.TotalContributions)
	}
}

func TestLoadFallsBackPerSection(t *testing.T) {
	defer goleak.VerifyNone(t)

	set := fixtures.MustLoad()
	src := &fakeSource{
		user: &github.User{Login: "octocat", Name: "The Octocat", CreatedAt: graphToday.AddDate(-5, 0, 0)},
		err:  errOffline,
	}
	page := testLoader(src).Load(context.Background(), "octocat")

	if !page.Live || page.Profile.Username != "octocat" {
		t.Errorf("profile should be live octocat, got %s (live %v)", page.Profile.Username, page.Live)
	}
	if len(page.Repositories) == 0 || page.Repositories[0].Name != set.Repositories[0].Name {
		t.Error("repositories should fall back to fixtures")
	}
	if page.Overview.PeakHour != set.Overview.PeakHour {
		t.Errorf("overview should fall back to fixtures, got peak hour %q", page.Overview.PeakHour)
	}
	if len(page.Profile.Organizations) != 0 {
		t.Errorf("failed org lookup should leave the live profile without orgs, got %d", len(page.Profile.Organizations))
	}
}

func TestLoadLiveSections(t *testing.T) {
	defer goleak.VerifyNone(t)

	at := time.Date(2025, 10, 12, 14, 30, 0, 0, time.UTC)
	src := &fakeSource{
		user: &github.User{Login: "octocat", CreatedAt: graphToday.AddDate(-5, 0, 0)},
		repos: []github.Repo{
			{ID: 1, Name: "quiet"},
			{ID: 2, Name: "starred", StargazersCount: 10},
			{ID: 3, Name: "forked", ForksCount: 4},
			{ID: 4, Name: "popular", StargazersCount: 10, ForksCount: 2},
		},
		orgs: []github.Org{{Login: "github", ID: 9919}},
		events: []github.Event{
			{ID: "1", Type: "PushEvent", CreatedAt: at, Repo: github.EventRepo{Name: "octocat/hello"}, Payload: github.EventPayload{Size: 3}},
		},
	}
	page := testLoader(src).Load(context.Background(), "octocat")

	var names []string
	for _, r := range page.Repositories {
		names = append(names, r.Name)
	}
	want := []string{"popular", "starred", "forked"}
	if len(names) != len(want) {
		t.Fatalf("repositories = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("repositories = %v, want %v", names, want)
			break
		}
	}

	if len(page.Profile.Organizations) != 1 || page.Profile.Organizations[0].Login != "github" {
		t.Errorf("organizations = %+v", page.Profile.Organizations)
	}
	if len(page.Activities) != 1 || page.Activities[0].Count != 3 {
		t.Errorf("activities = %+v", page.Activities)
	}
	if page.Overview.PeakHour != "2-3pm" {
		t.Errorf("peak hour = %q, want 2-3pm", page.Overview.PeakHour)
	}
}

func TestLimitRepos(t *testing.T) {
	set := fixtures.MustLoad()
	if got := limitRepos(set.Repositories, 0); len(got) != len(set.Repositories) {
		t.Errorf("limit 0 should keep all %d, got %d", len(set.Repositories), len(got))
	}
	if got := limitRepos(set.Repositories, 2); len(got) != 2 {
		t.Errorf("limit 2 kept %d", len(got))
	}
}
