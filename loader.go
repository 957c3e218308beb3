package main

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/willyv3/ghprofile/internal/contrib"
	"github.com/willyv3/ghprofile/internal/fixtures"
	"github.com/willyv3/ghprofile/internal/github"
	"github.com/willyv3/ghprofile/internal/profile"
)

// repoFetchLimit is how many repositories are read to pick the popular ones.
const repoFetchLimit = 100

// profileSource is the part of the GitHub client the page needs.
type profileSource interface {
	contrib.Source
	User(ctx context.Context, username string) (*github.User, error)
	Repos(ctx context.Context, username string, perPage int) ([]github.Repo, error)
	Orgs(ctx context.Context, username string) ([]github.Org, error)
	Events(ctx context.Context, username string, perPage int) ([]github.Event, error)
}

// Page is everything shown on one profile page.
type Page struct {
	Profile       profile.Profile
	Repositories  []profile.Repository
	Activities    []profile.Activity
	Overview      profile.Overview
	Contributions contrib.Data
	Today         time.Time

	// Live reports whether the profile itself came from GitHub.
	Live bool
}

// pageLoader assembles pages from GitHub, falling back per section to the
// bundled fixtures.
type pageLoader struct {
	source       profileSource // nil means offline
	logger       *zap.Logger
	now          func() time.Time
	loc          *time.Location
	earliestYear int
	repoLimit    int
	eventLimit   int
}

// Load fetches the sections of a page concurrently. It never fails: every
// section that cannot be fetched is filled from fixtures.
func (l *pageLoader) Load(ctx context.Context, username string) *Page {
	now := l.now()
	set := fixtures.MustLoad()

	builder := &contrib.Builder{
		Logger:       l.logger,
		Now:          func() time.Time { return now },
		EarliestYear: l.earliestYear,
	}

	page := &Page{Today: now}

	if l.source == nil || username == "" {
		page.Profile = set.Profile
		page.Repositories = limitRepos(set.Repositories, l.repoLimit)
		page.Activities = set.Activities
		page.Overview = set.Overview
		page.Contributions = builder.Build(ctx, username)
		return page
	}
	builder.Source = l.source

	var (
		user   *github.User
		repos  []github.Repo
		orgs   []github.Org
		events []github.Event
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		user, err = l.source.User(ctx, username)
		l.warnOnError("profile", username, err)
		return err
	})
	g.Go(func() error {
		var err error
		repos, err = l.source.Repos(ctx, username, repoFetchLimit)
		l.warnOnError("repositories", username, err)
		return err
	})
	g.Go(func() error {
		var err error
		orgs, err = l.source.Orgs(ctx, username)
		l.warnOnError("organizations", username, err)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = l.source.Events(ctx, username, l.eventLimit)
		l.warnOnError("events", username, err)
		return err
	})
	g.Go(func() error {
		page.Contributions = builder.Build(ctx, username)
		return nil
	})
	if err := g.Wait(); err != nil {
		l.logger.Debug("Page assembled with fixture sections", zap.String("username", username))
	}
	if years := page.Contributions.Years; len(years) > 0 {
		l.logger.Debug("Contributions",
			zap.String("username", username),
			zap.Stringer("summary", contrib.Summarize(years[0], now)))
	}

	organizations := profile.Organizations(orgs)

	if user != nil {
		page.Profile = profile.FromUser(*user, now)
		page.Profile.Organizations = organizations
		page.Live = true
	} else {
		page.Profile = set.Profile
	}

	if repos != nil {
		page.Repositories = limitRepos(popular(profile.FromRepos(repos)), l.repoLimit)
	} else {
		page.Repositories = limitRepos(set.Repositories, l.repoLimit)
	}

	if events != nil {
		for _, e := range events {
			l.logger.Debug("Event",
				zap.String("repo", e.Repo.Name),
				zap.String("action", e.Description()),
				zap.Time("at", e.CreatedAt))
		}
		page.Activities = profile.ActivitiesFromEvents(events, l.loc)
		page.Overview = profile.OverviewFrom(events, organizations, l.loc)
	} else {
		page.Activities = set.Activities
		page.Overview = set.Overview
	}

	return page
}

func (l *pageLoader) warnOnError(section, username string, err error) {
	if err == nil {
		return
	}
	l.logger.Warn("Using fixture data",
		zap.String("section", section),
		zap.String("username", username),
		zap.Error(err))
}

// popular orders repositories by stars, then forks, keeping the API order
// on ties.
func popular(repos []profile.Repository) []profile.Repository {
	sort.SliceStable(repos, func(i, j int) bool {
		if repos[i].Stars != repos[j].Stars {
			return repos[i].Stars > repos[j].Stars
		}
		return repos[i].Forks > repos[j].Forks
	})
	return repos
}

func limitRepos(repos []profile.Repository, limit int) []profile.Repository {
	if limit > 0 && len(repos) > limit {
		return repos[:limit]
	}
	return repos
}
