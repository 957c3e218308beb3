package profile

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/willyv3/ghprofile/internal/github"
)

var now = time.Date(2025, 10, 19, 12, 0, 0, 0, time.UTC)

func TestFromUser(t *testing.T) {
	u := github.User{
		Login:           "octocat",
		AvatarURL:       "https://avatars.githubusercontent.com/u/583231",
		Company:         "@github",
		Blog:            "https://github.blog",
		Location:        "San Francisco",
		Bio:             "Writes Go and Rust, ships with Docker",
		TwitterUsername: "octo",
		PublicRepos:     8,
		Followers:       100,
		Following:       3,
		CreatedAt:       time.Date(2011, 1, 25, 0, 0, 0, 0, time.UTC),
		UpdatedAt:       now.AddDate(0, -2, 0),
	}

	p := FromUser(u, now)

	if p.Name != "octocat" {
		t.Errorf("Name = %q, want login fallback", p.Name)
	}
	if p.Bio.Title != "@github" {
		t.Errorf("Title = %q, want company", p.Bio.Title)
	}
	if p.Bio.Description != u.Bio {
		t.Errorf("Description = %q, want bio", p.Bio.Description)
	}
	if p.Bio.Twitter != "@octo" {
		t.Errorf("Twitter = %q", p.Bio.Twitter)
	}
	if p.Bio.Website != u.Blog {
		t.Errorf("Website = %q", p.Bio.Website)
	}
	if diff := cmp.Diff([]string{"Go", "Rust", "Docker"}, p.Bio.Skills); diff != "" {
		t.Errorf("skills mismatch (-want +got):\n%s", diff)
	}
	if p.Stats.Followers != 100 || p.Stats.Following != 3 {
		t.Errorf("Stats = %+v", p.Stats)
	}
	if len(p.Achievements) != 2 {
		t.Errorf("got %d achievements, want YOLO and Pull Shark", len(p.Achievements))
	}
}

func TestFromUserTitleFallsBackToBio(t *testing.T) {
	p := FromUser(github.User{Login: "x", Name: "X", Bio: "Hacker"}, now)
	if p.Name != "X" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.Bio.Title != "Hacker" || p.Bio.Description != "" {
		t.Errorf("Title/Description = %q/%q", p.Bio.Title, p.Bio.Description)
	}
	if p.Bio.Twitter != "" {
		t.Errorf("Twitter = %q, want empty", p.Bio.Twitter)
	}
}

func TestSkills(t *testing.T) {
	tests := []struct {
		bio  string
		want []string
	}{
		{"", []string{"Developer"}},
		{"Cat lover", []string{"Developer"}},
		{"python, KUBERNETES and aws", []string{"Python", "Kubernetes", "AWS"}},
		{"TypeScript all day", []string{"TypeScript"}},
		{"C++ and c#", []string{"C++", "C#"}},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Skills(tt.bio)); diff != "" {
			t.Errorf("Skills(%q) mismatch (-want +got):\n%s", tt.bio, diff)
		}
	}
}

func TestAchievements(t *testing.T) {
	tests := []struct {
		name string
		user github.User
		want []string
		desc map[string]string
	}{
		{
			name: "new quiet account",
			user: github.User{CreatedAt: now.AddDate(-1, 0, 0)},
			want: nil,
		},
		{
			name: "veteran with one repo",
			user: github.User{CreatedAt: time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC), PublicRepos: 1},
			want: []string{"yolo", "pull-shark"},
			desc: map[string]string{
				"yolo":       "10+ years on GitHub",
				"pull-shark": "1 merged pull request",
			},
		},
		{
			name: "recently active",
			user: github.User{CreatedAt: now.AddDate(-2, 0, 0), PublicRepos: 4, UpdatedAt: now.AddDate(0, 0, -7)},
			want: []string{"pull-shark", "quickdraw"},
			desc: map[string]string{"pull-shark": "4 merged pull requests"},
		},
		{
			name: "updated eight days ago",
			user: github.User{CreatedAt: now.AddDate(-2, 0, 0), UpdatedAt: now.AddDate(0, 0, -8)},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Achievements(tt.user, now)
			var ids []string
			for _, a := range got {
				ids = append(ids, a.ID)
				if want, ok := tt.desc[a.ID]; ok && a.Description != want {
					t.Errorf("%s description = %q, want %q", a.ID, a.Description, want)
				}
				if a.Icon == "" {
					t.Errorf("%s has no icon", a.ID)
				}
			}
			if diff := cmp.Diff(tt.want, ids); diff != "" {
				t.Errorf("achievements mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOrganizations(t *testing.T) {
	got := Organizations([]github.Org{{Login: "golang", ID: 4314092, AvatarURL: "https://a/golang"}})
	want := []Organization{{
		ID:     "4314092",
		Name:   "golang",
		Login:  "golang",
		Avatar: "https://a/golang",
		URL:    "https://github.com/golang",
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Organizations mismatch (-want +got):\n%s", diff)
	}
}
