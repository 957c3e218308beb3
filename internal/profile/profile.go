// Package profile maps raw GitHub records to the display records of the
// profile page.
package profile

import (
	"strings"
	"time"

	"github.com/willyv3/ghprofile/internal/github"
)

// Profile is the sidebar's view of a user.
type Profile struct {
	Username      string         `yaml:"username"`
	Name          string         `yaml:"name"`
	Avatar        string         `yaml:"avatar"`
	Bio           Bio            `yaml:"bio"`
	Stats         Stats          `yaml:"stats"`
	Achievements  []Achievement  `yaml:"achievements"`
	Organizations []Organization `yaml:"organizations"`
}

// Bio holds the descriptive part of the sidebar.
type Bio struct {
	Description string   `yaml:"description"`
	Title       string   `yaml:"title"`
	Company     string   `yaml:"company"`
	Skills      []string `yaml:"skills"`
	Location    string   `yaml:"location"`
	Email       string   `yaml:"email"`
	Website     string   `yaml:"website"`
	Twitter     string   `yaml:"twitter"`
	LinkedIn    string   `yaml:"linkedin"`
	GitHub      string   `yaml:"github"`
}

// Stats are the follower counters.
type Stats struct {
	Followers int `yaml:"followers"`
	Following int `yaml:"following"`
}

// Organization is an organization badge in the sidebar.
type Organization struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Login  string `yaml:"login"`
	Avatar string `yaml:"avatar"`
	URL    string `yaml:"url"`
}

// techKeywords are matched case-insensitively against the bio.
var techKeywords = []string{
	"Python", "JavaScript", "TypeScript", "React", "Node", "Angular", "Vue",
	"Java", "Go", "Rust", "Ruby", "PHP", "C++", "C#", "Swift", "Kotlin",
	"MongoDB", "PostgreSQL", "MySQL", "Redis", "Docker", "Kubernetes",
	"AWS", "Azure", "GCP", "DevOps", "CI/CD", "Git", "Linux",
}

const defaultSkill = "Developer"

// FromUser maps a GitHub user to a profile as of now.
func FromUser(u github.User, now time.Time) Profile {
	name := u.Name
	if name == "" {
		name = u.Login
	}

	title := u.Company
	description := ""
	if title == "" {
		title = u.Bio
	} else {
		description = u.Bio
	}

	twitter := ""
	if u.TwitterUsername != "" {
		twitter = "@" + u.TwitterUsername
	}

	return Profile{
		Username: u.Login,
		Name:     name,
		Avatar:   u.AvatarURL,
		Bio: Bio{
			Description: description,
			Title:       title,
			Company:     u.Company,
			Skills:      Skills(u.Bio),
			Location:    u.Location,
			Email:       u.Email,
			Website:     u.Blog,
			Twitter:     twitter,
			GitHub:      u.Login,
		},
		Stats: Stats{
			Followers: u.Followers,
			Following: u.Following,
		},
		Achievements: Achievements(u, now),
	}
}

// Skills extracts known technology keywords from a bio, in keyword order.
// A bio without any yields a single generic skill.
// Matching is by substring, so "Go" also matches "Google".
func Skills(bio string) []string {
	lower := strings.ToLower(bio)

	var skills []string
	if lower != "" {
		for _, kw := range techKeywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				skills = append(skills, kw)
			}
		}
	}
	if len(skills) == 0 {
		return []string{defaultSkill}
	}
	return skills
}

// Organizations maps organization memberships to sidebar badges.
func Organizations(orgs []github.Org) []Organization {
	out := make([]Organization, 0, len(orgs))
	for _, o := range orgs {
		out = append(out, Organization{
			ID:     formatID(o.ID),
			Name:   o.Login,
			Login:  o.Login,
			Avatar: o.AvatarURL,
			URL:    "https://github.com/" + o.Login,
		})
	}
	return out
}
