package github

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// User is the raw /users/{username} record.
type User struct {
	Login           string    `json:"login"`
	ID              int64     `json:"id"`
	AvatarURL       string    `json:"avatar_url"`
	Name            string    `json:"name"`
	Company         string    `json:"company"`
	Blog            string    `json:"blog"`
	Location        string    `json:"location"`
	Email           string    `json:"email"`
	Bio             string    `json:"bio"`
	TwitterUsername string    `json:"twitter_username"`
	PublicRepos     int       `json:"public_repos"`
	Followers       int       `json:"followers"`
	Following       int       `json:"following"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Repo is a raw repository record.
type Repo struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	FullName        string      `json:"full_name"`
	Description     string      `json:"description"`
	Language        string      `json:"language"`
	Private         bool        `json:"private"`
	Fork            bool        `json:"fork"`
	ForksCount      int         `json:"forks_count"`
	StargazersCount int         `json:"stargazers_count"`
	HTMLURL         string      `json:"html_url"`
	Parent          *RepoParent `json:"parent,omitempty"`
}

// RepoParent is the upstream of a fork. Only detailed repository responses
// include it.
type RepoParent struct {
	FullName string `json:"full_name"`
	HTMLURL  string `json:"html_url"`
}

// Org is a raw organization membership record.
type Org struct {
	Login       string `json:"login"`
	ID          int64  `json:"id"`
	AvatarURL   string `json:"avatar_url"`
	Description string `json:"description"`
}

// User fetches a public user profile.
func (c *Client) User(ctx context.Context, username string) (*User, error) {
	var user User
	if err := c.getJSON(ctx, "/users/"+url.PathEscape(username), &user); err != nil {
		return nil, fmt.Errorf("fetch user %s: %w", username, err)
	}
	return &user, nil
}

// AuthenticatedUser fetches the profile behind the current token.
func (c *Client) AuthenticatedUser(ctx context.Context) (*User, error) {
	if !c.authenticated {
		return nil, ErrUnauthenticated
	}
	var user User
	if err := c.getJSON(ctx, "/user", &user); err != nil {
		return nil, fmt.Errorf("fetch authenticated user: %w", err)
	}
	return &user, nil
}

// Repos fetches the user's most recently updated repositories.
func (c *Client) Repos(ctx context.Context, username string, perPage int) ([]Repo, error) {
	path := fmt.Sprintf("/users/%s/repos?sort=updated&per_page=%d", url.PathEscape(username), perPage)

	var repos []Repo
	if err := c.getJSON(ctx, path, &repos); err != nil {
		return nil, fmt.Errorf("fetch repositories for %s: %w", username, err)
	}
	return repos, nil
}

// Orgs fetches the user's public organization memberships.
func (c *Client) Orgs(ctx context.Context, username string) ([]Org, error) {
	var orgs []Org
	if err := c.getJSON(ctx, "/users/"+url.PathEscape(username)+"/orgs", &orgs); err != nil {
		return nil, fmt.Errorf("fetch organizations for %s: %w", username, err)
	}
	return orgs, nil
}
