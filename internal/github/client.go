// Package github talks to the GitHub REST and GraphQL APIs.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	ghAPI "github.com/cli/go-gh/v2/pkg/api"
	"github.com/cli/go-gh/v2/pkg/auth"
)

const (
	DefaultHost       = "github.com"
	defaultAPIURL     = "https://api.github.com"
	defaultGraphQLURL = "https://api.github.com/graphql"
	defaultTimeout    = 10 * time.Second
)

// ErrUnauthenticated is returned for requests that GitHub only serves to
// authenticated clients, such as GraphQL queries.
var ErrUnauthenticated = errors.New("GitHub authentication required\nRun 'gh auth login' or set GITHUB_TOKEN")

// HTTPError is a non-2xx response from the API.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("GitHub API error: %s (%s)", e.Status, e.URL)
}

// GraphQLError carries the errors array of a GraphQL response.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "GraphQL API error: " + strings.Join(e.Messages, "; ")
}

// Options configures a Client. The zero value talks to github.com with
// whatever credentials go-gh can find.
type Options struct {
	Host    string
	Token   string
	Timeout time.Duration
	// Anonymous skips the token lookup entirely.
	Anonymous bool

	// BaseURL and GraphQLURL override the API endpoints.
	BaseURL    string
	GraphQLURL string
	Transport  http.RoundTripper
}

// Client handles all GitHub API interactions.
type Client struct {
	httpClient    *http.Client
	baseURL       string
	graphqlURL    string
	authenticated bool
}

// NewClient creates a GitHub client. Credentials come from Options.Token,
// then from go-gh (GH_TOKEN, GITHUB_TOKEN, the gh CLI store). Without a
// token the client still serves public REST data anonymously.
func NewClient(opts Options) (*Client, error) {
	host := opts.Host
	if host == "" {
		host = DefaultHost
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		graphqlURL: opts.GraphQLURL,
	}
	if c.baseURL == "" {
		c.baseURL = apiURL(host)
	}
	if c.graphqlURL == "" {
		c.graphqlURL = graphQLURL(host)
	}

	token := opts.Token
	if token == "" && !opts.Anonymous {
		token, _ = auth.TokenForHost(host)
	}

	if token == "" {
		c.httpClient = &http.Client{Timeout: timeout, Transport: opts.Transport}
		return c, nil
	}

	// go-gh attaches the token and the standard GitHub headers.
	httpClient, err := ghAPI.NewHTTPClient(ghAPI.ClientOptions{
		Host:      host,
		AuthToken: token,
		Timeout:   timeout,
		Transport: opts.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %w", err)
	}
	c.httpClient = httpClient
	c.authenticated = true
	return c, nil
}

// Authenticated reports whether requests carry a token.
func (c *Client) Authenticated() bool {
	return c.authenticated
}

func apiURL(host string) string {
	if host == DefaultHost {
		return defaultAPIURL
	}
	return "https://" + host + "/api/v3"
}

func graphQLURL(host string) string {
	if host == DefaultHost {
		return defaultGraphQLURL
	}
	return "https://" + host + "/api/graphql"
}

// getJSON performs a GET against the REST API and decodes the body into v.
func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, URL: url}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
