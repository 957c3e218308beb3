package github

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Event is a raw public timeline event.
type Event struct {
	ID        string       `json:"id"`
	Type      string       `json:"type"`
	Public    bool         `json:"public"`
	CreatedAt time.Time    `json:"created_at"`
	Repo      EventRepo    `json:"repo"`
	Payload   EventPayload `json:"payload"`
}

// EventRepo names the repository an event happened in.
type EventRepo struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// EventPayload holds the payload fields the profile page reads.
type EventPayload struct {
	Action  string `json:"action"`
	Size    int    `json:"size"`
	RefType string `json:"ref_type"`
	Commits []struct {
		SHA string `json:"sha"`
	} `json:"commits"`
}

// CommitCount is the number of commits a push carried.
func (p EventPayload) CommitCount() int {
	if p.Size > 0 {
		return p.Size
	}
	return len(p.Commits)
}

// Description creates a human-readable action description.
func (e Event) Description() string {
	switch e.Type {
	case "PushEvent":
		if n := e.Payload.CommitCount(); n > 0 {
			return fmt.Sprintf("Pushed %d commit(s)", n)
		}
		return "Pushed commits"
	case "CreateEvent":
		if e.Payload.RefType != "" {
			return "Created " + e.Payload.RefType
		}
		return "Created repository"
	case "PullRequestEvent":
		if e.Payload.Action != "" {
			return "Pull request " + e.Payload.Action
		}
		return "Pull request activity"
	case "PullRequestReviewEvent":
		return "Reviewed a pull request"
	case "IssuesEvent":
		if e.Payload.Action != "" {
			return "Issue " + e.Payload.Action
		}
		return "Issue activity"
	case "WatchEvent":
		return "Starred repository"
	case "ForkEvent":
		return "Forked repository"
	default:
		return e.Type
	}
}

// Events fetches the user's recent public events.
func (c *Client) Events(ctx context.Context, username string, perPage int) ([]Event, error) {
	path := fmt.Sprintf("/users/%s/events/public?per_page=%d", url.PathEscape(username), perPage)

	var events []Event
	if err := c.getJSON(ctx, path, &events); err != nil {
		return nil, fmt.Errorf("fetch events for %s: %w", username, err)
	}
	return events, nil
}
