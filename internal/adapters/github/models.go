package github

import "time"

// Label is a partial GitHub label document with fields we use
type Label struct {
	ID          int64  `json:"id"`
	NodeID      string `json:"node_id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
	Default     bool   `json:"default"`
}

// User is a partial GitHub user, org, or app actor document
// Type is "User", "Organization", or "Bot"
type User struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Type  string `json:"type"`
}

// Issue is a partial GitHub issue document with fields we use
// PullRequest is non-nil when the issue is really a PR
type Issue struct {
	ID          int64     `json:"id"`
	NodeID      string    `json:"node_id"`
	Number      int       `json:"number"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	State       string    `json:"state"`
	Labels      []Label   `json:"labels"`
	User        User      `json:"user"`
	PullRequest *struct{} `json:"pull_request,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	HTMLURL     string    `json:"html_url"`
}

// EventLabel is the label snapshot carried by labeled and unlabeled events
type EventLabel struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// IssueEvent is a partial issue event document
// Event is "labeled", "unlabeled", etc; Label is set for those two
type IssueEvent struct {
	ID        int64       `json:"id"`
	Event     string      `json:"event"`
	Actor     User        `json:"actor"`
	Label     *EventLabel `json:"label,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// Permission is the response of the collaborator permission endpoint
// Permission is one of admin, write, read, none
type Permission struct {
	Permission string `json:"permission"`
	User       User   `json:"user"`
}
