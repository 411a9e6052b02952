// Package domain holds DTOs for the GitHub webhook intake
package domain

// WebhookUser identifies an acting account on the wire
type WebhookUser struct {
	Login string `json:"login" validate:"omitempty,max=200" example:"octocat"`
	Type  string `json:"type" validate:"omitempty,max=40" example:"User"`
}

// WebhookLabel is the label fragment of an issues event
type WebhookLabel struct {
	Name string `json:"name" validate:"omitempty,max=200" example:"Time: 1 Day"`
}

// WebhookOwner is the repository owner; the login is our routing key
type WebhookOwner struct {
	Login string `json:"login" validate:"required,min=1,max=200" example:"acme"`
}

// WebhookRepo names the repository the event happened in
type WebhookRepo struct {
	Name  string       `json:"name" validate:"required,min=1,max=100" example:"widgets"`
	Owner WebhookOwner `json:"owner" validate:"required"`
}

// WebhookIssue carries the issue fragment we act on
// PullRequest is non-nil when the "issue" is really a pull request
type WebhookIssue struct {
	Number      int       `json:"number" validate:"required,min=1" example:"7"`
	Body        string    `json:"body"`
	PullRequest *struct{} `json:"pull_request,omitempty"`
}

// IssuesEvent is the subset of the issues webhook payload we consume.
// GitHub sends far more; unknown fields are tolerated at the parse site
type IssuesEvent struct {
	Action     string        `json:"action" validate:"required,min=1,max=40" example:"labeled"`
	Issue      WebhookIssue  `json:"issue" validate:"required"`
	Label      *WebhookLabel `json:"label,omitempty"`
	Repository WebhookRepo   `json:"repository" validate:"required"`
	Sender     WebhookUser   `json:"sender"`
}

// Receipt is what a delivery gets back
type Receipt struct {
	Delivery string `json:"delivery"`
	Handled  bool   `json:"handled"`
	Reason   string `json:"reason,omitempty"`
	Outcome  any    `json:"outcome,omitempty"`
}
