package domain

import "context"

// LabelStorePort reads and mutates repository and issue labels
type LabelStorePort interface {
	// ListRepoLabels returns every label defined on the repository
	ListRepoLabels(ctx context.Context, repo RepoRef) ([]Label, error)

	// LabelExists reports whether the repository defines the named label
	LabelExists(ctx context.Context, repo RepoRef, name string) (bool, error)

	// CreateLabel defines the label repo-wide; category picks the color
	CreateLabel(ctx context.Context, repo RepoRef, name, category string) error

	// AddLabel attaches an existing label to the issue
	AddLabel(ctx context.Context, repo RepoRef, issue int, name string) error

	// RemoveLabel detaches the label from the issue
	RemoveLabel(ctx context.Context, repo RepoRef, issue int, name string) error

	// ClearPriceLabels removes the given labels from the issue one by one.
	// Individual failures are logged and do not stop the loop; the first
	// failure is returned after the loop completes
	ClearPriceLabels(ctx context.Context, repo RepoRef, issue int, names []string) error

	// ListIssueLabels returns the labels currently on the issue
	ListIssueLabels(ctx context.Context, repo RepoRef, issue int) ([]Label, error)
}

// EventHistoryPort reads labeled/unlabeled entries from the issue timeline
type EventHistoryPort interface {
	ListLabelEvents(ctx context.Context, repo RepoRef, issue int) ([]LabeledEvent, error)
}

// PermissionPort answers whether an account may manage labels on the repo
type PermissionPort interface {
	HasLabelAccess(ctx context.Context, repo RepoRef, login string) (bool, error)
}

// RunnerPort is the external port for one reconciliation run
type RunnerPort interface {
	Run(ctx context.Context, t TriggerPayload) (Outcome, error)
}

// QuoterPort previews a price for a label set without touching the issue
type QuoterPort interface {
	Quote(ctx context.Context, in QuoteInput) (QuoteResult, error)
}

// Ports are dependencies injected into the pricing module
type Ports struct {
	Store      LabelStorePort  // required
	History    EventHistoryPort
	Permission PermissionPort
}
