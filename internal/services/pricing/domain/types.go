// Package domain defines the core types and interfaces for the pricing service
package domain

import "time"

// Actions the service reacts to
const (
	ActionLabeled   = "labeled"
	ActionUnlabeled = "unlabeled"
)

// RepoRef identifies one repository
type RepoRef struct {
	Owner string
	Name  string
}

// String renders the conventional owner/name form
func (r RepoRef) String() string { return r.Owner + "/" + r.Name }

// Label is a repository label; identity is the name
type Label struct {
	Name string
}

// Names projects labels onto their names, preserving order
func Names(ls []Label) []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.Name)
	}
	return out
}

// Actor is the account behind an event
type Actor struct {
	Login string
	Type  string // "User" | "Bot" | "Organization"
}

// Human reports whether the actor counts as a person.
// Anything that is not explicitly a Bot is treated as human
func (a Actor) Human() bool { return a.Type != "Bot" }

// Issue is the event-time snapshot of the issue under reconciliation.
// Labels are always re-read through the store port, never taken from here
type Issue struct {
	Number int
	Body   string
}

// TriggerPayload is one label-change event on an issue
type TriggerPayload struct {
	Action string // "labeled" | "unlabeled"
	Repo   RepoRef
	Issue  Issue
	Label  string // the changed label name, empty when not known
	Sender Actor
}

// LabeledEvent is one labeled/unlabeled entry from the issue timeline
type LabeledEvent struct {
	Event     string // "labeled" | "unlabeled"
	Label     string
	Actor     Actor
	CreatedAt time.Time
}

// Outcome summarizes one reconciliation run
type Outcome struct {
	Decision string   `json:"decision"` // skip | clear | replace | dedupe
	Parent   bool     `json:"parent,omitempty"`
	Price    float64  `json:"price,omitempty"`
	Label    string   `json:"label,omitempty"`
	Removed  []string `json:"removed,omitempty"`
	Added    string   `json:"added,omitempty"`
	DryRun   bool     `json:"dry_run,omitempty"`
}

// QuoteInput asks for a price preview from a label set
type QuoteInput struct {
	Labels []string `json:"labels" validate:"required,min=1,dive,label_name" example:"Time: 1 Day"`
}

// QuoteResult is the no-mutation price preview
type QuoteResult struct {
	Time         []string `json:"time"`
	Priority     []string `json:"priority"`
	TimePick     string   `json:"time_pick,omitempty"`
	PriorityPick string   `json:"priority_pick,omitempty"`
	Priced       bool     `json:"priced"`
	Price        float64  `json:"price,omitempty"`
	Label        string   `json:"label,omitempty"`
	Currency     string   `json:"currency"`
}
