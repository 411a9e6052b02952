// Package repo implements the pricing ports over the GitHub REST adapter
package repo

import (
	"context"

	gh "github.com/gentlementlegen/assistive-pricing/internal/adapters/github"
	"github.com/gentlementlegen/assistive-pricing/internal/core/labelpack"
	"github.com/gentlementlegen/assistive-pricing/internal/platform/logger"
	"github.com/gentlementlegen/assistive-pricing/internal/services/pricing/domain"
)

// GitHub backs the label store, event history, and permission ports with
// the REST adapter. One value serves all three
type GitHub struct {
	c    *gh.Client
	pack *labelpack.Pack
	log  logger.Logger
}

// New constructs the GitHub-backed repo
func New(c *gh.Client, pack *labelpack.Pack) *GitHub {
	if c == nil {
		panic("pricing repo: requires a non nil github client")
	}
	if pack == nil {
		panic("pricing repo: requires a non nil labelpack")
	}
	return &GitHub{c: c, pack: pack, log: *logger.Named("pricing-repo")}
}

// ListRepoLabels implements domain.LabelStorePort
func (g *GitHub) ListRepoLabels(ctx context.Context, repo domain.RepoRef) ([]domain.Label, error) {
	ls, err := g.c.ListRepoLabels(ctx, repo.Owner, repo.Name)
	if err != nil {
		return nil, err
	}
	return toDomain(ls), nil
}

// LabelExists implements domain.LabelStorePort
func (g *GitHub) LabelExists(ctx context.Context, repo domain.RepoRef, name string) (bool, error) {
	_, ok, err := g.c.GetLabel(ctx, repo.Owner, repo.Name, name)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// CreateLabel implements domain.LabelStorePort; the category picks the color
func (g *GitHub) CreateLabel(ctx context.Context, repo domain.RepoRef, name, category string) error {
	return g.c.CreateLabel(ctx, repo.Owner, repo.Name, name, g.pack.ColorFor(category), "")
}

// AddLabel implements domain.LabelStorePort
func (g *GitHub) AddLabel(ctx context.Context, repo domain.RepoRef, issue int, name string) error {
	return g.c.AddIssueLabels(ctx, repo.Owner, repo.Name, issue, []string{name})
}

// RemoveLabel implements domain.LabelStorePort
func (g *GitHub) RemoveLabel(ctx context.Context, repo domain.RepoRef, issue int, name string) error {
	return g.c.RemoveIssueLabel(ctx, repo.Owner, repo.Name, issue, name)
}

// ClearPriceLabels removes each named label, logging and continuing past
// individual failures; the first failure comes back after the loop
func (g *GitHub) ClearPriceLabels(ctx context.Context, repo domain.RepoRef, issue int, names []string) error {
	var first error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			if first == nil {
				first = err
			}
			break
		}
		if err := g.c.RemoveIssueLabel(ctx, repo.Owner, repo.Name, issue, name); err != nil {
			g.log.Warn().Str("repo", repo.String()).Int("issue", issue).Str("label", name).Err(err).
				Msg("price label removal failed")
			if first == nil {
				first = err
			}
		}
	}
	return first
}

// ListIssueLabels implements domain.LabelStorePort
func (g *GitHub) ListIssueLabels(ctx context.Context, repo domain.RepoRef, issue int) ([]domain.Label, error) {
	ls, err := g.c.ListIssueLabels(ctx, repo.Owner, repo.Name, issue)
	if err != nil {
		return nil, err
	}
	return toDomain(ls), nil
}

// ListLabelEvents implements domain.EventHistoryPort.
// Only labeled/unlabeled entries with a label snapshot survive the filter;
// order stays oldest first as the API returns it
func (g *GitHub) ListLabelEvents(ctx context.Context, repo domain.RepoRef, issue int) ([]domain.LabeledEvent, error) {
	evs, err := g.c.ListIssueEvents(ctx, repo.Owner, repo.Name, issue)
	if err != nil {
		return nil, err
	}
	out := make([]domain.LabeledEvent, 0, len(evs))
	for _, e := range evs {
		if e.Label == nil || (e.Event != domain.ActionLabeled && e.Event != domain.ActionUnlabeled) {
			continue
		}
		out = append(out, domain.LabeledEvent{
			Event:     e.Event,
			Label:     e.Label.Name,
			Actor:     domain.Actor{Login: e.Actor.Login, Type: e.Actor.Type},
			CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}

// HasLabelAccess implements domain.PermissionPort.
// The legacy permission field collapses to admin/write/read/none; only the
// first two may manage labels
func (g *GitHub) HasLabelAccess(ctx context.Context, repo domain.RepoRef, login string) (bool, error) {
	perm, err := g.c.CollaboratorPermission(ctx, repo.Owner, repo.Name, login)
	if err != nil {
		return false, err
	}
	switch perm {
	case "admin", "write":
		return true, nil
	default:
		return false, nil
	}
}

func toDomain(ls []gh.Label) []domain.Label {
	out := make([]domain.Label, 0, len(ls))
	for _, l := range ls {
		out = append(out, domain.Label{Name: l.Name})
	}
	return out
}
