package service

import (
	"context"
	"strings"

	"github.com/gentlementlegen/assistive-pricing/internal/core/pricing"
	"github.com/gentlementlegen/assistive-pricing/internal/core/tasklist"
	perr "github.com/gentlementlegen/assistive-pricing/internal/platform/errors"
	"github.com/gentlementlegen/assistive-pricing/internal/platform/logger"
	"github.com/gentlementlegen/assistive-pricing/internal/services/pricing/domain"
)

// Run reconciles one issue's price label in response to a label event.
// State is re-read up front; the plan comes out of the pure engine and the
// mutations run here, removals before the single add
func (s *Service) Run(ctx context.Context, t domain.TriggerPayload) (domain.Outcome, error) {
	l := logger.C(ctx).With().
		Str("mod", "pricing").
		Str("repo", t.Repo.String()).
		Int("issue", t.Issue.Number).
		Str("action", t.Action).
		Str("label", t.Label).
		Logger()

	current, err := s.Store.ListIssueLabels(ctx, t.Repo, t.Issue.Number)
	if err != nil {
		return domain.Outcome{}, err
	}
	names := domain.Names(current)
	if len(names) == 0 {
		return domain.Outcome{}, perr.InvalidArgf("issue %s#%d has no labels to price", t.Repo.String(), t.Issue.Number)
	}

	if err := s.authorize(ctx, &l, t); err != nil {
		return domain.Outcome{}, err
	}

	// a human touched a price label directly: trim duplicates, never recompute
	if t.Sender.Human() && pricing.IsPriceLabel(t.Label, s.Pack) {
		plan := pricing.DedupePlan(names, s.Pack)
		return s.execute(ctx, &l, t.Repo, t.Issue.Number, plan, pricing.Target{}, false)
	}

	var target pricing.Target
	parent := false
	if refs := tasklist.Refs(t.Issue.Body); len(refs) > 0 {
		parent = true
		target = s.parentTarget(ctx, &l, t.Repo, refs)
	} else {
		target = pricing.ResolveTarget(names, s.Pack)
	}

	hist := pricing.HistoryNone
	if pricing.NeedHistory(target, names, s.Pack) {
		hist = s.classifyHistory(ctx, &l, t.Repo, t.Issue.Number)
	}

	plan := pricing.BuildPlan(target, names, hist, s.Pack)
	return s.execute(ctx, &l, t.Repo, t.Issue.Number, plan, target, parent)
}

// authorize enforces the collaborator gate. Bots and senderless invocations
// (CLI, sweep) pass; an unauthorized human change gets undone best-effort
// before the Forbidden comes back
func (s *Service) authorize(ctx context.Context, l *logger.Logger, t domain.TriggerPayload) error {
	if s.Cfg.PublicSetLabel || s.Perm == nil {
		return nil
	}
	if t.Sender.Login == "" || !t.Sender.Human() {
		return nil
	}
	allowed, err := s.Perm.HasLabelAccess(ctx, t.Repo, t.Sender.Login)
	if err != nil {
		return err
	}
	if allowed {
		return nil
	}
	s.revert(ctx, l, t)
	return perr.Forbiddenf("%s may not manage labels on %s", t.Sender.Login, t.Repo.String())
}

// revert undoes an unauthorized change to a vocabulary label: a fresh add is
// removed, a removal is re-added. Unrecognized labels are left alone
func (s *Service) revert(ctx context.Context, l *logger.Logger, t domain.TriggerPayload) {
	if t.Label == "" || !s.recognized(t.Label) {
		return
	}
	var err error
	switch t.Action {
	case domain.ActionLabeled:
		err = s.Store.RemoveLabel(ctx, t.Repo, t.Issue.Number, t.Label)
	case domain.ActionUnlabeled:
		err = s.Store.AddLabel(ctx, t.Repo, t.Issue.Number, t.Label)
	default:
		return
	}
	if err != nil {
		l.Warn().Err(err).Msg("unauthorized change revert failed")
		return
	}
	l.Info().Str("sender", t.Sender.Login).Msg("unauthorized change reverted")
}

func (s *Service) recognized(name string) bool {
	return s.Pack.Time.Has(name) || s.Pack.Priority.Has(name) || pricing.IsPriceLabel(name, s.Pack)
}

// classifyHistory inspects the issue timeline for the latest price labeling.
// Fetch failures map to HistoryUnknown so the plan can skip conservatively
func (s *Service) classifyHistory(ctx context.Context, l *logger.Logger, repo domain.RepoRef, issue int) pricing.HistoryState {
	if s.History == nil {
		return pricing.HistoryUnknown
	}
	evs, err := s.History.ListLabelEvents(ctx, repo, issue)
	if err != nil {
		l.Warn().Err(err).Msg("label event history unavailable")
		return pricing.HistoryUnknown
	}

	kw := pricing.HistoryKeyword(s.Pack)
	idx := -1 // events arrive oldest first; remember the latest match
	for i := range evs {
		if strings.Contains(evs[i].Label, kw) {
			idx = i
		}
	}
	if idx < 0 {
		return pricing.HistoryNone
	}
	if !evs[idx].Actor.Human() {
		return pricing.HistoryBot
	}
	return pricing.HistoryHuman
}

// execute issues the plan's mutations: removals first, then the add gated by
// the repo-wide ensure. Removal failures log and never block the add
func (s *Service) execute(ctx context.Context, l *logger.Logger, repo domain.RepoRef, issue int, plan pricing.Plan, target pricing.Target, parent bool) (domain.Outcome, error) {
	out := domain.Outcome{Decision: string(plan.Decision), Parent: parent, DryRun: s.Cfg.DryRun}
	if target.OK {
		out.Price = target.Value
		out.Label = target.Label
	}

	if !plan.Mutates() {
		l.Debug().Str("decision", string(plan.Decision)).Str("reason", plan.Reason).Msg("nothing to do")
		return out, nil
	}
	if s.Cfg.DryRun {
		l.Info().Str("decision", string(plan.Decision)).Strs("remove", plan.Remove).Str("add", plan.Add).
			Msg("dry run, mutations withheld")
		return out, nil
	}

	if len(plan.Remove) > 0 {
		if err := s.Store.ClearPriceLabels(ctx, repo, issue, plan.Remove); err != nil {
			l.Error().Err(err).Msg("price label cleanup incomplete")
		}
		out.Removed = plan.Remove
	}

	if plan.Add != "" {
		if plan.Ensure {
			if err := s.ensureLabel(ctx, l, repo, plan.Add); err != nil {
				return out, err
			}
		}
		if err := s.Store.AddLabel(ctx, repo, issue, plan.Add); err != nil {
			return out, err
		}
		out.Added = plan.Add
	}

	l.Info().Str("decision", string(plan.Decision)).Str("reason", plan.Reason).
		Strs("removed", out.Removed).Str("added", out.Added).Msg("reconciled")
	return out, nil
}

// ensureLabel creates the label repo-wide when absent. A failure here blocks
// the dependent add so the issue never references an undefined label
func (s *Service) ensureLabel(ctx context.Context, l *logger.Logger, repo domain.RepoRef, name string) error {
	ok, err := s.Store.LabelExists(ctx, repo, name)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if err := s.Store.CreateLabel(ctx, repo, name, "price"); err != nil {
		return err
	}
	l.Info().Str("created", name).Msg("repo label created")
	return nil
}
