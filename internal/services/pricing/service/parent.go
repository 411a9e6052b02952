package service

import (
	"context"

	"github.com/gentlementlegen/assistive-pricing/internal/core/pricing"
	"github.com/gentlementlegen/assistive-pricing/internal/core/tasklist"
	"github.com/gentlementlegen/assistive-pricing/internal/platform/logger"
	"github.com/gentlementlegen/assistive-pricing/internal/services/pricing/domain"
)

// parentTarget folds the referenced children's prices into one target.
// Unreadable children degrade to no contribution rather than failing the
// run; with no priced child at all the parent stays unpriceable and the
// plan clears
func (s *Service) parentTarget(ctx context.Context, l *logger.Logger, repo domain.RepoRef, refs []tasklist.Ref) pricing.Target {
	prices := make([]float64, 0, len(refs))
	for _, ref := range refs {
		r := repo
		if !ref.SameRepo() {
			r = domain.RepoRef{Owner: ref.Owner, Name: ref.Repo}
		}
		ls, err := s.Store.ListIssueLabels(ctx, r, ref.Number)
		if err != nil {
			l.Warn().Str("child", r.String()).Int("number", ref.Number).Err(err).
				Msg("child labels unavailable")
			continue
		}
		if v, ok := pricing.ResolveIssuePrice(domain.Names(ls), s.Pack); ok {
			prices = append(prices, v)
		}
	}
	return pricing.ParentTarget(prices, s.Cfg.Aggregation, s.Pack)
}
