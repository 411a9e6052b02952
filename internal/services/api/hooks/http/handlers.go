// Package http provides the GitHub webhook transport
package http

import (
	stdhttp "net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/gentlementlegen/assistive-pricing/internal/modkit/httpkit"
	"github.com/gentlementlegen/assistive-pricing/internal/platform/logger"
	"github.com/gentlementlegen/assistive-pricing/internal/platform/net/http/bind"
	"github.com/gentlementlegen/assistive-pricing/internal/services/api/hooks/domain"
	pricingdom "github.com/gentlementlegen/assistive-pricing/internal/services/pricing/domain"
)

// Register mounts the webhook intake on the given router
func Register(r httpkit.Router, runner pricingdom.RunnerPort) {
	h := &handlers{runner: runner}
	r.Post("/github", httpkit.Handle(h.github))
}

type handlers struct {
	runner pricingdom.RunnerPort
	locks  issueLocks
}

// issueLocks serializes deliveries that touch the same issue so overlapping
// redeliveries cannot interleave their read-plan-mutate cycles
type issueLocks struct{ m sync.Map }

func (l *issueLocks) lock(key string) func() {
	mu, _ := l.m.LoadOrStore(key, &sync.Mutex{})
	mtx := mu.(*sync.Mutex)
	mtx.Lock()
	return mtx.Unlock
}

// swagger:route POST /hooks/github Hooks hooksGithub
// @Summary GitHub issues webhook intake
// @Tags Hooks
// @Accept json
// @Produce json
// @Param payload body domain.IssuesEvent true "issues event"
// @Success 200 {object} domain.Receipt "ok"
// @Router /hooks/github [post]
func (h *handlers) github(r *stdhttp.Request) httpkit.Response {
	delivery := r.Header.Get("X-GitHub-Delivery")
	if delivery == "" {
		delivery = uuid.NewString()
	}
	event := r.Header.Get("X-GitHub-Event")

	l := logger.C(r.Context()).With().
		Str("mod", "hooks").
		Str("delivery", delivery).
		Str("event", event).
		Logger()

	switch event {
	case "ping":
		return httpkit.OK(domain.Receipt{Delivery: delivery, Reason: "pong"})
	case "issues":
	default:
		l.Debug().Msg("event ignored")
		return httpkit.OK(domain.Receipt{Delivery: delivery, Reason: "unsupported event"})
	}

	// GitHub sends far more fields than we model, so parse leniently
	in, err := bind.ParseJSON[domain.IssuesEvent](r, bind.JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: false})
	if err != nil {
		return httpkit.Error(err)
	}

	if in.Action != pricingdom.ActionLabeled && in.Action != pricingdom.ActionUnlabeled {
		return httpkit.OK(domain.Receipt{Delivery: delivery, Reason: "action not handled"})
	}
	if in.Issue.PullRequest != nil {
		return httpkit.OK(domain.Receipt{Delivery: delivery, Reason: "pull requests are not priced"})
	}

	t := pricingdom.TriggerPayload{
		Action: in.Action,
		Repo:   pricingdom.RepoRef{Owner: in.Repository.Owner.Login, Name: in.Repository.Name},
		Issue:  pricingdom.Issue{Number: in.Issue.Number, Body: in.Issue.Body},
		Sender: pricingdom.Actor{Login: in.Sender.Login, Type: in.Sender.Type},
	}
	if in.Label != nil {
		t.Label = in.Label.Name
	}

	// one delivery at a time per issue
	unlock := h.locks.lock(t.Repo.String() + "#" + strconv.Itoa(t.Issue.Number))
	defer unlock()

	ctx := logger.WithRequest(r.Context(), delivery, t.Repo.Owner)
	out, err := h.runner.Run(ctx, t)
	if err != nil {
		l.Warn().Err(err).Msg("reconciliation failed")
		return httpkit.Error(err)
	}
	return httpkit.OK(domain.Receipt{Delivery: delivery, Handled: true, Outcome: out})
}
