package main

import (
	"context"
	"flag"
	"log"
	"os"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/gentlementlegen/assistive-pricing/internal/modkit"
	"github.com/gentlementlegen/assistive-pricing/internal/platform/config"
	"github.com/gentlementlegen/assistive-pricing/internal/platform/logger"

	gh "github.com/gentlementlegen/assistive-pricing/internal/adapters/github"
	"github.com/gentlementlegen/assistive-pricing/internal/core/pricing"
	pricingdom "github.com/gentlementlegen/assistive-pricing/internal/services/pricing/domain"
	pricingmod "github.com/gentlementlegen/assistive-pricing/internal/services/pricing/module"
)

func mustSetEnv(k, v string) {
	if v != "" {
		_ = os.Setenv(k, v)
	}
}

func main() {
	root := config.New()
	ghCfg := root.Prefix("SERVICE_GITHUB_")

	var (
		owner   = flag.String("owner", "", "repository owner (required)")
		repo    = flag.String("repo", "", "repository name (required)")
		workers = flag.Int("workers", 4, "concurrency (>=1)")
		perPage = flag.Int("page", 50, "issues fetched per page (1-100)")
		dryRun  = flag.Bool("dry-run", false, "compute outcomes but do not touch labels")
	)
	flag.Parse()

	if *owner == "" || *repo == "" {
		log.Fatal("owner/repo are required")
	}
	if *workers < 1 {
		*workers = 1
	}
	if *perPage < 1 || *perPage > 100 {
		log.Fatal("page must be 1..100")
	}

	// Pass CLI flags into PRICING_* so the module can read its own config
	mustSetEnv("PRICING_DRY_RUN", map[bool]string{true: "1", false: "0"}[*dryRun])

	client := gh.NewClient(gh.Options{
		BaseURL:    ghCfg.MayString("BASE_URL", ""),
		UserAgent:  ghCfg.MayString("USER_AGENT", ""),
		Timeout:    ghCfg.MayDuration("TIMEOUT", 0),
		TokensCSV:  ghCfg.MayString("TOKENS", ""),
		MaxRetries: ghCfg.MayInt("MAX_RETRIES", 0),
		RetryBase:  ghCfg.MayDuration("RETRY_BASE", 0),
	})

	deps := modkit.Deps{Cfg: root, GH: client}

	pm := pricingmod.New(deps, pricingmod.Options{DryRun: *dryRun})
	modkit.Register(pm.Name(), pm.Ports())
	runner := pm.Ports().(pricingmod.Ports).Runner

	// One run id across the whole sweep; logger.C picks it up everywhere
	runID := uuid.NewString()
	ctx := logger.WithRequest(context.Background(), runID, "")
	lg := logger.C(ctx)

	target := pricingdom.RepoRef{Owner: *owner, Name: *repo}
	lg.Info().Str("repo", target.String()).Int("workers", *workers).Bool("dry_run", *dryRun).Msg("sweep starting")

	var reconciled, skipped, failed atomic.Int64

	sem := make(chan struct{}, *workers)
	wg := sync.WaitGroup{}

	for page := 1; ; page++ {
		issues, err := client.ListOpenIssues(ctx, *owner, *repo, page, *perPage)
		if err != nil {
			lg.Fatal().Err(err).Int("page", page).Msg("issue listing failed")
		}
		if len(issues) == 0 {
			break
		}

		for i := range issues {
			if issues[i].PullRequest != nil {
				continue
			}
			wg.Add(1)
			sem <- struct{}{}
			go func(is gh.Issue) {
				defer func() { <-sem; wg.Done() }()

				out, err := runner.Run(ctx, pricingdom.TriggerPayload{
					Repo:  target,
					Issue: pricingdom.Issue{Number: is.Number, Body: is.Body},
				})
				if err != nil {
					failed.Add(1)
					lg.Error().Err(err).Int("issue", is.Number).Msg("issue pricing failed")
					return
				}
				if out.Decision == string(pricing.DecisionSkip) {
					skipped.Add(1)
					return
				}
				reconciled.Add(1)
			}(issues[i])
		}

		if len(issues) < *perPage {
			break
		}
	}
	wg.Wait()

	lg.Info().
		Int64("reconciled", reconciled.Load()).
		Int64("skipped", skipped.Load()).
		Int64("failed", failed.Load()).
		Msg("sweep complete")
}
