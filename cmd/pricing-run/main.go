package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/gentlementlegen/assistive-pricing/internal/modkit"
	"github.com/gentlementlegen/assistive-pricing/internal/platform/config"
	"github.com/gentlementlegen/assistive-pricing/internal/platform/logger"

	gh "github.com/gentlementlegen/assistive-pricing/internal/adapters/github"
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
	l := logger.Get()

	var (
		owner  = flag.String("owner", "", "repository owner (required)")
		repo   = flag.String("repo", "", "repository name (required)")
		issue  = flag.Int("issue", 0, "issue number (required)")
		dryRun = flag.Bool("dry-run", false, "compute the outcome but do not touch labels")
	)
	flag.Parse()

	if *owner == "" || *repo == "" {
		log.Fatal("owner/repo are required")
	}
	if *issue <= 0 {
		log.Fatal("issue must be a positive issue number")
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

	ctx := context.Background()

	// The webhook path carries the body in the payload; here we fetch it
	is, err := client.GetIssue(ctx, *owner, *repo, *issue)
	if err != nil {
		l.Fatal().Err(err).Int("issue", *issue).Msg("issue fetch failed")
	}
	if is.PullRequest != nil {
		l.Fatal().Int("issue", *issue).Msg("target is a pull request, not priced")
	}

	ports := pm.Ports().(pricingmod.Ports)
	out, err := ports.Runner.Run(ctx, pricingdom.TriggerPayload{
		Repo:  pricingdom.RepoRef{Owner: *owner, Name: *repo},
		Issue: pricingdom.Issue{Number: is.Number, Body: is.Body},
	})
	if err != nil {
		l.Fatal().Err(err).Msg("pricing failed")
	}

	l.Info().
		Str("decision", out.Decision).
		Str("label", out.Label).
		Bool("dry_run", out.DryRun).
		Msg("issue reconciled")
}
