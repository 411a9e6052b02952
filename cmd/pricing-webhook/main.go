// @title         Assistive Pricing API
// @version       0.1.0
// @description   GitHub label webhook intake, price quotes, and meta endpoints

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gentlementlegen/assistive-pricing/internal/platform/config"
	"github.com/gentlementlegen/assistive-pricing/internal/platform/logger"
	phttp "github.com/gentlementlegen/assistive-pricing/internal/platform/net/http"

	gh "github.com/gentlementlegen/assistive-pricing/internal/adapters/github"
	"github.com/gentlementlegen/assistive-pricing/internal/services/api"
)

func main() {
	// SIGINT/SIGTERM turn into context cancellation, which Run drains on
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	ghCfg := root.Prefix("SERVICE_GITHUB_")

	// bring up logging early
	l := logger.Get()

	// GitHub REST client shared by every module
	client := gh.NewClient(gh.Options{
		BaseURL:    ghCfg.MayString("BASE_URL", ""),
		UserAgent:  ghCfg.MayString("USER_AGENT", ""),
		Timeout:    ghCfg.MayDuration("TIMEOUT", 0),
		TokensCSV:  ghCfg.MayString("TOKENS", ""),
		MaxRetries: ghCfg.MayInt("MAX_RETRIES", 0),
		RetryBase:  ghCfg.MayDuration("RETRY_BASE", 0),
	})

	// http server; binds CORE_API_ADDR, or CORE_API_PORT, or :4000
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			GitHub:         client,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Fatal().Err(err).Msg("http server stopped")
	}
}
