package commands

import (
	"net"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pageza/flockfeed/backend/internal/api"
	"github.com/pageza/flockfeed/backend/internal/database"
	"github.com/pageza/flockfeed/backend/internal/llm"
	"github.com/pageza/flockfeed/backend/internal/middleware"
	"github.com/pageza/flockfeed/backend/internal/server"
	"github.com/pageza/flockfeed/backend/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var advisorPort string

// advisorCmd serves the nutrition advisor
var advisorCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Run the nutrition advisor API",
	Long: `Run the nutrition advisor API.

The service starts even when model credentials are missing; GET / then
reports which settings are required and model-backed routes answer 503.`,
	RunE: runAdvisor,
}

func init() {
	advisorCmd.Flags().StringVar(&advisorPort, "port", "", "Listen port (defaults to ADVISOR_PORT)")
}

func runAdvisor(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var client llm.ModelClient
	if missing := cfg.Advisor.Missing(); len(missing) > 0 {
		log.Warn("advisor is not configured", zap.String("missing", strings.Join(missing, ", ")))
	} else {
		client, err = llm.NewModelClient(ctx, cfg.Advisor, log.Named("llm"))
		if err != nil {
			return err
		}
		if closer, ok := client.(interface{ Close() }); ok {
			defer closer.Close()
		}
	}

	var limiter *middleware.RateLimiter
	if cfg.Redis.Enabled() {
		redisClient, err := database.NewRedisClient(ctx, cfg.Redis, log.Named("redis"))
		if err != nil {
			log.Warn("rate limiting disabled, redis unavailable", zap.Error(err))
		} else {
			defer redisClient.Close()
			limiter = middleware.NewAdvisorRateLimiter(redisClient, cfg.Advisor.RateLimit, log.Named("ratelimit"))
		}
	}

	advisor := service.NewAdvisorService(cfg.Advisor, client, log.Named("advisor"))
	router := api.NewAdvisorRouter(advisor, limiter, cfg.Server.CORSOrigins, log.Named("http"))

	port := cfg.Server.AdvisorPort
	if advisorPort != "" {
		port = advisorPort
	}
	srv := server.NewServer("advisor", net.JoinHostPort(cfg.Server.Host, port), router, cfg.Server.ShutdownTimeout, log)
	return srv.Run(ctx)
}
