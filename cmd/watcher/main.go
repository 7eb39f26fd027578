package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"pubwatch/internal/config"
	"pubwatch/internal/infra/document"
	"pubwatch/internal/infra/fetcher"
	"pubwatch/internal/infra/ledger"
	"pubwatch/internal/infra/notifier"
	"pubwatch/internal/infra/reviewer"
	workerPkg "pubwatch/internal/infra/worker"
	pkgconfig "pubwatch/internal/pkg/config"
	"pubwatch/internal/usecase/review"
)

func main() {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	logger := initLogger()

	appConfig, err := config.LoadAppConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if err := appConfig.Validate(); err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.String("author_id", appConfig.AuthorID),
		slog.String("ledger_path", appConfig.LedgerPath),
		slog.Int("page_size", appConfig.PageSize))

	svc := setupReviewService(logger, appConfig)

	switch mode := pkgconfig.LoadEnvString("RUN_MODE", "once"); mode {
	case "once":
		runOnce(logger, &svc)
	case "cron":
		runScheduled(logger, &svc)
	default:
		logger.Error("Invalid RUN_MODE",
			slog.String("mode", mode),
			slog.String("expected", "once or cron"))
		os.Exit(1)
	}
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// setupReviewService wires the watch pipeline: ledger store, literature
// client, document fetcher, reviewer backend, and mail notifier.
func setupReviewService(logger *slog.Logger, appConfig *config.AppConfig) review.Service {
	httpClient := createHTTPClient()

	inspireConfig := fetcher.DefaultConfig()
	inspireConfig.PageSize = appConfig.PageSize
	publications := fetcher.NewInspireClient(inspireConfig, httpClient)

	documents := document.NewFetcher(nil)
	store := ledger.NewExcelLedger(appConfig.LedgerPath)
	rev := createReviewer(logger)
	mail := createNotifier(logger, appConfig)

	return review.NewService(store, publications, documents, rev, mail, appConfig.AuthorID)
}

// createReviewer creates a reviewer based on the REVIEWER_TYPE environment variable.
// Missing API keys are fatal: a watch pass without working review
// credentials would burn the novelty of every new publication.
func createReviewer(logger *slog.Logger) review.Reviewer {
	reviewerType := pkgconfig.LoadEnvString("REVIEWER_TYPE", "claude")

	switch reviewerType {
	case "claude":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			logger.Error("ANTHROPIC_API_KEY is required when REVIEWER_TYPE=claude")
			os.Exit(1)
		}
		logger.Info("Using Claude API for publication review", slog.String("type", "claude"))
		return reviewer.NewClaude(apiKey)
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			logger.Error("OPENAI_API_KEY is required when REVIEWER_TYPE=openai")
			os.Exit(1)
		}
		logger.Info("Using OpenAI API for publication review", slog.String("type", "openai"))
		return reviewer.NewOpenAI(apiKey)
	case "noop":
		logger.Warn("Using no-op reviewer, emails will carry placeholder text")
		return reviewer.NewNoOp()
	default:
		logger.Error("Invalid REVIEWER_TYPE",
			slog.String("type", reviewerType),
			slog.String("expected", "claude, openai, or noop"))
		os.Exit(1)
		return nil
	}
}

// createNotifier creates a notifier based on the NOTIFIER_TYPE environment
// variable. The SMTP notifier requires complete mail addressing and the
// MAIL_APP_PASSWORD secret; both are checked here, before any fetching,
// so a misconfigured run fails without consuming novelty.
func createNotifier(logger *slog.Logger, appConfig *config.AppConfig) review.Notifier {
	notifierType := pkgconfig.LoadEnvString("NOTIFIER_TYPE", "smtp")

	switch notifierType {
	case "smtp":
		if err := appConfig.ValidateMail(); err != nil {
			logger.Error("invalid mail configuration", slog.Any("error", err))
			os.Exit(1)
		}
		password := os.Getenv("MAIL_APP_PASSWORD")
		if password == "" {
			logger.Error("MAIL_APP_PASSWORD is required when NOTIFIER_TYPE=smtp")
			os.Exit(1)
		}
		logger.Info("Using SMTP for notification delivery",
			slog.String("host", appConfig.Mail.Host),
			slog.Int("port", appConfig.Mail.Port),
			slog.String("to", appConfig.Mail.To))
		return notifier.NewSMTPNotifier(notifier.SMTPConfig{
			Host:     appConfig.Mail.Host,
			Port:     appConfig.Mail.Port,
			Username: appConfig.Mail.Username,
			Password: password,
			From:     appConfig.Mail.From,
			To:       appConfig.Mail.To,
			Timeout:  30 * time.Second,
		})
	case "noop":
		logger.Warn("Using no-op notifier, no email will be sent")
		return notifier.NewNoOpNotifier()
	default:
		logger.Error("Invalid NOTIFIER_TYPE",
			slog.String("type", notifierType),
			slog.String("expected", "smtp or noop"))
		os.Exit(1)
		return nil
	}
}

// createHTTPClient creates an HTTP client with timeouts and connection pooling.
// TLS 1.2+ is enforced for security.
func createHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12, // Enforce TLS 1.2+
			},
		},
	}
}

// runOnce executes a single watch pass and exits non-zero on failure.
// This is the default mode and matches running the watcher from cron(8)
// or a CI schedule.
func runOnce(logger *slog.Logger, svc *review.Service) {
	timeoutResult := pkgconfig.LoadEnvDuration("RUN_TIMEOUT", 20*time.Minute, pkgconfig.ValidatePositiveDuration)
	for _, warning := range timeoutResult.Warnings {
		logger.Warn("Configuration fallback applied",
			slog.String("field", "RunTimeout"),
			slog.String("warning", warning))
	}
	timeout := timeoutResult.Value.(time.Duration)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	stats, err := svc.Run(ctx)
	if err != nil {
		logger.Error("watch run failed", slog.Any("error", err))
		os.Exit(1)
	}

	logWatchStats(logger, stats)
}

// runScheduled runs the watch pass on a cron schedule with metrics and
// health endpoints, for long-lived container deployments.
func runScheduled(logger *slog.Logger, svc *review.Service) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workerMetrics := workerPkg.NewMetrics()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("poll_schedule", workerConfig.PollSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("run_timeout", workerConfig.RunTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	startMetricsServer(ctx, logger)

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	startCronWorker(logger, svc, workerConfig, workerMetrics, healthServer)
}

// startCronWorker starts the cron scheduler and runs the watch job periodically.
func startCronWorker(logger *slog.Logger, svc *review.Service, cfg *workerPkg.Config, metrics *workerPkg.Metrics, healthServer *workerPkg.HealthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.PollSchedule, func() {
		runWatchJob(logger, svc, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("watcher started", slog.String("schedule", cfg.PollSchedule), slog.String("timezone", cfg.Timezone))
	select {}
}

// runWatchJob executes a single watch pass with timeout and error handling.
func runWatchJob(logger *slog.Logger, svc *review.Service, cfg *workerPkg.Config, metrics *workerPkg.Metrics) {
	startTime := time.Now()
	metrics.RecordJobRun("started")
	logger.Info("watch run started")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RunTimeout)
	defer cancel()

	stats, err := svc.Run(ctx)
	if err != nil {
		logger.Error("watch run failed", slog.Any("error", err))
		metrics.RecordJobRun("failure")
		metrics.RecordJobDuration(time.Since(startTime).Seconds())
		return
	}

	metrics.RecordJobRun("success")
	metrics.RecordJobDuration(time.Since(startTime).Seconds())
	metrics.RecordPublications(stats.New)
	metrics.RecordMailsSent(stats.MailsSent)
	metrics.RecordLastSuccess()

	logWatchStats(logger, stats)
}

func logWatchStats(logger *slog.Logger, stats *review.RunStats) {
	logger.Info("watch run completed",
		slog.Int("fetched", stats.Fetched),
		slog.Int("known", stats.Known),
		slog.Int("new", stats.New),
		slog.Int("enrichment_errors", stats.EnrichmentErrors),
		slog.Int("mails_sent", stats.MailsSent),
		slog.Int("ledger_size", stats.LedgerSize),
		slog.Duration("duration", stats.Duration),
	)
}
