package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/2beens/bedgemon/internal"
	"github.com/2beens/bedgemon/internal/config"
	"github.com/2beens/bedgemon/internal/logging"
	"github.com/2beens/bedgemon/pkg"

	log "github.com/sirupsen/logrus"
)

const serviceName = "bedgemon-service"

// secrets never live in the TOML config
type secrets struct {
	appSecretHash    string
	redisPassword    string
	postgresPassword string
	sentryDSN        string
	honeycombEnabled bool
}

func secretsFromEnv() secrets {
	return secrets{
		appSecretHash:    os.Getenv("BEDGEMON_APP_SECRET_HASH"),
		redisPassword:    os.Getenv("BEDGEMON_REDIS_PASS"),
		postgresPassword: os.Getenv("BEDGEMON_POSTGRES_PASS"),
		sentryDSN:        os.Getenv("SENTRY_DSN"),
		honeycombEnabled: os.Getenv("HONEYCOMB_ENABLED") == "true",
	}
}

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %s\n", err)
		os.Exit(1)
	}

	versionInfo, versionErr := tryGetLastCommitHash()
	if versionErr != nil {
		versionInfo = "dev"
	}

	sec := secretsFromEnv()
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.LogsPath,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
		Environment:   cfg.Environment,
		ServiceName:   serviceName,
		SentryEnabled: cfg.SentryEnabled,
		SentryDSN:     sec.sentryDSN,
		SentryRelease: versionInfo,
	})

	log.Warnf("---->> running in [%s] environment, version [%s]", *env, versionInfo)
	if versionErr != nil {
		log.Tracef("failed to get last commit hash / version info: %s", versionErr)
	}
	log.Debugf("using port: %d, metrics port: %d", cfg.Port, cfg.MetricsPort)
	warnAboutMissingSecrets(cfg, sec)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             versionInfo,
			AppSecretHash:           sec.appSecretHash,
			RedisPassword:           sec.redisPassword,
			PostgresPassword:        sec.postgresPassword,
			HoneycombTracingEnabled: sec.honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	<-ctx.Done()
	log.Warnln("termination signal received, shutting down ...")
	server.GracefulShutdown()
}

func warnAboutMissingSecrets(cfg *config.Config, sec secrets) {
	if sec.appSecretHash == "" {
		log.Errorf("app secret hash not set, requests are not checked for a secret. use BEDGEMON_APP_SECRET_HASH")
	}
	if sec.redisPassword == "" && cfg.RedisHost != "" {
		log.Warnln("redis password not set. use BEDGEMON_REDIS_PASS")
	}
	if cfg.SentryEnabled && sec.sentryDSN == "" {
		log.Warnln("sentry enabled but SENTRY_DSN env var not set")
	}
	if os.Getenv("OTEL_SERVICE_NAME") == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}
	if !sec.honeycombEnabled {
		log.Debugln("honeycomb tracing disabled")
	} else if os.Getenv("HONEYCOMB_API_KEY") == "" {
		log.Warnln("HONEYCOMB_API_KEY env var not set")
	}
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--short", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pkg.BytesToString(stdout)), nil
}
