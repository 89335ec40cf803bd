package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pachgroup/pachsite/internal"
	"github.com/pachgroup/pachsite/internal/config"
	"github.com/pachgroup/pachsite/internal/logging"
	"github.com/pachgroup/pachsite/pkg"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	envFile := flag.String("env-file", ".env", "path for the optional .env file with secrets")
	hashPassword := flag.String("hash-password", "", "print the bcrypt hash of the given admin password (for ADMIN_PASSWORD_HASH) and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := pkg.HashPassword(*hashPassword)
		if err != nil {
			log.Fatalf("hash password: %s", err)
		}
		fmt.Println(hash)
		return
	}

	fmt.Println("starting ...")

	// real env vars win over the .env file
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("failed to load env file [%s]: %s", *envFile, err)
	}

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sentryDSN,
		SentryServerName: "pachsite-service",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatalln("session signing secret not set. use JWT_SECRET")
	}

	adminUsername := os.Getenv("ADMIN_USERNAME")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	adminPasswordHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminUsername == "" || (adminPassword == "" && adminPasswordHash == "") {
		log.Warnln("admin credentials not fully set. use ADMIN_USERNAME and ADMIN_PASSWORD (or ADMIN_PASSWORD_HASH)")
	}

	postgresPassword := os.Getenv("POSTGRES_PASSWORD")
	if cfg.StoreConfigured() && postgresPassword == "" {
		log.Warnln("postgres password not set. use POSTGRES_PASSWORD")
	}

	redisPassword := os.Getenv("REDIS_PASS")
	if cfg.RedisConfigured() && redisPassword == "" {
		log.Warnln("redis password not set. use REDIS_PASS")
	}

	if otelServiceName := os.Getenv("OTEL_SERVICE_NAME"); otelServiceName == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             versionInfo,
			AdminUsername:           adminUsername,
			AdminPassword:           adminPassword,
			AdminPasswordHash:       adminPasswordHash,
			JWTSecret:               jwtSecret,
			PostgresPassword:        postgresPassword,
			RedisPassword:           redisPassword,
			DGISApiKey:              os.Getenv("DGIS_API_KEY"),
			TelegramBotToken:        os.Getenv("TELEGRAM_BOT_TOKEN"),
			TelegramChatIDs:         os.Getenv("TELEGRAM_CHAT_ID"),
			HoneycombTracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	server.GracefulShutdown()
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(stdout)), nil
}
