package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"churchapp/internal/config"
	"churchapp/internal/domain"
	"churchapp/internal/mailer"
	"churchapp/internal/observability/logging"
	"churchapp/internal/observability/metrics"
	"churchapp/internal/service/impl"
	"churchapp/internal/store"
	httpx "churchapp/internal/transport/http"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	_ = godotenv.Load()

	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	logger := logging.NewLogger(logging.Config{
		ServiceName: "churchapp",
		Environment: env,
		Level:       os.Getenv("LOG_LEVEL"),
	})
	slog.SetDefault(logger)

	logger.Info("starting service")

	cfg := config.Load()
	metrics.MustRegister("churchapp")

	gcfg := &gorm.Config{}
	if cfg.LogSQL {
		gcfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}
	gdb, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gcfg)
	if err != nil {
		logger.Error("gorm open", "error", err)
		os.Exit(1)
	}

	err = gdb.AutoMigrate(
		&domain.UserProfile{},
		&domain.AuthToken{},
		&domain.ChurchBranch{},
		&domain.Event{},
		&domain.Sermon{},
		&domain.Tag{},
		&domain.Post{},
		&domain.MediaAsset{},
		&domain.Transaction{},
		&domain.Donation{},
	)
	if err != nil {
		logger.Error("auto migrate", "error", err)
		os.Exit(1)
	}

	st := store.New(gdb)

	var transport mailer.Transport
	if cfg.MailEnabled && cfg.SMTPHost != "" {
		transport = &mailer.SMTPTransport{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.MailFrom,
		}
	} else {
		logger.Warn("outbound mail disabled, logging messages instead")
		transport = mailer.LogTransport{}
	}
	mail := mailer.New(mailer.Config{From: cfg.MailFrom}, transport)

	pw := impl.NewPasswordServiceArgon2id()
	tokens := impl.NewTokenService(st, cfg.TokenKeyBytes)
	links := impl.NewResetLinkSigner([]byte(cfg.ResetSecret), cfg.ResetTokenTTL, cfg.SiteDomain)
	auth := impl.NewAuthServiceImpl(st, pw, tokens, mail, links, cfg.OTPLength)

	router := httpx.NewRouter(httpx.Options{
		Auth:            auth,
		Tokens:          tokens,
		Church:          impl.NewChurchService(st),
		Content:         impl.NewContentService(st),
		Giving:          impl.NewGivingService(st, impl.OfflineGateway{}),
		Links:           links,
		CORSOrigins:     cfg.CORSOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("churchapp listening", "addr", srv.Addr, "site_domain", cfg.SiteDomain)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
