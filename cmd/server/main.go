package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/gatekeeper/modules/user"
	"github.com/dmitrymomot/gatekeeper/pkg/auth"
	"github.com/dmitrymomot/gatekeeper/pkg/config"
	"github.com/dmitrymomot/gatekeeper/pkg/email"
	"github.com/dmitrymomot/gatekeeper/pkg/httpserver"
	"github.com/dmitrymomot/gatekeeper/pkg/logger"
	"github.com/dmitrymomot/gatekeeper/pkg/mongo"
	"github.com/dmitrymomot/gatekeeper/pkg/token"
)

func main() {
	var (
		logCfg    logger.Config
		mongoCfg  mongo.Config
		emailCfg  email.Config
		authCfg   auth.Config
		tokenCfg  token.Config
		moduleCfg user.Config
		serverCfg httpserver.Config
	)
	config.MustLoad(&logCfg)
	config.MustLoad(&mongoCfg)
	config.MustLoad(&emailCfg)
	config.MustLoad(&authCfg)
	config.MustLoad(&tokenCfg)
	config.MustLoad(&moduleCfg)
	config.MustLoad(&serverCfg)

	log := logger.NewFromConfig(logCfg, logger.WithAttr(slog.String("app", "gatekeeper")))

	if err := run(context.Background(), log, mongoCfg, emailCfg, authCfg, tokenCfg, moduleCfg, serverCfg); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	log *slog.Logger,
	mongoCfg mongo.Config,
	emailCfg email.Config,
	authCfg auth.Config,
	tokenCfg token.Config,
	moduleCfg user.Config,
	serverCfg httpserver.Config,
) error {
	db, err := mongo.NewDatabase(ctx, mongoCfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()

	storage := user.NewMongoStorage(db)
	if err := storage.EnsureIndexes(ctx); err != nil {
		return err
	}

	hasher, err := auth.NewHasher(authCfg.OTPSecret, auth.WithBcryptCost(authCfg.BcryptCost))
	if err != nil {
		return err
	}

	otp, err := auth.NewOTPGenerator(authCfg.OTPDigits, authCfg.OTPTTL)
	if err != nil {
		return err
	}

	tokens, err := token.New(tokenCfg)
	if err != nil {
		return err
	}

	mailer, err := newSender(emailCfg, moduleCfg, log)
	if err != nil {
		return err
	}

	svc := auth.NewService(storage, hasher, otp, tokens, mailer, auth.WithLogger(log))
	mod := user.NewModule(svc, moduleCfg, user.WithModuleLogger(log))

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Mount("/users", mod.Router())

	return httpserver.New(serverCfg, httpserver.WithLogger(log)).Run(ctx, r)
}

// newSender picks the outbound mail transport: Postmark when a server
// token is configured, otherwise the file-based dev sender so that local
// environments can read passcodes from disk.
func newSender(cfg email.Config, moduleCfg user.Config, log *slog.Logger) (email.Sender, error) {
	if cfg.PostmarkServerToken != "" && !moduleCfg.Dev() {
		return email.NewPostmarkSender(cfg)
	}

	log.Warn("postmark is not configured, writing emails to disk",
		slog.String("dir", cfg.DevOutputDir))
	return email.NewDevSender(cfg.DevOutputDir), nil
}
