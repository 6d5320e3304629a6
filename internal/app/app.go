package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Ihido/inside-bot/internal/config"
	"github.com/Ihido/inside-bot/internal/infra/telegram"
	"github.com/Ihido/inside-bot/internal/repo/memory"
	"github.com/Ihido/inside-bot/internal/repo/postgres"
	redisrepo "github.com/Ihido/inside-bot/internal/repo/redis"
	"github.com/Ihido/inside-bot/internal/services/access"
	"github.com/Ihido/inside-bot/internal/services/moderation"
	"github.com/Ihido/inside-bot/internal/services/notify"
	"github.com/Ihido/inside-bot/internal/services/wizard"
)

type App struct {
	cfg    config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *goredis.Client
	tg     *telegram.Client

	accessService     *access.Service
	notifyService     *notify.Service
	wizardService     *wizard.Service
	moderationService *moderation.Service
}

func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := postgres.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Warn("postgres unavailable, continuing without database", zap.Error(err))
		db = nil
	}
	if err := postgres.EnsureSchema(context.Background(), db); err != nil {
		logger.Warn("ensure submissions schema", zap.Error(err))
	}
	submissionsRepo := postgres.NewSubmissionsRepo(db)

	// Drafts live in redis when it is configured, otherwise in process
	// memory. A restart then loses in-flight flows, nothing else.
	var drafts wizard.Drafts = memory.NewDraftRepo()
	redisClient, err := redisrepo.NewClient(context.Background(), cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, keeping drafts in memory", zap.Error(err))
		redisClient = nil
	}
	if redisClient != nil {
		drafts = redisrepo.NewDraftRepo(redisClient, time.Duration(cfg.DraftTTLHours)*time.Hour)
	}

	app := &App{
		cfg:    cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	app.tg, err = telegram.NewClient(cfg.BotToken, cfg.PollTimeoutSeconds, logger, app.routeUpdate)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("create telegram client: %w", err)
	}

	app.accessService = access.NewService(cfg.AdminIDs)
	app.notifyService = notify.NewService(app.tg, logger)
	app.wizardService = wizard.NewService(drafts, submissionsRepo, app.notifyService, app.accessService)
	app.moderationService = moderation.NewService(submissionsRepo, app.notifyService)

	return app, nil
}

func (a *App) Run(ctx context.Context) error {
	defer a.close()
	return a.tg.Start(ctx)
}

func (a *App) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("close postgres", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("close redis", zap.Error(err))
		}
	}
}
