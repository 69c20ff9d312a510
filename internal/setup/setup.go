package setup

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wirechan-dev/wirechan/internal/cache"
	"github.com/wirechan-dev/wirechan/internal/config"
	"github.com/wirechan-dev/wirechan/internal/handler"
	"github.com/wirechan-dev/wirechan/internal/ingest"
	"github.com/wirechan-dev/wirechan/internal/logger"
	"github.com/wirechan-dev/wirechan/internal/service"
	"github.com/wirechan-dev/wirechan/internal/storage/fs"
	"github.com/wirechan-dev/wirechan/internal/storage/pg"
	"github.com/wirechan-dev/wirechan/internal/template"
)

// Dependencies holds all initialized application dependencies.
type Dependencies struct {
	Storage *pg.Storage
	Media   *fs.Storage
	Handler *handler.Handler
	Redis   *redis.Client
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg.Private.Pg)
	if err != nil {
		return nil, err
	}

	media, err := fs.New(cfg.Public.MediaRoot)
	if err != nil {
		return nil, err
	}

	ingestor := ingest.New(media, cfg.Public.MaxRequestBytes)

	var redisClient *redis.Client
	var replies service.ReplyCountCache
	if cfg.Private.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Private.Redis.Addr,
			Password: cfg.Private.Redis.Password,
			DB:       cfg.Private.Redis.DB,
		})
		replies = cache.NewReplies(redisClient, cfg.Public.ReplyCountTTL*time.Second)
		logger.Log.Info("reply count cache enabled", "addr", cfg.Private.Redis.Addr)
	}

	thread := service.NewThread(storage, replies, cfg.Public)
	renderer := template.New(cfg.Public.TemplateDir)

	h := handler.New(thread, ingestor, renderer, storage, cfg)

	return &Dependencies{
		Storage: storage,
		Media:   media,
		Handler: h,
		Redis:   redisClient,
	}, nil
}
