package cli

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"trivia-party/internal/app"
	"trivia-party/internal/catalog"
	"trivia-party/internal/config"
	"trivia-party/internal/infra/file"
	"trivia-party/internal/infra/memory"
	pgloader "trivia-party/internal/infra/postgres"
	rediscache "trivia-party/internal/infra/redis"
)

// subjectSource resolves where subjects come from and how they are cached.
// The returned close func releases any connections.
func subjectSource(ctx context.Context, cfg config.Config, log *zap.Logger) (app.SubjectRepository, func(), error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var loader memory.SubjectLoader
	switch {
	case cfg.Postgres.URL != "":
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, closeAll, err
		}
		closers = append(closers, pool.Close)
		loader = pgloader.NewSubjectLoader(pool)
		log.Info("catalog source", zap.String("source", "postgres"))
	case cfg.Catalog.Path != "":
		loader = file.NewSubjectLoader(cfg.Catalog.Path)
		log.Info("catalog source", zap.String("source", "file"), zap.String("path", cfg.Catalog.Path))
	default:
		loader = memory.NewStaticSubjectLoader(catalog.Builtin())
		log.Info("catalog source", zap.String("source", "builtin"))
	}

	ttl := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		closers = append(closers, func() { _ = client.Close() })
		ttl = config.TTLDuration(cfg.Redis.TTL, ttl)
		return rediscache.NewSubjectRepository(client, loader, ttl), closeAll, nil
	}
	return memory.NewSubjectRepository(loader, ttl), closeAll, nil
}

// newService loads settings and the catalog into a GameService.
func newService(ctx context.Context, cfg config.Config, log *zap.Logger) (*app.GameService, func(), error) {
	settings, err := cfg.Settings()
	if err != nil {
		return nil, func() {}, err
	}
	repo, closeFn, err := subjectSource(ctx, cfg, log)
	if err != nil {
		closeFn()
		return nil, func() {}, err
	}
	return app.NewGameService(repo, settings, log), closeFn, nil
}
