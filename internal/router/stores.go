package router

import (
	"context"
	"fmt"

	mem "petcare-web/internal/adapters/storage/memory"
	pg "petcare-web/internal/adapters/storage/postgres"
	rds "petcare-web/internal/adapters/storage/redis"
	"petcare-web/internal/platform/config"
	"petcare-web/internal/session"

	"go.uber.org/zap"
)

// OpenSessionStore elige el store según SESSION_STORE.
// La función devuelta libera la conexión (no-op para memory).
func OpenSessionStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (session.Store, func() error, error) {
	switch cfg.Session.Store {
	case config.StoreRedis:
		client := rds.NewClient(rds.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rds.Ping(ctx, client); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis session store: %w", err)
		}
		log.Info("session store ready", zap.String("store", "redis"), zap.String("addr", cfg.Redis.Addr))
		return rds.NewSessionStore(client), client.Close, nil

	case config.StorePostgres:
		db, err := pg.Open(cfg.DB.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres session store: %w", err)
		}
		s := pg.NewSessionStore(db)
		if err := s.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("postgres session store: %w", err)
		}
		log.Info("session store ready", zap.String("store", "postgres"))
		return s, db.Close, nil

	case config.StoreMemory, "":
		log.Info("session store ready", zap.String("store", "memory"))
		return mem.NewSessionStore(), func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.Session.Store)
}
