package router_test

import (
	"context"
	"testing"

	"petcare-web/internal/adapters/storage/postgres"
	"petcare-web/internal/platform/config"
	"petcare-web/internal/router"
	"petcare-web/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpenSessionStore_DefaultsToMemory(t *testing.T) {
	cfg := &config.Config{}

	store, closeFn, err := router.OpenSessionStore(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, store)
	assert.NoError(t, closeFn())
}

func TestOpenSessionStore_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &config.Config{}
	cfg.Session.Store = config.StoreRedis
	cfg.Redis.Addr = mr.Addr()

	ctx := context.Background()
	store, closeFn, err := router.OpenSessionStore(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, store.Set(ctx, "sid", session.KeyViewMode, session.ViewMap))
	v, ok, err := store.Get(ctx, "sid", session.KeyViewMode)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, session.ViewMap, v)
}

func TestOpenSessionStore_PostgresWithoutDSN(t *testing.T) {
	cfg := &config.Config{}
	cfg.Session.Store = config.StorePostgres

	_, _, err := router.OpenSessionStore(context.Background(), cfg, zap.NewNop())
	assert.ErrorIs(t, err, postgres.ErrNotConfigured)
}

func TestOpenSessionStore_Unknown(t *testing.T) {
	cfg := &config.Config{}
	cfg.Session.Store = "etcd"

	_, _, err := router.OpenSessionStore(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
