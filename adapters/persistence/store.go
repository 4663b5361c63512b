package persistence

import (
	"context"
	"fmt"

	"github.com/khoahotran/namelookup/internal/config"
	"github.com/khoahotran/namelookup/internal/domain/user"
	"github.com/khoahotran/namelookup/pkg/logger"
)

// UserStore is an opened record store together with its teardown.
type UserStore interface {
	user.Repository
	user.Writer
}

// OpenUserStore connects the backend named by store.driver. The returned
// close function releases the underlying client.
func OpenUserStore(ctx context.Context, cfg config.Config, log logger.Logger) (UserStore, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return NewPostgresUserRepo(pool, cfg.Store.Collection, log), pool.Close, nil

	case config.DriverFirestore:
		client, err := NewFirestoreClient(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Error("Closing Firestore client failed", err)
			}
		}
		return NewFirestoreUserRepo(client, cfg.Store.Collection, log), closeFn, nil

	case config.DriverRedis:
		rdb, err := NewRedisClient(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := rdb.Close(); err != nil {
				log.Error("Closing Redis client failed", err)
			}
		}
		return NewRedisUserRepo(rdb, cfg.Store.Collection, log), closeFn, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
