package pagecache

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Keys for cached rendered pages. Write paths invalidate exactly the
// pages whose content they change; nothing here re-renders anything.
const (
	KeyHome         = "page:home"
	KeyRecent       = "page:recent"
	KeyAdminPending = "page:admin:pending"
	KeyAdminFlagged = "page:admin:flagged"

	companyKeyPrefix = "page:company:"
	accountKeyPrefix = "page:account:"
)

func CompanyKey(slug string) string {
	return companyKeyPrefix + slug
}

func AccountKey(userID string) string {
	return accountKeyPrefix + userID
}

//go:generate mockgen -source=pagecache.go -destination=mock/pagecache_mock.go -package=mock
type Invalidator interface {
	Invalidate(ctx context.Context, keys ...string) error
}

type invalidator struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// NewInvalidator returns a redis-backed page cache invalidator. A nil
// client yields a no-op invalidator so services never have to nil-check.
func NewInvalidator(rdb *redis.Client, logger ...*zap.Logger) Invalidator {
	l := zap.L().Named("pagecache")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("pagecache")
	}
	return &invalidator{rdb: rdb, logger: l}
}

func (i *invalidator) Invalidate(ctx context.Context, keys ...string) error {
	if i.rdb == nil || len(keys) == 0 {
		return nil
	}

	if err := i.rdb.Del(ctx, keys...).Err(); err != nil {
		i.logger.Error("failed to invalidate page cache",
			zap.Strings("keys", keys),
			zap.Error(err),
		)
		return err
	}

	i.logger.Debug("page cache invalidated", zap.Strings("keys", keys))
	return nil
}
