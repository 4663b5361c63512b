package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/namelookup/internal/domain/user"
	"github.com/khoahotran/namelookup/pkg/logger"
)

// RedisUserRepo keeps a collection as one hash: field is the user ID, value
// is the JSON encoded record.
type RedisUserRepo struct {
	rdb    redis.Cmdable
	key    string
	logger logger.Logger
}

func NewRedisUserRepo(rdb redis.Cmdable, collection string, log logger.Logger) *RedisUserRepo {
	if collection == "" {
		collection = "users"
	}
	return &RedisUserRepo{rdb: rdb, key: collection, logger: log}
}

type redisUserRecord struct {
	DisplayName *string   `json:"displayName"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FindAll returns the hash's records ordered by user ID; HGETALL itself has
// no stable order.
func (r *RedisUserRepo) FindAll(ctx context.Context) ([]*user.User, error) {
	fields, err := r.rdb.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("error when read hash %s: %w", r.key, err)
	}

	ids := make([]string, 0, len(fields))
	for id := range fields {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	users := make([]*user.User, 0, len(ids))
	for _, id := range ids {
		u, err := decodeRedisUser(id, fields[id])
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	r.logger.Debug("Fetched users", zap.String("key", r.key), zap.Int("count", len(users)))
	return users, nil
}

func decodeRedisUser(id, raw string) (*user.User, error) {
	var rec redisUserRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("%w: record %q is not valid JSON: %v", user.ErrMalformedRecord, id, err)
	}
	if rec.DisplayName == nil {
		return nil, user.MalformedRecordError(id, "displayName")
	}
	return &user.User{
		ID:          id,
		DisplayName: *rec.DisplayName,
		Email:       rec.Email,
		CreatedAt:   rec.CreatedAt,
	}, nil
}

func (r *RedisUserRepo) Save(ctx context.Context, u *user.User) (bool, error) {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	displayName := u.DisplayName
	raw, err := json.Marshal(redisUserRecord{DisplayName: &displayName, Email: u.Email, CreatedAt: createdAt})
	if err != nil {
		return false, fmt.Errorf("marshal user %s: %w", u.ID, err)
	}

	created, err := r.rdb.HSetNX(ctx, r.key, u.ID, raw).Result()
	if err != nil {
		return false, fmt.Errorf("error when write user %s: %w", u.ID, err)
	}
	return created, nil
}
