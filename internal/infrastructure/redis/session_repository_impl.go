package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/internal/domain/repository"
)

func sessionKey(userID string) string {
	return "user:session:" + userID
}

// SessionRepository keeps one hash per user under user:session:<id>.
type SessionRepository struct {
	rdb *goredis.Client
}

func NewSessionRepository(rdb *goredis.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

func sessionFields(s *entity.Session) map[string]any {
	return map[string]any{
		"sid":        s.SID,
		"user_id":    s.UserID,
		"name":       s.Name,
		"email":      s.Email,
		"image":      s.Image,
		"role":       string(s.Role),
		"created_at": s.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (r *SessionRepository) Save(ctx context.Context, s *entity.Session, ttl time.Duration) error {
	key := sessionKey(s.UserID)
	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, sessionFields(s))
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// ARGV: expected sid, ttl in ms, then field/value pairs of the new session.
var rotateScript = goredis.NewScript(`
if redis.call("HGET", KEYS[1], "sid") ~= ARGV[1] then
  return 0
end
redis.call("DEL", KEYS[1])
redis.call("HSET", KEYS[1], unpack(ARGV, 3))
redis.call("PEXPIRE", KEYS[1], ARGV[2])
return 1
`)

// Rotate replaces the session of s.UserID only while its sid is still
// oldSID. A concurrent rotation or logout makes it return ErrNotFound.
func (r *SessionRepository) Rotate(ctx context.Context, oldSID string, s *entity.Session, ttl time.Duration) error {
	args := []any{oldSID, ttl.Milliseconds()}
	for k, v := range sessionFields(s) {
		args = append(args, k, v)
	}
	n, err := rotateScript.Run(ctx, r.rdb, []string{sessionKey(s.UserID)}, args...).Int()
	if err != nil {
		return fmt.Errorf("rotate session: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, userID string) (*entity.Session, error) {
	data, err := r.rdb.HGetAll(ctx, sessionKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if len(data) == 0 {
		return nil, repository.ErrNotFound
	}
	created, _ := time.Parse(time.RFC3339Nano, data["created_at"])
	return &entity.Session{
		SID:       data["sid"],
		UserID:    data["user_id"],
		Name:      data["name"],
		Email:     data["email"],
		Image:     data["image"],
		Role:      entity.Role(data["role"]),
		CreatedAt: created,
	}, nil
}

func (r *SessionRepository) Delete(ctx context.Context, userID string) error {
	if err := r.rdb.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

var _ repository.SessionRepository = (*SessionRepository)(nil)
