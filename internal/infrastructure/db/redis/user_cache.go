package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/taskly/task-system/internal/core/domain"
	"github.com/taskly/task-system/internal/core/ports"
)

const defaultUserTTL = time.Minute

// cachedUser is the cache document. The password hash is deliberately not
// cached; the principal attached to a request never needs it.
type cachedUser struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// UserCache is a read-through cache in front of a UserRepository, used by
// route authentication so principal resolution does not hit the primary
// store on every request. Cache failures degrade to the repository.
// Key format: user:<id>
type UserCache struct {
	client *redis.Client
	repo   ports.UserRepository
	ttl    time.Duration
	log    zerolog.Logger
}

func NewUserCache(client *redis.Client, repo ports.UserRepository, ttl time.Duration, log zerolog.Logger) *UserCache {
	if ttl <= 0 {
		ttl = defaultUserTTL
	}
	return &UserCache{client: client, repo: repo, ttl: ttl, log: log}
}

// FindByID returns the cached user when present, otherwise loads it from the
// repository and caches it. Only the not-found outcome from the repository
// is surfaced as domain.ErrUserNotFound; it is never cached, so a freshly
// created account is visible immediately.
func (c *UserCache) FindByID(ctx context.Context, id string) (*domain.User, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Result()
	if err == nil {
		var doc cachedUser
		if jsonErr := json.Unmarshal([]byte(raw), &doc); jsonErr == nil {
			return &domain.User{
				ID:        doc.ID,
				Name:      doc.Name,
				Email:     doc.Email,
				Role:      doc.Role,
				CreatedAt: doc.CreatedAt,
				UpdatedAt: doc.UpdatedAt,
			}, nil
		}
	} else if err != redis.Nil {
		c.log.Warn().Err(err).Msg("user cache read failed, falling back to store")
	}

	user, err := c.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	doc := cachedUser{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if data, jsonErr := json.Marshal(doc); jsonErr == nil {
		if setErr := c.client.Set(ctx, c.key(id), data, c.ttl).Err(); setErr != nil {
			c.log.Warn().Err(setErr).Msg("failed to set user cache key")
		}
	}

	return user, nil
}

func (c *UserCache) key(id string) string {
	return fmt.Sprintf("user:%s", id)
}
