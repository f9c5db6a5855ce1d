package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/harborlight/harborlight/internal/authz"
)

// ActorProvider serves actor snapshots for permission checks. Snapshots are
// cached in redis with a bounded TTL so a demotion or suspension takes
// effect within that window at the latest; lifecycle mutations call
// Invalidate to shrink the window to zero for the affected account.
type ActorProvider struct {
	client *redis.Client
	repo   Repository
	ttl    time.Duration
	now    func() time.Time
}

// NewActorProvider constructs an ActorProvider. ttl bounds snapshot
// staleness; the reference setting is five minutes.
func NewActorProvider(client *redis.Client, repo Repository, ttl time.Duration) *ActorProvider {
	return &ActorProvider{client: client, repo: repo, ttl: ttl, now: time.Now}
}

func (p *ActorProvider) cacheKey(userID int64) string {
	return "actor:" + strconv.FormatInt(userID, 10)
}

// Actor returns the snapshot for the given account, from cache when fresh,
// otherwise re-read from the database and stamped with the read time.
func (p *ActorProvider) Actor(ctx context.Context, userID int64) (authz.Actor, error) {
	// A cache miss or a redis error both fall through to the database read;
	// redis trouble must not turn into an authorization failure.
	if cached, err := p.client.Get(ctx, p.cacheKey(userID)).Bytes(); err == nil {
		var actor authz.Actor
		if json.Unmarshal(cached, &actor) == nil && !actor.StaleAfter(p.now(), p.ttl) {
			return actor, nil
		}
	}
	return p.Refresh(ctx, userID)
}

// Refresh re-reads the account from the source of truth and replaces the
// cached snapshot.
func (p *ActorProvider) Refresh(ctx context.Context, userID int64) (authz.Actor, error) {
	account, err := p.repo.FindByID(ctx, userID)
	if err != nil {
		return authz.Actor{}, fmt.Errorf("auth: load actor %d: %w", userID, err)
	}
	actor := account.Actor(p.now())
	if data, err := json.Marshal(actor); err == nil {
		_ = p.client.Set(ctx, p.cacheKey(userID), data, p.ttl).Err()
	}
	return actor, nil
}

// Invalidate drops the cached snapshot so the next check re-reads the
// account. Called after every role or lifecycle mutation.
func (p *ActorProvider) Invalidate(ctx context.Context, userID int64) error {
	err := p.client.Del(ctx, p.cacheKey(userID)).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

// TTL exposes the configured staleness bound.
func (p *ActorProvider) TTL() time.Duration {
	return p.ttl
}
