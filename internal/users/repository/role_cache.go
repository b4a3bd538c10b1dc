package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	roleKeyPrefix    = "liminal:role:"    // liminal:role:{email} -> stored role ("" for members and unknown emails)
	versionKeyPrefix = "liminal:rolever:" // liminal:rolever:{email} -> invalidation counter
)

var errStaleRole = errors.New("role changed while loading")

// RoleCache keeps recently looked-up roles in Redis so the admin guard does
// not hit the database on every privileged request.
type RoleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRoleCache(client *redis.Client, ttl time.Duration) *RoleCache {
	return &RoleCache{client: client, ttl: ttl}
}

// Get returns the cached role and whether an entry existed.
func (c *RoleCache) Get(ctx context.Context, email string) (string, bool, error) {
	role, err := c.client.Get(ctx, roleKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get cached role: %w", err)
	}
	return role, true, nil
}

// Version returns the invalidation counter for email. Read it before loading
// the role from the store and hand it to SetIfVersion.
func (c *RoleCache) Version(ctx context.Context, email string) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(email)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get role version: %w", err)
	}
	return v, nil
}

// SetIfVersion caches role only if no invalidation happened since version
// was read. It reports whether the entry was written.
func (c *RoleCache) SetIfVersion(ctx context.Context, email, role string, version int64) (bool, error) {
	vkey := versionKey(email)
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, vkey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != version {
			return errStaleRole
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, roleKey(email), role, c.ttl)
			return nil
		})
		return err
	}, vkey)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errStaleRole), errors.Is(err, redis.TxFailedErr):
		return false, nil
	default:
		return false, fmt.Errorf("cache role: %w", err)
	}
}

// Invalidate drops the cached roles and bumps their versions so in-flight
// lookups cannot write back what they read before the change.
func (c *RoleCache) Invalidate(ctx context.Context, emails ...string) error {
	if len(emails) == 0 {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		for _, e := range emails {
			p.Del(ctx, roleKey(e))
			p.Incr(ctx, versionKey(e))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate cached role: %w", err)
	}
	return nil
}

func roleKey(email string) string {
	return roleKeyPrefix + email
}

func versionKey(email string) string {
	return versionKeyPrefix + email
}
