// Package idempotency stores one-time-use keys that guard externally
// triggered writes against duplicate execution.
package idempotency

import (
	"context"
	"fmt"
	"time"

	postgres "github.com/heartmarshall/culops-pantry/internal/adapter/postgres"
	"github.com/heartmarshall/culops-pantry/internal/domain"
)

// Repo provides idempotency key persistence backed by PostgreSQL.
type Repo struct {
	db  postgres.Querier
	ttl time.Duration
	now func() time.Time
}

// Option configures a Repo.
type Option func(*Repo)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Repo) { r.now = now }
}

// New creates a new idempotency repository. Keys live for ttl after they are added.
func New(db postgres.Querier, ttl time.Duration, opts ...Option) *Repo {
	r := &Repo{db: db, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddIdempotencyKey records key for action, expiring after the configured TTL.
// An expired row for the same key and action counts as absent and is
// refreshed in place. A live one fails with a ServerError.
func (r *Repo) AddIdempotencyKey(ctx context.Context, key, action string) error {
	var errs []domain.FieldError
	if key == "" {
		errs = append(errs, domain.FieldError{Field: "idempotency_key", Message: "required"})
	}
	if action == "" {
		errs = append(errs, domain.FieldError{Field: "idempotent_action", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}

	now := r.now().UTC()

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`INSERT INTO idempotency_keys (idempotency_key, idempotent_action, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (idempotency_key, idempotent_action) DO UPDATE SET expires_at = EXCLUDED.expires_at
		WHERE idempotency_keys.expires_at <= $4`,
		key, action, now.Add(r.ttl), now,
	)
	if err != nil {
		return postgres.WrapError(err, "add idempotency key %q for action %q", key, action)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewServerError(domain.ErrAlreadyExists,
			fmt.Sprintf("add idempotency key %q for action %q: key is live", key, action))
	}
	return nil
}

// IdempotencyKeyExists reports whether key has an unexpired row for any action.
func (r *Repo) IdempotencyKeyExists(ctx context.Context, key string) (bool, error) {
	now := r.now().UTC()

	var exists bool
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM idempotency_keys WHERE idempotency_key = $1 AND expires_at > $2)`,
		key, now,
	).Scan(&exists)
	if err != nil {
		return false, postgres.WrapError(err, "check idempotency key %q", key)
	}
	return exists, nil
}

// DeleteExpired removes keys whose expiry is not in the future and returns
// how many were removed.
func (r *Repo) DeleteExpired(ctx context.Context) (int64, error) {
	now := r.now().UTC()

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`DELETE FROM idempotency_keys WHERE expires_at <= $1`,
		now,
	)
	if err != nil {
		return 0, postgres.WrapError(err, "delete expired idempotency keys")
	}
	return tag.RowsAffected(), nil
}
