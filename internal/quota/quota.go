// Package quota enforces the daily generation caps: an individual cap per
// authenticated user and one larger pooled cap shared by all anonymous
// callers. Anonymous requests are deliberately keyed as a single pool, not
// per IP; the Identity seam is where a per-origin policy would slot in.
//
// The check is best-effort: counting and accepting are not serialized, so
// two concurrent requests from the same identity can both pass the check
// before either insert lands. That benign race is tolerated by design, and
// a counter read failure fails open so a storage hiccup never blocks
// content generation.
package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Identity is the quota subject: a user id, or the shared anonymous pool
// when UserID is nil.
type Identity struct {
	UserID *string
}

// Anonymous reports whether this identity belongs to the shared pool.
func (i Identity) Anonymous() bool { return i.UserID == nil || *i.UserID == "" }

// Key returns the stable counter key for the identity.
func (i Identity) Key() string {
	if i.Anonymous() {
		return "anon"
	}
	return "user:" + *i.UserID
}

// Limits configures the daily caps.
type Limits struct {
	PerUser  int // cap per authenticated user
	AnonPool int // cap shared by all anonymous callers
}

// Counter counts generations within the current UTC calendar day and
// records accepted ones. Implementations need not be transactional with
// the acceptance itself.
type Counter interface {
	// CountToday returns how many generations the identity has produced
	// since UTC midnight.
	CountToday(ctx context.Context, id Identity) (int64, error)
	// Incr records one accepted generation. Implementations backed by the
	// content store itself may treat this as a no-op.
	Incr(ctx context.Context, id Identity) error
}

// ExceededError is the normal rejected-request outcome when an identity is
// over its daily cap. Not an internal failure: handlers map it to a 429
// with the remaining-quota message.
type ExceededError struct {
	Used      int64
	Limit     int
	Anonymous bool
}

func (e *ExceededError) Error() string {
	if e.Anonymous {
		return fmt.Sprintf("anonymous generation pool exhausted (%d/%d today); sign in for a personal allowance", e.Used, e.Limit)
	}
	return fmt.Sprintf("daily generation limit reached (%d/%d today)", e.Used, e.Limit)
}

// Limiter combines a Counter with the configured Limits.
type Limiter struct {
	Counter Counter
	Limits  Limits
}

// Check returns nil when the identity may generate, or an *ExceededError
// when the cap is spent. A counter read error is logged and the request is
// allowed through.
func (l *Limiter) Check(ctx context.Context, id Identity) error {
	limit := l.Limits.PerUser
	if id.Anonymous() {
		limit = l.Limits.AnonPool
	}
	if limit <= 0 {
		return nil
	}
	used, err := l.Counter.CountToday(ctx, id)
	if err != nil {
		log.Warn().Err(err).Str("identity", id.Key()).Msg("quota count failed; allowing request")
		return nil
	}
	if used >= int64(limit) {
		return &ExceededError{Used: used, Limit: limit, Anonymous: id.Anonymous()}
	}
	return nil
}

// Record notes an accepted generation; errors are logged, never fatal.
func (l *Limiter) Record(ctx context.Context, id Identity) {
	if err := l.Counter.Incr(ctx, id); err != nil {
		log.Warn().Err(err).Str("identity", id.Key()).Msg("quota increment failed")
	}
}

// DayStart returns the UTC calendar-day lower bound for now.
func DayStart(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextDayStart returns the next UTC midnight after now, i.e. when the
// current window resets.
func NextDayStart(now time.Time) time.Time {
	return DayStart(now).Add(24 * time.Hour)
}
