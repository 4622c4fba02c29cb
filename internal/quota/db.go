// Package quota – content-store-derived counter.
package quota

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/phototheology/go-palace-backend/internal/repo"
)

// GormCounter derives the daily count from the gems table itself: a row in
// the store is the record of an accepted generation, so Incr has nothing to
// do. This is the default backend and preserves the count-then-insert
// posture of the original system.
type GormCounter struct {
	DB *gorm.DB
}

// CountToday counts the identity's gems since UTC midnight.
func (c *GormCounter) CountToday(ctx context.Context, id Identity) (int64, error) {
	var userID *string
	if !id.Anonymous() {
		userID = id.UserID
	}
	return repo.CountSince(ctx, c.DB, userID, DayStart(time.Now()))
}

// Incr is a no-op: the gem insert performed by the orchestrator is the record.
func (c *GormCounter) Incr(context.Context, Identity) error { return nil }
