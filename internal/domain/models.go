// Package domain defines the persistence models for generated devotional
// content. These types are mapped with GORM and form the core data layer
// of the palace backend.
package domain

import "time"

// Gem represents one accepted piece of generated devotional content
// (a "gem", devotional, or prophecy reading). Rows are append-only: once a
// candidate passes the uniqueness check and is persisted it is never
// updated or deleted, because the stored fingerprints are what future
// generations are checked against.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - ContentHash: fingerprint of the normalized content; indexed for the
//     uniqueness lookup. Advisory, not a unique constraint (see repo notes).
//   - Title: display title, either model-provided or derived from the theme.
//   - Content: full generated text.
//   - Template: which prompt template produced this row (gem/devotional/…).
//   - Theme: the requested study theme, if any.
//   - UserID: the requesting user, or nil for anonymous generations; indexed
//     together with CreatedAt for the daily quota count.
//   - CreatedAt: insertion timestamp (UTC), lower bound for quota windows.
type Gem struct {
	ID          string    `json:"id"           gorm:"type:char(36);primaryKey"`
	ContentHash string    `json:"content_hash" gorm:"type:varchar(16);not null;index:idx_gem_hash"`
	Title       string    `json:"title"        gorm:"type:varchar(255);not null"`
	Content     string    `json:"content"      gorm:"type:text;not null"`
	Template    string    `json:"template"     gorm:"type:varchar(32);not null"`
	Theme       string    `json:"theme"        gorm:"type:varchar(128)"`
	UserID      *string   `json:"user_id,omitempty" gorm:"type:varchar(64);index:idx_gem_user_day,priority:1"`
	CreatedAt   time.Time `json:"created_at"   gorm:"index:idx_gem_user_day,priority:2"`
}

// TableName returns the database table name for Gem.
func (Gem) TableName() string { return "gems" }
