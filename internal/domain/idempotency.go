// Package domain defines the persistence models for generated devotional
// content. This file holds the idempotency record used for safe retries of
// generation requests.
package domain

import "time"

// Idempotency records the outcome of a previously processed generation
// request, keyed by (user_id, template, key). A retried POST carrying the
// same Idempotency-Key is served the originally persisted gem instead of
// spending quota and gateway attempts again.
type Idempotency struct {
	ID        string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	UserID    string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_template_key,priority:1"`
	Template  string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_template_key,priority:2"`
	Key       string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_user_template_key,priority:3"`
	GemID     string    `gorm:"type:TEXT NOT NULL"`
	Status    int       `gorm:"type:INTEGER NOT NULL"`
	CreatedAt time.Time `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt time.Time `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
