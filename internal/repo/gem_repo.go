// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Gem model:
// the append-only store of accepted generations, its fingerprint lookups,
// and the daily quota counts derived from it.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Consistency note: HashExists followed by CreateGem is deliberately not
// transactional. Uniqueness here is advisory (the fingerprint space plus
// generation variability make a lost race vanishingly unlikely), and the
// narrow function seam means a unique constraint with conflict handling can
// replace it later without touching the orchestrator.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phototheology/go-palace-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateGem inserts an accepted generation. The row ID is a random UUID and
// CreatedAt is set to UTC. On failure, it returns the DB error.
func CreateGem(ctx context.Context, db *gorm.DB, hash, title, body, template, theme string, userID *string) (*domain.Gem, error) {
	g := &domain.Gem{
		ID:          uuid.NewString(),
		ContentHash: hash,
		Title:       title,
		Content:     body,
		Template:    template,
		Theme:       theme,
		UserID:      userID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(g).Error; err != nil {
		return nil, err
	}
	return g, nil
}

// HashExists reports whether any gem row carries the given content hash.
func HashExists(ctx context.Context, db *gorm.DB, hash string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Gem{}).
		Where("content_hash = ?", hash).
		Count(&n).Error
	return n > 0, err
}

// CountSince returns the number of gems generated for the identity since
// the given lower bound. A nil userID scopes the count to the anonymous
// pool (rows with no user).
func CountSince(ctx context.Context, db *gorm.DB, userID *string, since time.Time) (int64, error) {
	q := db.WithContext(ctx).Model(&domain.Gem{}).Where("created_at >= ?", since)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	} else {
		q = q.Where("user_id IS NULL")
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

// GetGem fetches a single gem by ID, or ErrNotFound.
func GetGem(ctx context.Context, db *gorm.DB, id string) (*domain.Gem, error) {
	var g domain.Gem
	if err := db.WithContext(ctx).Where("id = ?", id).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

// CountGems returns the total number of gems owned by userID (nil for the
// anonymous pool), for pagination metadata.
func CountGems(ctx context.Context, db *gorm.DB, userID *string) (int64, error) {
	q := db.WithContext(ctx).Model(&domain.Gem{})
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	} else {
		q = q.Where("user_id IS NULL")
	}
	var total int64
	err := q.Count(&total).Error
	return total, err
}

// ListGemsPage returns a paginated slice of gems for the identity, most
// recent first. The caller computes offset and limit.
func ListGemsPage(ctx context.Context, db *gorm.DB, userID *string, offset, limit int) ([]domain.Gem, error) {
	q := db.WithContext(ctx)
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	} else {
		q = q.Where("user_id IS NULL")
	}
	var out []domain.Gem
	err := q.Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
