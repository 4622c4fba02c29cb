// Package services – GemService
//
// Read-side operations over previously accepted content: the dashboard
// listing of a caller's gems and single-gem fetches (also used to serve
// idempotent replays).
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/phototheology/go-palace-backend/internal/domain"
	"github.com/phototheology/go-palace-backend/internal/repo"
)

// GemReader defines the repository contract required by GemService.
type GemReader interface {
	GetGem(ctx context.Context, db *gorm.DB, id string) (*domain.Gem, error)
	CountGems(ctx context.Context, db *gorm.DB, userID *string) (int64, error)
	ListGemsPage(ctx context.Context, db *gorm.DB, userID *string, offset, limit int) ([]domain.Gem, error)
}

// GemService provides read access to the accepted-content log.
type GemService struct {
	DB   *gorm.DB
	Repo GemReader
}

// Get fetches one gem by ID.
func (s *GemService) Get(ctx context.Context, id string) (*domain.Gem, error) {
	g, err := s.Repo.GetGem(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGemNotFound
		}
		return nil, err
	}
	return g, nil
}

// ListPage returns a page of the identity's gems plus the total count.
// It applies defaults for invalid page/pageSize.
func (s *GemService) ListPage(ctx context.Context, userID *string, page, pageSize int) ([]domain.Gem, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := s.Repo.CountGems(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Gem{}, 0, nil
	}

	items, err := s.Repo.ListGemsPage(ctx, s.DB, userID, offset, pageSize)
	return items, total, err
}

// repoReader adapts the repo free functions to GemReader; used at wiring
// time so services stay decoupled from the concrete repo package.
type repoReader struct{}

// NewGemService constructs a GemService over the repo free functions.
func NewGemService(db *gorm.DB) *GemService {
	return &GemService{DB: db, Repo: repoReader{}}
}

func (repoReader) GetGem(ctx context.Context, db *gorm.DB, id string) (*domain.Gem, error) {
	return repo.GetGem(ctx, db, id)
}

func (repoReader) CountGems(ctx context.Context, db *gorm.DB, userID *string) (int64, error) {
	return repo.CountGems(ctx, db, userID)
}

func (repoReader) ListGemsPage(ctx context.Context, db *gorm.DB, userID *string, offset, limit int) ([]domain.Gem, error) {
	return repo.ListGemsPage(ctx, db, userID, offset, limit)
}
