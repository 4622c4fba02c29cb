// Gem HTTP handlers.
//
// This file exposes the read side of the API:
//   - GET /gems        (list the caller's gems, paginated)
//   - GET /gems/{id}   (fetch one gem)
//
// Listing is scoped to the caller identity: requests with an X-User-ID
// header see that user's gems, anonymous requests see the shared pool.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phototheology/go-palace-backend/internal/domain"
	"github.com/phototheology/go-palace-backend/internal/services"
	"github.com/phototheology/go-palace-backend/internal/utils"
)

//
// DTOs
//

// GemResponse is the JSON envelope for a single gem.
type GemResponse struct {
	Gem *domain.Gem `json:"gem"`
}

// ListGemsResponse contains a page of gems and pagination metadata.
type ListGemsResponse struct {
	Gems       []domain.Gem `json:"gems"`
	Pagination Pagination   `json:"pagination"`
}

// Pagination describes the window returned by a list endpoint.
type Pagination struct {
	Page       int   `json:"page" example:"1"`
	PageSize   int   `json:"page_size" example:"20"`
	Total      int64 `json:"total" example:"42"`
	TotalPages int   `json:"total_pages" example:"3"`
	HasNext    bool  `json:"has_next" example:"true"`
}

//
// Service contracts (context-aware)
//

// GemService defines read operations over accepted gems. Implementations
// must be safe for concurrent use and honor the provided context.
type GemService interface {
	// Get fetches one gem by ID.
	Get(ctx context.Context, id string) (*domain.Gem, error)
	// ListPage returns a page of the identity's gems and the total count.
	ListPage(ctx context.Context, userID *string, page, pageSize int) ([]domain.Gem, int64, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for generation and gem retrieval.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic; the *gorm.DB handle is used only for
// idempotency record lookups.
type Handlers struct {
	genSvc  GenerationService
	gemSvc  GemService
	db      *gorm.DB
	idemTTL time.Duration
}

// New constructs a Handlers instance bound to the given services. idemTTL
// bounds how long a recorded idempotent result can be replayed.
func New(genSvc GenerationService, gemSvc GemService, db *gorm.DB, idemTTL time.Duration) *Handlers {
	if idemTTL <= 0 {
		idemTTL = 24 * time.Hour
	}
	return &Handlers{genSvc: genSvc, gemSvc: gemSvc, db: db, idemTTL: idemTTL}
}

// clampPagination parses page/page_size from query parameters, applies sane
// defaults and caps, and returns the validated (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

//
// Handlers
//

// ListGems godoc
// @ID          listGems
// @Summary     List gems
// @Description Returns a paginated list of gems for the caller's identity,
// @Description most recent first. Anonymous callers see the shared pool.
// @Tags        Gems
// @Produce     json
//
// @Param       X-User-ID  header string  false "User ID (omit for the shared anonymous pool)"  example(user123)
// @Param       page       query  int     false "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListGemsResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /gems [get]
func (h *Handlers) ListGems(c *gin.Context) {
	ctx := c.Request.Context()
	page, pageSize := clampPagination(c)

	items, total, err := h.gemSvc.ListPage(ctx, userID(c), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListGemsResponse{
		Gems: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// GetGem godoc
// @ID          getGem
// @Summary     Fetch one gem
// @Description Returns a single gem by its ID.
// @Tags        Gems
// @Produce     json
//
// @Param       id  path  string  true  "Gem ID (UUID)"  format(uuid)
//
// @Success     200  {object} handlers.GemResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Gem not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /gems/{id} [get]
func (h *Handlers) GetGem(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "gem id must be a UUID")
		return
	}

	g, err := h.gemSvc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrGemNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "gem not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, GemResponse{Gem: g})
}
