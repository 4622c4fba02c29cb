// Generation HTTP handler.
//
// This file exposes the write side of the API:
//   - POST /generate/{template}   (generate and persist a unique gem)
//
// Handlers are transport-thin: they validate and normalize inputs, delegate
// to GenerationService, and translate the service's error taxonomy into
// HTTP statuses and stable error codes.
//
// Idempotency:
// If the client supplies an Idempotency-Key header and a previous successful
// result exists for (identity, template, key), the handler returns the
// recorded gem and sets `Idempotency-Replayed: true` instead of spending
// another generation attempt.
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/phototheology/go-palace-backend/internal/domain"
	"github.com/phototheology/go-palace-backend/internal/gateway"
	"github.com/phototheology/go-palace-backend/internal/http/middleware"
	"github.com/phototheology/go-palace-backend/internal/quota"
	"github.com/phototheology/go-palace-backend/internal/repo"
	"github.com/phototheology/go-palace-backend/internal/services"
)

//
// DTOs
//

// GenerateRequest is the JSON payload for a generation call. All fields are
// optional; templates fall back to their own defaults when a field is blank.
type GenerateRequest struct {
	// Theme steers the subject of the generated piece.
	Theme string `json:"theme" example:"sanctuary"`
	// Difficulty selects the target reading depth (beginner|intermediate|advanced).
	Difficulty string `json:"difficulty" example:"intermediate"`
	// Verses optionally anchors the piece to specific passages.
	Verses []string `json:"verses" example:"Daniel 8:14,Hebrews 9:23"`
}

// GenerateResponse is the JSON envelope for a newly accepted gem.
type GenerateResponse struct {
	Gem *domain.Gem `json:"gem"`
}

//
// Service contracts (context-aware)
//

// GenerationService defines the generation operation consumed by HTTP
// handlers. Implementations must be safe for concurrent use and honor the
// provided context.
type GenerationService interface {
	// Generate produces, deduplicates, and persists one piece of content
	// for the given identity (nil userID means the shared anonymous pool).
	Generate(ctx context.Context, userID *string, template string, params gateway.Params) (*domain.Gem, error)
}

//
// Helpers
//

// userID extracts the caller identity from the X-User-ID header. A missing
// or blank header means the caller is anonymous and returns nil.
func userID(c *gin.Context) *string {
	v := strings.TrimSpace(c.GetHeader("X-User-ID"))
	if v == "" {
		return nil
	}
	return &v
}

// idemScope maps an identity to the string stored in the idempotency table.
// Anonymous callers share one scope, mirroring the shared quota pool.
func idemScope(uid *string) string {
	return quota.Identity{UserID: uid}.Key()
}

// retryAfterSeconds renders the whole seconds until t for a Retry-After
// header, never less than 1.
func retryAfterSeconds(now, t time.Time) string {
	secs := int(t.Sub(now).Seconds())
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

//
// Handlers
//

// PostGenerate godoc
// @ID          postGenerate
// @Summary     Generate a new gem
// @Description Generates a unique piece of content from the named template,
// @Description deduplicates it against everything previously accepted, and
// @Description persists it. Retries internally up to the attempt budget.
// @Description Supports idempotency via the Idempotency-Key header (same key → same result).
// @Tags        Generation
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID        header  string  false "User ID owning the gem (omit for the shared anonymous pool)"  example(user123)
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries (UUID recommended)"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       template         path    string  true  "Template name (gem|devotional|prophecy)"
// @Param       body             body    handlers.GenerateRequest  false  "Generation parameters"
//
// @Success     201  {object}  handlers.GenerateResponse  "Newly accepted gem"
// @Success     200  {object}  handlers.GenerateResponse  "Idempotent replay of a previous result"
// @Failure     400  {object}  handlers.ErrorResponse     "Unknown template or bad payload"
// @Failure     429  {object}  handlers.ErrorResponse     "Daily generation limit reached"
// @Failure     503  {object}  handlers.ErrorResponse     "Upstream unavailable or attempts exhausted"
// @Failure     500  {object}  handlers.ErrorResponse     "Internal error"
// @Router      /generate/{template} [post]
func (h *Handlers) PostGenerate(c *gin.Context) {
	ctx := c.Request.Context()
	template := strings.ToLower(strings.TrimSpace(c.Param("template")))

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON payload")
		return
	}

	uid := userID(c)

	// Idempotency (replay path) – read validated key if present.
	idemKey, _ := middleware.GetIdempotencyKey(c)
	if idemKey != "" && h.db != nil {
		rec, err := repo.GetIdempotency(ctx, h.db, idemScope(uid), template, idemKey, time.Now().UTC())
		if err == nil && rec != nil {
			if prev, err2 := repo.GetGem(ctx, h.db, rec.GemID); err2 == nil {
				c.Header("Idempotency-Replayed", "true")
				ok(c, http.StatusOK, GenerateResponse{Gem: prev})
				return
			}
		}
	}

	gem, err := h.genSvc.Generate(ctx, uid, template, gateway.Params{
		Theme:      strings.TrimSpace(req.Theme),
		Difficulty: strings.TrimSpace(req.Difficulty),
		Verses:     req.Verses,
	})
	if err != nil {
		h.failGenerate(c, template, err)
		return
	}

	// Idempotency (store path) – best effort.
	if idemKey != "" && h.db != nil {
		_, _ = repo.CreateIdempotency(ctx, h.db, idemScope(uid), template, idemKey, gem.ID, http.StatusCreated, h.idemTTL)
	}

	ok(c, http.StatusCreated, GenerateResponse{Gem: gem})
}

// failGenerate translates the generation error taxonomy into HTTP responses.
func (h *Handlers) failGenerate(c *gin.Context, template string, err error) {
	var (
		exceeded  *quota.ExceededError
		exhausted *services.ExhaustedError
	)
	switch {
	case errors.Is(err, services.ErrUnknownTemplate):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest,
			"unknown template "+strconv.Quote(template)+"; valid templates: "+strings.Join(gateway.TemplateNames(), ", "))
	case errors.As(err, &exceeded):
		c.Header("Retry-After", retryAfterSeconds(time.Now().UTC(), quota.NextDayStart(time.Now().UTC())))
		fail(c, http.StatusTooManyRequests, ErrCodeDailyLimit, exceeded.Error())
	case errors.Is(err, gateway.ErrUpstreamRateLimited), errors.Is(err, gateway.ErrUpstreamQuota):
		c.Header("Retry-After", "30")
		fail(c, http.StatusServiceUnavailable, ErrCodeUpstream,
			"the generation service is temporarily unavailable; please retry later")
	case errors.As(err, &exhausted):
		fail(c, http.StatusServiceUnavailable, ErrCodeExhausted,
			"could not produce a unique result right now; please try again")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
