// Package services – GenerationService
//
// This file implements the generation pipeline: quota check, then a bounded
// loop of gateway attempts with a side-effecting acceptance test. Each
// candidate is unwrapped, fingerprinted, and checked against previously
// accepted content; a duplicate silently consumes an attempt, while
// upstream rate or quota pressure aborts the whole budget because more
// attempts cannot help. Only a candidate that is parseable, non-empty, and
// previously unseen is persisted and returned.
//
// Observability: the run and each attempt are OpenTelemetry-instrumented,
// and attempt results feed the Prometheus generation collectors.
package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/phototheology/go-palace-backend/internal/content"
	"github.com/phototheology/go-palace-backend/internal/domain"
	"github.com/phototheology/go-palace-backend/internal/gateway"
	"github.com/phototheology/go-palace-backend/internal/observability"
	"github.com/phototheology/go-palace-backend/internal/quota"
)

// defaultMaxAttempts is the attempt budget when none is configured.
const defaultMaxAttempts = 3

// Generator issues one content-generation request per call. Implemented by
// gateway.Client; faked in tests.
type Generator interface {
	Generate(ctx context.Context, tmpl gateway.Template, params gateway.Params) (string, error)
}

// GemRepo defines the persistence contract required by the generation
// pipeline: the uniqueness store and the accepted-content log.
type GemRepo interface {
	// HashExists reports whether a fingerprint was already accepted.
	HashExists(ctx context.Context, db *gorm.DB, hash string) (bool, error)
	// CreateGem appends an accepted candidate.
	CreateGem(ctx context.Context, db *gorm.DB, hash, title, body, template, theme string, userID *string) (*domain.Gem, error)
}

// GenerationService drives generation requests end to end.
type GenerationService struct {
	DB     *gorm.DB
	Repo   GemRepo
	Client Generator
	Quota  *quota.Limiter

	// MaxAttempts caps gateway attempts per request; <= 0 means the default.
	MaxAttempts int

	// TitleMaxLen caps stored titles by rune length.
	TitleMaxLen int
}

// Generate runs one generation request for the identity. The returned error
// is one of: *quota.ExceededError, ErrUnknownTemplate, a gateway upstream
// sentinel (wrapped), *ExhaustedError, or a storage error from the final
// insert.
func (s *GenerationService) Generate(ctx context.Context, userID *string, templateName string, params gateway.Params) (*domain.Gem, error) {
	tr := otel.Tracer("services/GenerationService")
	ctx, span := tr.Start(ctx, "Generate",
		trace.WithAttributes(
			attribute.String("gen.template", templateName),
			attribute.Bool("gen.anonymous", userID == nil),
		),
	)
	defer span.End()

	tmpl, ok := gateway.Lookup(templateName)
	if !ok {
		return nil, ErrUnknownTemplate
	}

	identity := quota.Identity{UserID: userID}
	if err := s.Quota.Check(ctx, identity); err != nil {
		observability.GenerationOutcomes.WithLabelValues(tmpl.Name, "quota_rejected").Inc()
		return nil, err
	}

	maxAttempts := s.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	lg := log.With().Str("template", tmpl.Name).Str("identity", identity.Key()).Logger()

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		raw, err := s.Client.Generate(ctx, tmpl, params)
		switch {
		case err == nil:
			// fall through to acceptance testing
		case errors.Is(err, gateway.ErrUpstreamRateLimited), errors.Is(err, gateway.ErrUpstreamQuota):
			// Waiting out the provider is the only cure; burning the rest
			// of the budget would not help.
			observability.GenerationOutcomes.WithLabelValues(tmpl.Name, "aborted").Inc()
			lg.Warn().Err(err).Int("attempt", attempt).Msg("upstream limited; aborting request")
			return nil, err
		default:
			result := "transient"
			if errors.Is(err, gateway.ErrEmptyResponse) {
				result = "empty"
			}
			observability.GenerationAttempts.WithLabelValues(tmpl.Name, result).Inc()
			lg.Warn().Err(err).Int("attempt", attempt).Msg("attempt failed")
			continue
		}

		payload, err := content.Unwrap(raw)
		if err != nil {
			// Persistent parse failures point at a prompt defect, so they
			// are logged apart from network noise.
			observability.GenerationAttempts.WithLabelValues(tmpl.Name, "malformed").Inc()
			lg.Warn().Err(err).Int("attempt", attempt).Msg("unparseable candidate")
			continue
		}

		title, body, err := s.shape(tmpl, params, payload)
		if err != nil {
			observability.GenerationAttempts.WithLabelValues(tmpl.Name, "malformed").Inc()
			lg.Warn().Err(err).Int("attempt", attempt).Msg("candidate missing fields")
			continue
		}

		fp := content.Fingerprint(body)
		exists, err := s.Repo.HashExists(ctx, s.DB, fp)
		if err != nil {
			// Fail open: a broken lookup must not block generation.
			lg.Warn().Err(err).Str("fingerprint", fp).Msg("uniqueness check failed; accepting candidate")
			exists = false
		}
		if exists {
			observability.GenerationAttempts.WithLabelValues(tmpl.Name, "duplicate").Inc()
			lg.Info().Str("fingerprint", fp).Int("attempt", attempt).Msg("duplicate candidate")
			continue
		}

		gem, err := s.Repo.CreateGem(ctx, s.DB, fp, s.clipTitle(title), body, tmpl.Name, params.Theme, userID)
		if err != nil {
			// A write failure after acceptance is a hard error, not another
			// attempt: the candidate was fine, the storage is not.
			return nil, err
		}
		s.Quota.Record(ctx, identity)
		observability.GenerationOutcomes.WithLabelValues(tmpl.Name, "accepted").Inc()
		span.SetAttributes(attribute.Int("gen.attempts", attempt))
		lg.Info().Str("gem_id", gem.ID).Int("attempt", attempt).Msg("gem accepted")
		return gem, nil
	}

	observability.GenerationOutcomes.WithLabelValues(tmpl.Name, "exhausted").Inc()
	lg.Warn().Int("attempts", maxAttempts).Msg("attempt budget exhausted")
	return nil, &ExhaustedError{Attempts: maxAttempts}
}

// shape turns an unwrapped payload into (title, body) per template mode.
func (s *GenerationService) shape(tmpl gateway.Template, params gateway.Params, payload string) (string, string, error) {
	if tmpl.JSONMode {
		p, err := content.DecodeGem(payload)
		if err != nil {
			return "", "", err
		}
		title := strings.TrimSpace(p.Title)
		if title == "" {
			title = s.deriveTitle(tmpl, params)
		}
		return title, p.Content, nil
	}
	return s.deriveTitle(tmpl, params), payload, nil
}

// deriveTitle builds a display title from the theme (or the template name
// when no theme was given), title-cased.
func (s *GenerationService) deriveTitle(tmpl gateway.Template, params gateway.Params) string {
	src := strings.TrimSpace(params.Theme)
	if src == "" {
		src = tmpl.Name
	}
	return cases.Title(language.English).String(src)
}

// clipTitle truncates a title to the configured maximum rune length.
func (s *GenerationService) clipTitle(title string) string {
	max := s.TitleMaxLen
	if max <= 0 {
		max = 120
	}
	if utf8.RuneCountInString(title) > max {
		return string([]rune(title)[:max])
	}
	return title
}
