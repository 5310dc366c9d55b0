// Package service orchestrates CPF validation for the intake form: it puts
// the pure validator behind a memoizing cache and adds metrics, tracing and
// audit of operator actions.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"credito/internal/audit"
	"credito/internal/cpf/cache"
	"credito/internal/cpf/metrics"
	"credito/pkg/cpf"
	dErrors "credito/pkg/domain-errors"
	"credito/pkg/platform/sentinel"
)

const tracerName = "credito/internal/cpf/service"

const (
	defaultBatchMax         = 50
	defaultBatchConcurrency = 8
	defaultGenerateMax      = 100
)

// AuditPublisher records operator actions.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event)
}

// Service validates and formats CPFs.
type Service struct {
	cache            cache.Cache
	logger           *slog.Logger
	metrics          *metrics.Metrics
	auditPublisher   AuditPublisher
	tracer           trace.Tracer
	regulatedMode    bool
	batchMax         int
	batchConcurrency int
	generateMax      int
	generate         func() cpf.CPF
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithRegulatedMode disables fixture generation.
func WithRegulatedMode(regulated bool) Option {
	return func(s *Service) {
		s.regulatedMode = regulated
	}
}

// WithBatchLimits bounds batch size and validation fan-out.
func WithBatchLimits(maxItems, concurrency int) Option {
	return func(s *Service) {
		if maxItems > 0 {
			s.batchMax = maxItems
		}
		if concurrency > 0 {
			s.batchConcurrency = concurrency
		}
	}
}

// WithGenerateMax bounds how many fixtures one call may produce.
func WithGenerateMax(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.generateMax = n
		}
	}
}

// WithGenerator replaces the fixture source; tests use it for determinism.
func WithGenerator(fn func() cpf.CPF) Option {
	return func(s *Service) {
		s.generate = fn
	}
}

// New constructs a Service. A nil cache disables memoization.
func New(c cache.Cache, opts ...Option) *Service {
	s := &Service{
		cache:            c,
		logger:           slog.New(slog.DiscardHandler),
		tracer:           otel.Tracer(tracerName),
		batchMax:         defaultBatchMax,
		batchConcurrency: defaultBatchConcurrency,
		generateMax:      defaultGenerateMax,
		generate:         cpf.Generate,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate returns the structured result for raw. Invalid CPFs are a normal
// result, not an error. Reasons are always computed, so this path bypasses
// the cache.
func (s *Service) Validate(ctx context.Context, raw string) cpf.Result {
	ctx, span := s.tracer.Start(ctx, "cpf.Validate")
	defer span.End()
	start := time.Now()

	res := cpf.Validate(raw)
	s.observe(res, time.Since(start))

	span.SetAttributes(
		attribute.Bool("cpf.valid", res.Valid),
		attribute.Int("cpf.digits", len(res.Digits)),
	)
	return res
}

// IsValid answers validity, consulting the cache first.
func (s *Service) IsValid(ctx context.Context, raw string) bool {
	ctx, span := s.tracer.Start(ctx, "cpf.IsValid")
	defer span.End()
	start := time.Now()

	digits := cpf.Clean(raw)
	if len(digits) != cpf.Length {
		// no cache round trip for input that can never be valid
		res := cpf.Validate(digits)
		s.observe(res, time.Since(start))
		return false
	}

	if valid, ok := s.lookup(ctx, digits); ok {
		s.metrics.ObserveValidateLatency(time.Since(start))
		return valid
	}

	res := cpf.Validate(digits)
	s.remember(ctx, digits, res.Valid)
	s.observe(res, time.Since(start))
	return res.Valid
}

// Format masks raw; see cpf.Format.
func (s *Service) Format(_ context.Context, raw string, partial bool) (string, cpf.MaskStage) {
	return cpf.Format(raw, partial), cpf.Stage(raw)
}

// ValidateBatch validates raws concurrently and returns results in input order.
func (s *Service) ValidateBatch(ctx context.Context, raws []string) ([]cpf.Result, error) {
	if len(raws) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "cpfs must not be empty")
	}
	if len(raws) > s.batchMax {
		return nil, dErrors.New(dErrors.CodeValidation, "too many cpfs in one batch")
	}

	ctx, span := s.tracer.Start(ctx, "cpf.ValidateBatch")
	defer span.End()
	span.SetAttributes(attribute.Int("cpf.batch_size", len(raws)))
	s.metrics.ObserveBatchSize(len(raws))

	results := make([]cpf.Result, len(raws))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)
	for i, raw := range raws {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.Validate(gctx, raw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "batch validation timed out")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "batch validation cancelled")
	}
	return results, nil
}

// Generate returns n valid fixture CPFs. Refused in regulated mode.
func (s *Service) Generate(ctx context.Context, n int) ([]cpf.CPF, error) {
	if s.regulatedMode {
		s.emit(ctx, audit.Event{
			Category: audit.CategorySecurity,
			Action:   audit.ActionFixturesDenied,
			Decision: "deny",
			Reason:   "regulated_mode",
			Count:    n,
		})
		return nil, dErrors.New(dErrors.CodeForbidden, "fixture generation is disabled in regulated mode")
	}
	if n < 1 || n > s.generateMax {
		return nil, dErrors.New(dErrors.CodeValidation, "count out of range")
	}

	out := make([]cpf.CPF, n)
	for i := range out {
		out[i] = s.generate()
	}
	s.emit(ctx, audit.Event{
		Category: audit.CategoryOperations,
		Action:   audit.ActionFixturesGenerated,
		Decision: "allow",
		Count:    n,
	})
	return out, nil
}

// ClearCache drops every memoized entry.
func (s *Service) ClearCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Clear(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear cpf cache", "error", err)
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "cache unavailable")
	}
	s.emit(ctx, audit.Event{
		Category: audit.CategoryOperations,
		Action:   audit.ActionCacheCleared,
		Decision: "allow",
	})
	return nil
}

// lookup reports a cached validity. Errors other than a miss are logged
// and treated as a miss.
func (s *Service) lookup(ctx context.Context, digits string) (bool, bool) {
	if s.cache == nil {
		return false, false
	}
	valid, err := s.cache.Get(ctx, digits)
	switch {
	case err == nil:
		s.metrics.IncrementCacheLookup("hit")
		return valid, true
	case errors.Is(err, sentinel.ErrNotFound):
		s.metrics.IncrementCacheLookup("miss")
	default:
		s.metrics.IncrementCacheLookup("error")
		s.logger.WarnContext(ctx, "cpf cache lookup failed",
			"cpf", cpf.Mask(digits),
			"error", err,
		)
	}
	return false, false
}

// remember caches validity of complete digit strings only.
func (s *Service) remember(ctx context.Context, digits string, valid bool) {
	if s.cache == nil || len(digits) != cpf.Length {
		return
	}
	if err := s.cache.Set(ctx, digits, valid); err != nil {
		s.logger.WarnContext(ctx, "cpf cache store failed",
			"cpf", cpf.Mask(digits),
			"error", err,
		)
	}
}

func (s *Service) observe(res cpf.Result, d time.Duration) {
	reason := ""
	if len(res.Reasons) > 0 {
		reason = string(res.Reasons[0])
	}
	s.metrics.IncrementValidation(res.Valid, reason)
	s.metrics.ObserveValidateLatency(d)
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditPublisher != nil {
		s.auditPublisher.Emit(ctx, event)
	}
}
