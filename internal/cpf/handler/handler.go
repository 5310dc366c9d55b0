package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"credito/pkg/cpf"
	dErrors "credito/pkg/domain-errors"
	"credito/pkg/platform/httputil"
	"credito/pkg/requestcontext"
)

// Service defines the CPF operations exposed over HTTP.
type Service interface {
	Validate(ctx context.Context, raw string) cpf.Result
	IsValid(ctx context.Context, raw string) bool
	Format(ctx context.Context, raw string, partial bool) (string, cpf.MaskStage)
	ValidateBatch(ctx context.Context, raws []string) ([]cpf.Result, error)
	Generate(ctx context.Context, n int) ([]cpf.CPF, error)
	ClearCache(ctx context.Context) error
}

// Handler wires CPF endpoints to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a CPF handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the public CPF endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/cpf/validate", h.HandleValidate)
	r.Post("/cpf/validate/batch", h.HandleValidateBatch)
	r.Post("/cpf/check", h.HandleCheck)
	r.Post("/cpf/format", h.HandleFormat)
	r.Get("/cpf/generate", h.HandleGenerate)
}

// RegisterAdmin mounts operator endpoints. Callers put them behind the
// admin token middleware.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Delete("/cpf/cache", h.HandleClearCache)
}

// HandleValidate handles POST /cpf/validate. An invalid CPF is a 200 with
// valid=false and its reasons.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res := h.service.Validate(ctx, string(req.CPF))
	h.logger.DebugContext(ctx, "cpf validated",
		"request_id", requestID,
		"cpf", cpf.Mask(res.Digits),
		"valid", res.Valid,
	)
	httputil.WriteJSON(w, http.StatusOK, FromResult(res))
}

// HandleCheck handles POST /cpf/check, the cheap on-blur check.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	resp := CheckResponse{Valid: h.service.IsValid(ctx, string(req.CPF))}
	if resp.Valid {
		resp.Formatted = cpf.Format(string(req.CPF), false)
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleValidateBatch handles POST /cpf/validate/batch.
func (h *Handler) HandleValidateBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[BatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	results, err := h.service.ValidateBatch(ctx, req.Raw())
	if err != nil {
		h.logger.WarnContext(ctx, "batch validation failed",
			"request_id", requestID,
			"size", len(req.CPFs),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromResults(results))
}

// HandleFormat handles POST /cpf/format.
func (h *Handler) HandleFormat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[FormatRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	formatted, stage := h.service.Format(ctx, string(req.CPF), req.IsPartial())
	httputil.WriteJSON(w, http.StatusOK, FormatResponse{Formatted: formatted, Stage: stage.String()})
}

// HandleGenerate handles GET /cpf/generate?count=n (default 1).
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	count := 1
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "count must be an integer"))
			return
		}
		count = n
	}

	cpfs, err := h.service.Generate(ctx, count)
	if err != nil {
		h.logger.WarnContext(ctx, "cpf generation refused",
			"request_id", requestID,
			"count", count,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromGenerated(cpfs))
}

// HandleClearCache handles DELETE /cpf/cache.
func (h *Handler) HandleClearCache(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.ClearCache(ctx); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "cpf cache cleared", "request_id", requestcontext.RequestID(ctx))
	w.WriteHeader(http.StatusNoContent)
}
