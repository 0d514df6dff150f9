package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	appai "github.com/bryanwahyu/factory-save-analyzer/internal/application/ai"
	appsaves "github.com/bryanwahyu/factory-save-analyzer/internal/application/saves"
	domai "github.com/bryanwahyu/factory-save-analyzer/internal/domain/ai"
	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/saves"
	"github.com/bryanwahyu/factory-save-analyzer/internal/logging"
	"github.com/bryanwahyu/factory-save-analyzer/internal/middleware"
)

// Options configures NewRouter. Zero values disable the optional parts.
type Options struct {
	Advisor        *appai.Service
	Health         map[string]middleware.HealthChecker
	CORSOrigins    []string
	RateLimit      int
	RateWindow     time.Duration
	MaxUploadBytes int64
}

type Router struct {
	savesSvc  *appsaves.Service
	aiSvc     *appai.Service
	maxUpload int64
}

func NewRouter(savesSvc *appsaves.Service, opts Options) http.Handler {
	r := &Router{savesSvc: savesSvc, aiSvc: opts.Advisor, maxUpload: opts.MaxUploadBytes}
	if r.maxUpload <= 0 {
		r.maxUpload = saves.MaxUploadBytes
	}

	mux := chi.NewRouter()
	mux.Use(stamp)
	mux.Use(middleware.RequestID)
	mux.Use(chimw.Recoverer)
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.CORS(opts.CORSOrigins))

	mux.Get("/health", middleware.HealthHandler(opts.Health))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Handle("/metrics", middleware.MetricsHandler())

	mux.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, ErrCodeNotFound, "route not found", nil)
	})

	mux.Route("/api/v1/saves", func(rt chi.Router) {
		rt.Use(middleware.RateLimitMiddleware(opts.RateLimit, opts.RateWindow))
		rt.Post("/", r.wrap(r.handleUpload))
		rt.Post("/retention", r.wrap(r.handleRetention))
		rt.Get("/{name}/analysis", r.wrap(r.handleAnalysis))
		rt.Get("/{name}/events", r.wrap(r.handleEvents))
		rt.Post("/{name}/advice", r.wrap(r.handleAdvice))
	})

	return mux
}

func stamp(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		next.ServeHTTP(w, req.WithContext(context.WithValue(req.Context(), startKey{}, time.Now())))
	})
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			r.writeError(w, req, err)
		}
	}
}

// writeError maps error kinds to status codes. Internal causes are logged,
// never echoed.
func (r *Router) writeError(w http.ResponseWriter, req *http.Request, err error) {
	if errors.Is(err, domai.ErrQuotaExceeded) {
		respondError(w, req, http.StatusTooManyRequests, ErrCodeAIQuotaExceeded, "ai quota exceeded", nil)
		return
	}

	se, ok := saves.AsError(err)
	if !ok {
		logging.Ctx(req.Context()).Error().Err(err).Str("path", req.URL.Path).Msg("unhandled error")
		respondError(w, req, http.StatusInternalServerError, ErrCodeInternalError, "internal server error", nil)
		return
	}

	switch se.Kind {
	case saves.ErrValidation:
		respondError(w, req, http.StatusBadRequest, ErrCodeValidationFailed, se.Message, se.Details)
	case saves.ErrNotFound:
		respondError(w, req, http.StatusNotFound, ErrCodeNotFound, se.Message, nil)
	case saves.ErrDecode:
		respondError(w, req, http.StatusUnprocessableEntity, ErrCodeDecodeFailed, se.Message, se.Details)
	case saves.ErrAnalysis:
		respondError(w, req, http.StatusInternalServerError, ErrCodeAnalysisFailed, se.Message, nil)
	default:
		logging.Ctx(req.Context()).Error().Err(err).Str("path", req.URL.Path).Msg("internal error")
		respondError(w, req, http.StatusInternalServerError, ErrCodeInternalError, "internal server error", nil)
	}
}
