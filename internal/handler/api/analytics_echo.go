package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"

	"FinLens/internal/domain/models"
	"FinLens/internal/service/cache"
	svcmetrics "FinLens/internal/service/metrics"
	"FinLens/internal/service/ratelimit"
	"FinLens/internal/services/analytics"
	"FinLens/internal/usecase"
	"FinLens/pkg/config"
	xhttp "FinLens/pkg/http"
	applogger "FinLens/pkg/logger"
)

// AnalyticsHandler exposes the analytics engines and series store over
// HTTP.
type AnalyticsHandler struct {
	cfg     *config.Config
	log     *applogger.Logger
	svc     *usecase.SeriesAnalytics
	series  *usecase.SeriesQuery
	proc    *usecase.ObservationProcessor
	cache   cache.BytesCache
	metrics *svcmetrics.AnalyticsMetrics
	limiter *ratelimit.Limiter
}

// NewAnalyticsHandler creates the HTTP handler.
func NewAnalyticsHandler(
	cfg *config.Config,
	log *applogger.Logger,
	svc *usecase.SeriesAnalytics,
	series *usecase.SeriesQuery,
	proc *usecase.ObservationProcessor,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		cfg:     cfg,
		log:     log,
		svc:     svc,
		series:  series,
		proc:    proc,
		limiter: ratelimit.NewLimiter(50, 100),
	}
}

// SetCache attaches a response cache for stored-series requests.
func (h *AnalyticsHandler) SetCache(c cache.BytesCache) { h.cache = c }

// SetMetrics attaches analytics metrics.
func (h *AnalyticsHandler) SetMetrics(m *svcmetrics.AnalyticsMetrics) { h.metrics = m }

// RegisterRoutes registers the API routes on Echo.
func (h *AnalyticsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api", h.rateLimit)
	g.POST("/indicators", h.Indicators)
	g.POST("/benchmark", h.Benchmark)
	g.POST("/trend", h.Trend)
	g.POST("/correlation", h.Correlation)
	g.GET("/series/:id", h.GetSeries)
	g.POST("/series/:id/observations", h.IngestObservations)
	e.GET("/health", h.Health)
}

func (h *AnalyticsHandler) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !h.limiter.Allow(c.RealIP()) {
			return xhttp.TooManyRequestsResponse(c)
		}
		return next(c)
	}
}

// Indicators computes SMA/EMA/Bollinger series.
func (h *AnalyticsHandler) Indicators(c echo.Context) error {
	req := new(models.IndicatorsRequest)
	if payload := xhttp.ReadAndValidateRequest(c, req); payload != nil {
		return xhttp.BadRequestResponse(c, payload)
	}

	return h.respond(c, "indicators", h.cacheKey("indicators", req.SeriesInput, req.Indicators, req.Periods, req.BollingerK),
		h.cfg.Analytics.CacheTTL.Indicators,
		func(ctx context.Context) (interface{}, error) {
			return h.svc.Indicators(ctx, req)
		})
}

// Benchmark positions a company value inside a peer distribution.
func (h *AnalyticsHandler) Benchmark(c echo.Context) error {
	req := new(models.BenchmarkRequest)
	if payload := xhttp.ReadAndValidateRequest(c, req); payload != nil {
		return xhttp.BadRequestResponse(c, payload)
	}

	key := ""
	if req.Distribution == nil && req.RatioName != "" {
		key = fmt.Sprintf("benchmark:%s:%v", req.RatioName, req.CompanyValue)
	}
	return h.respond(c, "benchmark", key, h.cfg.Analytics.CacheTTL.Benchmark,
		func(ctx context.Context) (interface{}, error) {
			return h.svc.Benchmark(ctx, req)
		})
}

// Trend classifies series movement and projects it forward.
func (h *AnalyticsHandler) Trend(c echo.Context) error {
	req := new(models.TrendRequest)
	if payload := xhttp.ReadAndValidateRequest(c, req); payload != nil {
		return xhttp.BadRequestResponse(c, payload)
	}

	return h.respond(c, "trend", h.cacheKey("trend", req.SeriesInput, req.Window, req.ProjectPeriods, req.ThresholdPct),
		h.cfg.Analytics.CacheTTL.Trend,
		func(ctx context.Context) (interface{}, error) {
			return h.svc.Trend(ctx, req)
		})
}

// Correlation computes the Pearson coefficient of two series.
func (h *AnalyticsHandler) Correlation(c echo.Context) error {
	req := new(models.CorrelationRequest)
	if payload := xhttp.ReadAndValidateRequest(c, req); payload != nil {
		return xhttp.BadRequestResponse(c, payload)
	}

	key := ""
	if len(req.Primary.Observations) == 0 && len(req.Secondary.Observations) == 0 &&
		req.Primary.SeriesID != "" && req.Secondary.SeriesID != "" {
		key = fmt.Sprintf("correlation:%s:%s:%s:%s:%s:%s",
			req.Primary.SeriesID, req.Primary.StartDate, req.Primary.EndDate,
			req.Secondary.SeriesID, req.Secondary.StartDate, req.Secondary.EndDate)
	}
	return h.respond(c, "correlation", key, h.cfg.Analytics.CacheTTL.Correlation,
		func(ctx context.Context) (interface{}, error) {
			return h.svc.Correlation(ctx, req)
		})
}

// GetSeries returns a stored series.
func (h *AnalyticsHandler) GetSeries(c echo.Context) error {
	seriesID := c.Param("id")
	limit := xhttp.ParseIntDefault(c.QueryParam("limit"), 0)
	from := xhttp.ParseDateDefault(c.QueryParam("start_date"), time.Time{})
	to := xhttp.ParseDateDefault(c.QueryParam("end_date"), time.Time{})

	series, err := h.series.Get(c.Request().Context(), seriesID, limit, from, to)
	if err != nil {
		h.recordError("series", "internal")
		h.log.Error("series load failed", applogger.String("series_id", seriesID), applogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("could not load series").WithError(err))
	}
	if len(series.Observations) == 0 {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("series %q has no observations", seriesID))
	}
	return xhttp.SuccessResponse(c, series)
}

// IngestObservations accepts raw observations for a stored series.
func (h *AnalyticsHandler) IngestObservations(c echo.Context) error {
	seriesID := c.Param("id")
	req := new(models.IngestObservationsRequest)
	if payload := xhttp.ReadAndValidateRequest(c, req); payload != nil {
		return xhttp.BadRequestResponse(c, payload)
	}

	accepted, dropped, err := h.proc.Ingest(c.Request().Context(), seriesID, req.Source, req.Observations)
	if err != nil {
		h.recordError("ingest", "internal")
		h.log.Error("ingest failed", applogger.String("series_id", seriesID), applogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("could not ingest observations").WithError(err))
	}

	return xhttp.AcceptedResponse(c, models.IngestResponse{
		SeriesID: seriesID,
		Accepted: accepted,
		Dropped:  dropped,
	})
}

// Health reports liveness.
func (h *AnalyticsHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

// respond runs compute with caching and uniform error mapping. An empty
// key disables caching (inline observations are caller-owned and not
// worth keying on).
func (h *AnalyticsHandler) respond(c echo.Context, operation, key string, ttl time.Duration, compute func(context.Context) (interface{}, error)) error {
	ctx := c.Request().Context()

	if h.cache != nil && key != "" {
		if cached, ok := h.cache.Get(ctx, key); ok {
			h.recordCache(operation, "hit")
			var data json.RawMessage = cached
			return xhttp.SuccessResponse(c, data)
		}
		h.recordCache(operation, "miss")
	}

	start := time.Now()
	result, err := compute(ctx)
	if h.metrics != nil {
		h.metrics.ObserveLatency(operation, time.Since(start).Seconds())
	}
	if err != nil {
		return h.errorResponse(c, operation, err)
	}

	if h.cache != nil && key != "" && ttl > 0 {
		if body, err := json.Marshal(result); err == nil {
			h.cache.Set(ctx, key, body, ttl)
		}
	}
	return xhttp.SuccessResponse(c, result)
}

func (h *AnalyticsHandler) errorResponse(c echo.Context, operation string, err error) error {
	switch {
	case errors.Is(err, analytics.ErrInsufficientData),
		errors.Is(err, analytics.ErrZeroVariance),
		errors.Is(err, analytics.ErrInvalidDistribution),
		errors.Is(err, analytics.ErrInvalidDate):
		h.recordError(operation, "unprocessable")
		return xhttp.AppErrorResponse(c, xhttp.UnprocessableError(err.Error()))
	}

	var appErr *xhttp.AppError
	if errors.As(err, &appErr) {
		h.recordError(operation, "app")
		return xhttp.AppErrorResponse(c, appErr)
	}

	h.recordError(operation, "internal")
	h.log.Error("analytics request failed", applogger.String("operation", operation), applogger.Error(err))
	return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
}

// cacheKey keys stored-series requests; inline observations disable
// caching.
func (h *AnalyticsHandler) cacheKey(operation string, in models.SeriesInput, parts ...interface{}) string {
	if in.SeriesID == "" || len(in.Observations) > 0 {
		return ""
	}
	key := fmt.Sprintf("%s:%s:%s:%s", operation, in.SeriesID, in.StartDate, in.EndDate)
	for _, p := range parts {
		key += fmt.Sprintf(":%v", p)
	}
	return key
}

func (h *AnalyticsHandler) recordError(operation, class string) {
	if h.metrics != nil {
		h.metrics.RecordError(operation, class)
	}
}

func (h *AnalyticsHandler) recordCache(operation, result string) {
	if h.metrics != nil {
		h.metrics.RecordCache(operation, result)
	}
}
