package usecase

import (
	"context"
	"fmt"
	"time"

	"FinLens/internal/domain/models"
	"FinLens/internal/domain/repository"
	"FinLens/internal/services/analytics"
	"FinLens/pkg/config"
	applogger "FinLens/pkg/logger"
	"FinLens/pkg/util"
)

// SeriesAnalytics orchestrates the analytics engines over inline or
// stored observations.
type SeriesAnalytics struct {
	store repository.SeriesStore
	dist  repository.DistributionProvider
	cfg   *config.Config
	log   *applogger.Logger
}

// NewSeriesAnalytics creates the analytics usecase.
func NewSeriesAnalytics(store repository.SeriesStore, dist repository.DistributionProvider, cfg *config.Config) *SeriesAnalytics {
	return &SeriesAnalytics{store: store, dist: dist, cfg: cfg}
}

// SetLogger attaches a logger for normalization diagnostics.
func (s *SeriesAnalytics) SetLogger(l *applogger.Logger) { s.log = l }

// resolve turns a series input into normalized observations. Inline
// observations win over a series reference when both are present.
func (s *SeriesAnalytics) resolve(ctx context.Context, in models.SeriesInput) ([]models.Observation, int, error) {
	from := util.ParseDateDefault(in.StartDate, time.Time{})
	to := util.ParseDateDefault(in.EndDate, time.Time{})

	if len(in.Observations) > 0 {
		policy := analytics.MalformedDatePolicy(s.cfg.Analytics.MalformedDatePolicy)
		obs, report, err := analytics.Normalize(in.Observations, policy, from, to)
		if err != nil {
			return nil, 0, err
		}
		if report.Dropped > 0 && s.log != nil {
			s.log.Warn("dropped observations with malformed dates",
				applogger.Int("dropped", report.Dropped),
				applogger.String("series_id", in.SeriesID),
			)
		}
		return obs, report.Dropped, nil
	}

	if in.SeriesID == "" {
		return nil, 0, fmt.Errorf("either series_id or observations must be provided")
	}
	if s.store == nil {
		return nil, 0, fmt.Errorf("series store not configured")
	}
	obs, err := s.store.GetObservations(ctx, in.SeriesID, from, to)
	if err != nil {
		return nil, 0, fmt.Errorf("load series %q: %w", in.SeriesID, err)
	}
	return obs, 0, nil
}

// Indicators computes all requested indicator series for all requested
// periods in a single pass per (indicator, period) pair.
func (s *SeriesAnalytics) Indicators(ctx context.Context, req *models.IndicatorsRequest) (*models.IndicatorsResponse, error) {
	obs, dropped, err := s.resolve(ctx, req.SeriesInput)
	if err != nil {
		return nil, err
	}

	k := req.BollingerK
	if k <= 0 {
		k = analytics.DefaultBollingerK
	}

	results := make([]models.IndicatorResult, 0, len(req.Indicators)*len(req.Periods))
	for _, kind := range req.Indicators {
		for _, period := range req.Periods {
			switch kind {
			case "sma":
				r, err := analytics.SMA(obs, period)
				if err != nil {
					return nil, err
				}
				results = append(results, r)
			case "ema":
				r, err := analytics.EMA(obs, period)
				if err != nil {
					return nil, err
				}
				results = append(results, r)
			case "bollinger":
				bands, err := analytics.Bollinger(obs, period, k)
				if err != nil {
					return nil, err
				}
				results = append(results, bands...)
			default:
				return nil, fmt.Errorf("unknown indicator %q", kind)
			}
		}
	}

	return &models.IndicatorsResponse{
		SeriesID: req.SeriesID,
		Results:  results,
		Dropped:  dropped,
	}, nil
}

// Benchmark positions a company value inside a peer distribution,
// fetching the distribution from the peer service when not supplied
// inline.
func (s *SeriesAnalytics) Benchmark(ctx context.Context, req *models.BenchmarkRequest) (*models.BenchmarkResult, error) {
	dist := req.Distribution
	if dist == nil {
		if req.RatioName == "" {
			return nil, fmt.Errorf("either distribution or ratio_name must be provided")
		}
		if s.dist == nil {
			return nil, fmt.Errorf("peer distribution provider not configured")
		}
		d, err := s.dist.Distribution(ctx, req.RatioName)
		if err != nil {
			return nil, err
		}
		dist = d
	}

	res, err := analytics.Benchmark(req.RatioName, req.CompanyValue, *dist)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Trend classifies the series movement and optionally projects it
// forward.
func (s *SeriesAnalytics) Trend(ctx context.Context, req *models.TrendRequest) (*models.TrendResponse, error) {
	obs, _, err := s.resolve(ctx, req.SeriesInput)
	if err != nil {
		return nil, err
	}

	if req.Window > 0 && len(obs) > req.Window {
		obs = obs[len(obs)-req.Window:]
	}

	threshold := req.ThresholdPct
	if threshold <= 0 {
		threshold = s.cfg.Analytics.TrendThresholdPct
	}

	resp := &models.TrendResponse{
		SeriesID: req.SeriesID,
		Trend:    analytics.Trend(obs, threshold),
	}

	periods := req.ProjectPeriods
	if periods == 0 {
		periods = s.cfg.Analytics.ProjectionPeriods
	}
	if periods > 0 {
		freq := repository.Frequency(req.Frequency)
		if !freq.IsValid() {
			freq = repository.Infer(analytics.Dates(obs))
		}
		resp.Projection = analytics.Project(obs, periods, freq)
	}

	return resp, nil
}

// Correlation computes the Pearson coefficient of two series over
// their common dates.
func (s *SeriesAnalytics) Correlation(ctx context.Context, req *models.CorrelationRequest) (*models.CorrelationResult, error) {
	primary, _, err := s.resolve(ctx, req.Primary)
	if err != nil {
		return nil, err
	}
	secondary, _, err := s.resolve(ctx, req.Secondary)
	if err != nil {
		return nil, err
	}

	res, err := analytics.Correlation(primary, secondary)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
