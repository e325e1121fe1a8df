package peers

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"FinLens/internal/domain/models"
	"FinLens/pkg/config"
	xhttp "FinLens/pkg/http"
	applogger "FinLens/pkg/logger"
)

// Provider fetches peer distribution anchors from the peer statistics
// service.
type Provider struct {
	cfg    *config.Config
	client *xhttp.Client
	log    *applogger.Logger
}

// NewProvider creates a peer distribution provider.
func NewProvider(cfg *config.Config) *Provider {
	timeout := cfg.Peers.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Provider{
		cfg:    cfg,
		client: xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// SetLogger attaches a logger for request diagnostics.
func (p *Provider) SetLogger(l *applogger.Logger) { p.log = l }

// distributionPayload is the peer service response shape.
type distributionPayload struct {
	RatioName string   `json:"ratio_name"`
	P10       *float64 `json:"p10"`
	P25       *float64 `json:"p25"`
	Median    *float64 `json:"median"`
	P75       *float64 `json:"p75"`
	P90       *float64 `json:"p90"`
}

// Distribution fetches the five-number summary for a ratio.
func (p *Provider) Distribution(ctx context.Context, ratioName string) (*models.Distribution, error) {
	base := strings.TrimRight(p.cfg.Peers.BaseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("peers: base URL not configured")
	}

	start := time.Now()
	var payload distributionPayload
	err := p.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    base + "/distributions/" + url.PathEscape(ratioName),
	}, &payload)
	if p.log != nil {
		p.log.Debug("peer distribution fetch",
			applogger.String("ratio", ratioName),
			applogger.Duration("elapsed", time.Since(start)),
			applogger.Error(err),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("peers: fetch distribution %q: %w", ratioName, err)
	}

	if payload.P10 == nil || payload.P25 == nil || payload.Median == nil || payload.P75 == nil || payload.P90 == nil {
		return nil, fmt.Errorf("peers: distribution %q has missing anchors", ratioName)
	}

	return &models.Distribution{
		P10:    *payload.P10,
		P25:    *payload.P25,
		Median: *payload.Median,
		P75:    *payload.P75,
		P90:    *payload.P90,
	}, nil
}
