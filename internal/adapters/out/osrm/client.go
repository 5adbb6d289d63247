// Package osrm resolves driving routes through an OSRM-compatible HTTP
// routing service.
package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"tawsila/internal/core/domain/model/kernel"
	"tawsila/internal/core/ports"
	"tawsila/internal/pkg/errs"
)

const defaultTimeout = 5 * time.Second

// Client calls the OSRM route API. It implements ports.RoutePlanner;
// callers fall back to straight-line distance when it errors.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a routing client against an OSRM server base URL,
// e.g. "https://router.project-osrm.org".
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger.With("component", "osrm.Client"),
	}
}

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// Route resolves the fastest driving route between two points. OSRM takes
// coordinates in lng,lat order.
func (c *Client) Route(ctx context.Context, from, to kernel.Coordinates) (ports.RouteInfo, error) {
	url := fmt.Sprintf(
		"%s/route/v1/driving/%f,%f;%f,%f?overview=false",
		c.baseURL,
		from.Lng(), from.Lat(),
		to.Lng(), to.Lat(),
	)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.RouteInfo{}, fmt.Errorf("build route request: %w", err)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return ports.RouteInfo{}, fmt.Errorf("call routing service: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, response.Body)
		_ = response.Body.Close()
	}()

	if response.StatusCode != http.StatusOK {
		c.logger.Warn("routing service returned non-200", "status", response.StatusCode)
		return ports.RouteInfo{}, fmt.Errorf("routing service status %d", response.StatusCode)
	}

	var decoded routeResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return ports.RouteInfo{}, fmt.Errorf("decode route response: %w", err)
	}

	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return ports.RouteInfo{}, errs.NewObjectNotFoundError("route", decoded.Code)
	}

	return ports.RouteInfo{
		DistanceMeters:  decoded.Routes[0].Distance,
		DurationSeconds: decoded.Routes[0].Duration,
	}, nil
}
