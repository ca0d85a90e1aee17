package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"syscall"
	"time"

	"github.com/rxtech-lab/b3-extractor/pkg/marketdata"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderYahoo   ProviderType = "yahoo"
	ProviderPolygon ProviderType = "polygon"
)

// ErrConnection marks failures to reach the provider at all, as opposed to the
// provider answering with an error.
var ErrConnection = errors.New("connection failure")

// Provider fetches historical price bars.
type Provider interface {
	// Fetch returns the bars for symbol between start and end, both dates inclusive.
	// An empty table with a nil error means the provider has no data for the request.
	// example:
	// Fetch(ctx, "PETR4.SA", time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), time.Date(2024, 1, 31, 0, 0, 0, 0, time.Local), marketdata.IntervalOneDay)
	Fetch(ctx context.Context, symbol string, start time.Time, end time.Time, interval marketdata.Interval) (*marketdata.Table, error)
}

// Config carries the settings every provider constructor may need.
type Config struct {
	YahooBaseURL  string
	Timeout       time.Duration
	PolygonApiKey string
}

// ProviderInfo contains metadata about a market data provider.
type ProviderInfo struct {
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	Description  string `json:"description"`
	RequiresAuth bool   `json:"requiresAuth"`
}

// providerRegistry holds metadata about all supported providers.
var providerRegistry = map[ProviderType]ProviderInfo{
	ProviderYahoo: {
		Name:         string(ProviderYahoo),
		DisplayName:  "Yahoo Finance",
		Description:  "Public chart API with daily to quarterly bars for B3 symbols (.SA)",
		RequiresAuth: false,
	},
	ProviderPolygon: {
		Name:         string(ProviderPolygon),
		DisplayName:  "Polygon.io",
		Description:  "Aggregate bars from Polygon.io, requires an API key",
		RequiresAuth: true,
	},
}

// NewMarketDataProvider creates a new market data provider based on the provider type.
func NewMarketDataProvider(providerType ProviderType, config Config) (Provider, error) {
	switch providerType {
	case ProviderYahoo:
		return NewYahooClient(config.YahooBaseURL, config.Timeout), nil
	case ProviderPolygon:
		return NewPolygonClient(config.PolygonApiKey)
	default:
		return nil, fmt.Errorf("unsupported market data provider: %s", providerType)
	}
}

// GetSupportedProviders returns the names of all supported providers, sorted.
func GetSupportedProviders() []string {
	providers := make([]string, 0, len(providerRegistry))
	for providerType := range providerRegistry {
		providers = append(providers, string(providerType))
	}

	sort.Strings(providers)

	return providers
}

// GetProviderInfo returns metadata for a specific provider.
func GetProviderInfo(providerName string) (ProviderInfo, error) {
	info, exists := providerRegistry[ProviderType(providerName)]
	if !exists {
		return ProviderInfo{}, fmt.Errorf("unsupported provider: %s", providerName)
	}

	return info, nil
}

// IsConnectionError reports whether err means the provider could not be
// reached: refused or reset connections, DNS failures, network timeouts.
func IsConnectionError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	if errors.Is(err, ErrConnection) {
		return true
	}

	for _, errno := range []syscall.Errno{syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ENETUNREACH, syscall.EHOSTUNREACH} {
		if errors.Is(err, errno) {
			return true
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded)
}
