package provider

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"

	"github.com/rxtech-lab/b3-extractor/pkg/marketdata"
)

// PolygonAggsIterator is the subset of the client-go iterator used here.
type PolygonAggsIterator interface {
	Next() bool
	Item() models.Agg
	Err() error
}

// PolygonAPIClient is the subset of the client-go REST client used here.
type PolygonAPIClient interface {
	ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator
}

type polygonRESTClient struct {
	client *polygon.Client
}

func (c *polygonRESTClient) ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator {
	return c.client.ListAggs(ctx, params, options...)
}

type PolygonClient struct {
	apiClient PolygonAPIClient
}

func NewPolygonClient(apiKey string) (Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}

	return &PolygonClient{
		apiClient: &polygonRESTClient{client: polygon.New(apiKey)},
	}, nil
}

// NewPolygonClientWithAPI creates a client on top of an existing API client.
func NewPolygonClientWithAPI(apiClient PolygonAPIClient) *PolygonClient {
	return &PolygonClient{
		apiClient: apiClient,
	}
}

// Fetch implements Provider.
func (c *PolygonClient) Fetch(ctx context.Context, symbol string, start time.Time, end time.Time, interval marketdata.Interval) (*marketdata.Table, error) {
	table := marketdata.NewTable(
		marketdata.ColumnDate,
		marketdata.ColumnOpen,
		marketdata.ColumnHigh,
		marketdata.ColumnLow,
		marketdata.ColumnClose,
		marketdata.ColumnVolume,
		marketdata.ColumnVWAP,
		marketdata.ColumnTransactions,
	)

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: interval.Multiplier(),
		Timespan:   interval.Timespan(),
		From:       models.Millis(utcMidnight(start)),
		To:         models.Millis(utcMidnight(end).AddDate(0, 0, 1).Add(-time.Millisecond)),
	}.WithLimit(50000)

	iter := c.apiClient.ListAggs(ctx, params)

	for iter.Next() {
		agg := iter.Item()
		ts := time.Time(agg.Timestamp).UTC()

		err := table.Append(
			marketdata.TimeCell(time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)),
			marketdata.FloatCell(agg.Open),
			marketdata.FloatCell(agg.High),
			marketdata.FloatCell(agg.Low),
			marketdata.FloatCell(agg.Close),
			marketdata.FloatCell(agg.Volume),
			marketdata.FloatCell(agg.VWAP),
			marketdata.FloatCell(float64(agg.Transactions)),
		)
		if err != nil {
			return nil, err
		}
	}

	if iter.Err() != nil {
		return nil, fmt.Errorf("error iterating polygon aggregates: %w", iter.Err())
	}

	return table, nil
}
