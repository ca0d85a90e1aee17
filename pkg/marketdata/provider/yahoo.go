package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rxtech-lab/b3-extractor/pkg/marketdata"
)

// DefaultYahooBaseURL is the public chart API host.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// yahooNotFound is the chart error code for unknown or delisted symbols.
const yahooNotFound = "Not Found"

// YahooClient fetches bars from the Yahoo Finance v8 chart API.
type YahooClient struct {
	client *resty.Client
}

// NewYahooClient creates a client against baseURL. An empty baseURL uses the
// public host; a zero timeout leaves the HTTP client without one.
func NewYahooClient(baseURL string, timeout time.Duration) *YahooClient {
	if baseURL == "" {
		baseURL = DefaultYahooBaseURL
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", "Mozilla/5.0").
		SetHeader("Accept", "application/json")

	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &YahooClient{
		client: client,
	}
}

// yahooChart is the response structure from the chart API.
type yahooChart struct {
	Chart struct {
		Result []yahooResult `json:"result"`
		Error  *yahooError   `json:"error"`
	} `json:"chart"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type yahooResult struct {
	Meta struct {
		Symbol               string `json:"symbol"`
		Currency             string `json:"currency"`
		ExchangeTimezoneName string `json:"exchangeTimezoneName"`
		GMTOffset            int    `json:"gmtoffset"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*float64 `json:"volume"`
		} `json:"quote"`
		AdjClose []struct {
			AdjClose []*float64 `json:"adjclose"`
		} `json:"adjclose"`
	} `json:"indicators"`
}

// Fetch implements Provider.
func (c *YahooClient) Fetch(ctx context.Context, symbol string, start time.Time, end time.Time, interval marketdata.Interval) (*marketdata.Table, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParams(map[string]string{
			"period1":              strconv.FormatInt(utcMidnight(start).Unix(), 10),
			"period2":              strconv.FormatInt(utcMidnight(end).AddDate(0, 0, 1).Unix(), 10),
			"interval":             string(interval),
			"events":               "div,splits",
			"includeAdjustedClose": "true",
		}).
		Get("/v8/finance/chart/{symbol}")
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch %s: %w", symbol, err)
	}

	var chart yahooChart
	if decodeErr := json.Unmarshal(resp.Body(), &chart); decodeErr != nil {
		if resp.IsError() {
			return nil, fmt.Errorf("yahoo: status %d", resp.StatusCode())
		}

		return nil, fmt.Errorf("yahoo decode: %w", decodeErr)
	}

	if chart.Chart.Error != nil {
		if chart.Chart.Error.Code == yahooNotFound {
			return marketdata.NewTable(yahooColumns()...), nil
		}

		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("yahoo: status %d", resp.StatusCode())
	}

	if len(chart.Chart.Result) == 0 {
		return marketdata.NewTable(yahooColumns()...), nil
	}

	return toTable(chart.Chart.Result[0])
}

func yahooColumns() []string {
	return []string{
		marketdata.ColumnDate,
		marketdata.ColumnOpen,
		marketdata.ColumnHigh,
		marketdata.ColumnLow,
		marketdata.ColumnClose,
		marketdata.ColumnAdjClose,
		marketdata.ColumnVolume,
	}
}

func toTable(result yahooResult) (*marketdata.Table, error) {
	table := marketdata.NewTable(yahooColumns()...)
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return table, nil
	}

	loc := exchangeLocation(result.Meta.ExchangeTimezoneName, result.Meta.GMTOffset)
	quote := result.Indicators.Quote[0]

	var adjClose []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adjClose = result.Indicators.AdjClose[0].AdjClose
	}

	for i, ts := range result.Timestamp {
		open, high, low, closePrice := at(quote.Open, i), at(quote.High, i), at(quote.Low, i), at(quote.Close, i)
		if open == nil && high == nil && low == nil && closePrice == nil {
			continue // holidays and other empty bars
		}

		adj := at(adjClose, i)
		if adj == nil {
			adj = closePrice
		}

		local := time.Unix(ts, 0).In(loc)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

		err := table.Append(
			marketdata.TimeCell(day),
			floatOrNull(open),
			floatOrNull(high),
			floatOrNull(low),
			floatOrNull(closePrice),
			floatOrNull(adj),
			floatOrNull(at(quote.Volume, i)),
		)
		if err != nil {
			return nil, err
		}
	}

	return table, nil
}

func at(values []*float64, i int) *float64 {
	if i < len(values) {
		return values[i]
	}

	return nil
}

func floatOrNull(v *float64) marketdata.Cell {
	if v == nil {
		return marketdata.NullCell()
	}

	return marketdata.FloatCell(*v)
}

func exchangeLocation(name string, gmtOffset int) *time.Location {
	if name != "" {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}

	return time.FixedZone("exchange", gmtOffset)
}

func utcMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
