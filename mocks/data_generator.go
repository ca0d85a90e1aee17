package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rxtech-lab/b3-extractor/pkg/marketdata"
)

// DataGenerator generates realistic price tables for tests.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how bars are generated.
type GeneratorConfig struct {
	// StartDate is the date of the first bar
	StartDate time.Time
	// Interval is the spacing between bars
	Interval marketdata.Interval
	// Count is the number of bars to generate
	Count int
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% typical daily volatility)
	Volatility float64
	// Trend is the drift factor (-0.01 to 0.01 for bearish to bullish)
	Trend float64
	// VolumeBase is the average volume per bar
	VolumeBase float64
	// VolumeVariance is the variance in volume (0.0 to 1.0)
	VolumeVariance float64
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		StartDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
		Interval:       marketdata.IntervalOneDay,
		Count:          20,
		InitialPrice:   37.5,
		Volatility:     0.015,
		Trend:          0.0,
		VolumeBase:     30_000_000,
		VolumeVariance: 0.3,
	}
}

// Generate builds a table shaped like a Yahoo chart response: Date, Open,
// High, Low, Close, Adj Close and Volume. Prices follow a geometric Brownian
// motion and are rounded to cents.
func (g *DataGenerator) Generate(config GeneratorConfig) *marketdata.Table {
	table := marketdata.NewTable(
		marketdata.ColumnDate,
		marketdata.ColumnOpen,
		marketdata.ColumnHigh,
		marketdata.ColumnLow,
		marketdata.ColumnClose,
		marketdata.ColumnAdjClose,
		marketdata.ColumnVolume,
	)

	currentPrice := config.InitialPrice
	currentDate := config.StartDate

	for i := 0; i < config.Count; i++ {
		open := currentPrice

		// Box-Muller transform for a normal sample
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		priceChange := config.Volatility * z
		drift := config.Trend / float64(config.Count)

		close := open * (1 + priceChange + drift)
		if close <= 0 {
			close = open * 0.99
		}

		highExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)
		lowExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)

		high := math.Max(open, close) + highExtension
		low := math.Min(open, close) - lowExtension
		if low <= 0 {
			low = math.Min(open, close) * 0.99
		}

		volumeVariation := 1.0 + (g.rng.Float64()*2-1)*config.VolumeVariance
		volume := config.VolumeBase * volumeVariation
		if volume < 0 {
			volume = config.VolumeBase * 0.1
		}

		// dividends are ignored, so adjusted close trails close by a fixed ratio
		_ = table.Append(
			marketdata.TimeCell(currentDate),
			price(open),
			price(high),
			price(low),
			price(close),
			price(close*0.95),
			marketdata.NumberCell(decimal.NewFromFloat(volume).Round(0)),
		)

		currentPrice = close
		currentDate = Next(currentDate, config.Interval)
	}

	return table
}

// Next returns the date of the bar after t.
// Daily bars skip weekends.
func Next(t time.Time, interval marketdata.Interval) time.Time {
	switch interval {
	case marketdata.IntervalOneDay:
		next := t.AddDate(0, 0, 1)
		for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
			next = next.AddDate(0, 0, 1)
		}

		return next
	case marketdata.IntervalFiveDays, marketdata.IntervalOneWeek:
		return t.AddDate(0, 0, 7)
	case marketdata.IntervalOneMonth:
		return t.AddDate(0, 1, 0)
	case marketdata.IntervalThreeMonths:
		return t.AddDate(0, 3, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// GenerateBars is a convenience function returning count bars with default
// settings from start.
func GenerateBars(start time.Time, interval marketdata.Interval, count int) *marketdata.Table {
	gen := NewDataGenerator(42) // Fixed seed for reproducibility
	config := DefaultConfig()
	config.StartDate = start
	config.Interval = interval
	config.Count = count

	return gen.Generate(config)
}

func price(val float64) marketdata.Cell {
	return marketdata.NumberCell(decimal.NewFromFloat(val).Round(2))
}
