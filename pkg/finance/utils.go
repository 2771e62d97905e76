package finance

import (
	"slices"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
)

const (
	DefaultPeriod   = "1mo"
	DefaultInterval = "1d"
)

// Periods lists the ranges accepted by the chart endpoint
var Periods = []string{"1d", "5d", "1mo", "3mo", "6mo", "1y", "2y", "5y", "10y", "ytd", "max"}

// Intervals lists the bar sizes accepted by the chart endpoint
var Intervals = []string{"1m", "2m", "5m", "15m", "30m", "60m", "90m", "1h", "1d", "5d", "1wk", "1mo", "3mo"}

var intradayIntervals = []string{"1m", "2m", "5m", "15m", "30m", "60m", "90m", "1h"}

func IsValidPeriod(period string) bool {
	return slices.Contains(Periods, period)
}

func IsValidInterval(interval string) bool {
	return slices.Contains(Intervals, interval)
}

// IsIntraday reports whether bars of the interval are shorter than a trading day
func IsIntraday(interval string) bool {
	return slices.Contains(intradayIntervals, interval)
}

// NormalizeSymbol trims and upper-cases a ticker symbol
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// FormatBarDate renders a bar timestamp in the exchange location.
// Daily and coarser bars carry only the calendar date.
func FormatBarDate(t time.Time, loc *time.Location, interval string) string {
	if loc != nil {
		t = t.In(loc)
	}
	if IsIntraday(interval) {
		return strfmt.DateTime(t).String()
	}
	return strfmt.Date(t).String()
}
