package finance

import (
	"time"

	"github.com/go-openapi/strfmt"
)

// Quote is the current snapshot of a single ticker.
// Numeric fields are nil when the provider does not report them.
type Quote struct {
	Symbol           string          `json:"symbol"`
	Name             string          `json:"name,omitempty"`
	Currency         string          `json:"currency,omitempty"`
	Exchange         string          `json:"exchange,omitempty"`
	Price            *float64        `json:"price"`
	PreviousClose    *float64        `json:"previous_close"`
	Open             *float64        `json:"open"`
	DayHigh          *float64        `json:"day_high"`
	DayLow           *float64        `json:"day_low"`
	Volume           *int64          `json:"volume"`
	MarketCap        *float64        `json:"market_cap"`
	PERatio          *float64        `json:"pe_ratio"`
	DividendYield    *float64        `json:"dividend_yield"`
	FiftyTwoWeekHigh *float64        `json:"fifty_two_week_high"`
	FiftyTwoWeekLow  *float64        `json:"fifty_two_week_low"`
	Timestamp        strfmt.DateTime `json:"timestamp"`
}

// Bar is one OHLCV row of a historical series.
type Bar struct {
	// Time is the bar start, used for ordering only
	Time   time.Time `json:"-"`
	Date   string    `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}
