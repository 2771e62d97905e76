package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/rhobs/finance-mcp/pkg/finance"
	"github.com/rhobs/finance-mcp/pkg/resultutil"
)

// GetString is a helper to extract a string parameter with a default value
func GetString(params map[string]any, key, defaultValue string) string {
	if val, ok := params[key]; ok {
		if str, ok := val.(string); ok && str != "" {
			return str
		}
	}
	return defaultValue
}

func BuildStockInfoInput(args map[string]any) StockInfoInput {
	return StockInfoInput{
		Ticker: GetString(args, "ticker", ""),
	}
}

func BuildHistoricalDataInput(args map[string]any) HistoricalDataInput {
	return HistoricalDataInput{
		Ticker:   GetString(args, "ticker", ""),
		Period:   GetString(args, "period", finance.DefaultPeriod),
		Interval: GetString(args, "interval", finance.DefaultInterval),
	}
}

// GetStockInfoHandler handles fetching the current quote for a ticker.
func GetStockInfoHandler(ctx context.Context, loader finance.Loader, input StockInfoInput) *resultutil.Result {
	slog.Info("GetStockInfoHandler called")
	slog.Debug("GetStockInfoHandler params", "input", input)

	ticker := finance.NormalizeSymbol(input.Ticker)
	if ticker == "" {
		return resultutil.NewErrorResult(InvalidArgumentError("ticker", "parameter is required and must not be empty"))
	}

	quote, err := loader.StockInfo(ctx, ticker)
	if err != nil {
		slog.Error("failed to fetch stock info", "ticker", ticker, "error", err)
		return resultutil.NewErrorResult(ProviderError(err, "failed to fetch stock info for %s", ticker))
	}
	if quote == nil {
		return resultutil.NewErrorResult(ProviderError(errors.New("empty response"), "failed to fetch stock info for %s", ticker))
	}

	slog.Info("GetStockInfoHandler executed successfully", "ticker", ticker)
	slog.Debug("GetStockInfoHandler results", "quote", quote)

	return resultutil.NewSuccessResult(quote)
}

// GetHistoricalDataHandler handles fetching OHLCV bars for a ticker.
func GetHistoricalDataHandler(ctx context.Context, loader finance.Loader, input HistoricalDataInput) *resultutil.Result {
	slog.Info("GetHistoricalDataHandler called")
	slog.Debug("GetHistoricalDataHandler params", "input", input)

	ticker := finance.NormalizeSymbol(input.Ticker)
	if ticker == "" {
		return resultutil.NewErrorResult(InvalidArgumentError("ticker", "parameter is required and must not be empty"))
	}
	if !finance.IsValidPeriod(input.Period) {
		return resultutil.NewErrorResult(InvalidArgumentError("period", "unsupported period %q", input.Period))
	}
	if !finance.IsValidInterval(input.Interval) {
		return resultutil.NewErrorResult(InvalidArgumentError("interval", "unsupported interval %q", input.Interval))
	}

	bars, err := loader.History(ctx, ticker, input.Period, input.Interval)
	if err != nil {
		slog.Error("failed to fetch historical data", "ticker", ticker, "error", err)
		return resultutil.NewErrorResult(ProviderError(err, "failed to fetch historical data for %s", ticker))
	}
	if len(bars) == 0 {
		return resultutil.NewErrorResult(ProviderError(
			fmt.Errorf("no data found for symbol %s", ticker),
			"failed to fetch historical data for %s", ticker))
	}

	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Time.Before(bars[j].Time)
	})

	slog.Info("GetHistoricalDataHandler executed successfully", "ticker", ticker, "resultLength", len(bars))
	slog.Debug("GetHistoricalDataHandler results", "bars", bars)

	output := HistoricalDataOutput{
		Ticker:   ticker,
		Period:   input.Period,
		Interval: input.Interval,
		Data:     bars,
	}
	return resultutil.NewStructuredResult(bars, output)
}
