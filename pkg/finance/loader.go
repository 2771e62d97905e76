package finance

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
	_ "time/tzdata" // exchange timezones in minimal containers

	"github.com/go-openapi/strfmt"
	promcfg "github.com/prometheus/common/config"
	"golang.org/x/sync/singleflight"

	"github.com/rhobs/finance-mcp/pkg/metrics"
)

const (
	// DefaultBaseURL is the Yahoo Finance query host
	DefaultBaseURL = "https://query1.finance.yahoo.com"
	// DefaultCookieURL is visited once per session to obtain the consent cookie
	DefaultCookieURL = "https://fc.yahoo.com"
	// DefaultTimeout bounds a single provider request
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is sent with every request; the provider rejects empty agents
	DefaultUserAgent = "Mozilla/5.0 (compatible; finance-mcp)"

	maxErrorBodyLength = 512
)

// Loader defines the interface for querying the financial data provider
type Loader interface {
	StockInfo(ctx context.Context, symbol string) (*Quote, error)
	History(ctx context.Context, symbol, period, interval string) ([]Bar, error)
}

// ClientConfig configures the Yahoo Finance client
type ClientConfig struct {
	BaseURL   string
	CookieURL string
	Timeout   time.Duration
	Insecure  bool
	ProxyURL  string
	UserAgent string
}

// YahooLoader implements Loader against the Yahoo Finance HTTP API
type YahooLoader struct {
	httpClient *http.Client
	baseURL    string
	cookieURL  string
	timeout    time.Duration

	mu         sync.Mutex
	crumb      string
	crumbGroup singleflight.Group
}

// Ensure YahooLoader implements Loader at compile time
var _ Loader = (*YahooLoader)(nil)

func NewYahooLoader(cfg ClientConfig) (*YahooLoader, error) {
	httpCfg := promcfg.DefaultHTTPClientConfig
	httpCfg.TLSConfig.InsecureSkipVerify = cfg.Insecure

	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL: %w", err)
		}
		httpCfg.ProxyURL = promcfg.URL{URL: proxyURL}
	}

	if err := httpCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid HTTP client configuration: %w", err)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	httpClient, err := promcfg.NewClientFromConfig(httpCfg, "finance-mcp", promcfg.WithUserAgent(userAgent))
	if err != nil {
		return nil, fmt.Errorf("error creating HTTP client: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("error creating cookie jar: %w", err)
	}
	httpClient.Jar = jar

	return newYahooLoader(httpClient, cfg), nil
}

func newYahooLoader(httpClient *http.Client, cfg ClientConfig) *YahooLoader {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	cookieURL := cfg.CookieURL
	if cookieURL == "" {
		cookieURL = DefaultCookieURL
	}

	return &YahooLoader{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		cookieURL:  cookieURL,
		timeout:    cfg.Timeout,
	}
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type yahooQuote struct {
	Symbol                     string   `json:"symbol"`
	LongName                   string   `json:"longName"`
	ShortName                  string   `json:"shortName"`
	Currency                   string   `json:"currency"`
	FullExchangeName           string   `json:"fullExchangeName"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice"`
	RegularMarketPreviousClose *float64 `json:"regularMarketPreviousClose"`
	RegularMarketOpen          *float64 `json:"regularMarketOpen"`
	RegularMarketDayHigh       *float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow        *float64 `json:"regularMarketDayLow"`
	RegularMarketVolume        *float64 `json:"regularMarketVolume"`
	MarketCap                  *float64 `json:"marketCap"`
	ForwardPE                  *float64 `json:"forwardPE"`
	DividendYield              *float64 `json:"dividendYield"`
	FiftyTwoWeekHigh           *float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow            *float64 `json:"fiftyTwoWeekLow"`
}

type yahooQuoteResponse struct {
	QuoteResponse struct {
		Result []yahooQuote `json:"result"`
		Error  *yahooError  `json:"error"`
	} `json:"quoteResponse"`
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol               string `json:"symbol"`
				ExchangeTimezoneName string `json:"exchangeTimezoneName"`
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
			} `json:"indicators"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"chart"`
}

// StockInfo fetches the current quote for a symbol
func (y *YahooLoader) StockInfo(ctx context.Context, symbol string) (*Quote, error) {
	symbol = NormalizeSymbol(symbol)

	ctx, cancel := y.withTimeout(ctx)
	defer cancel()

	crumb, err := y.getCrumb(ctx)
	if err != nil {
		return nil, fmt.Errorf("error obtaining session crumb: %w", err)
	}

	q := url.Values{}
	q.Set("symbols", symbol)
	q.Set("crumb", crumb)

	var resp yahooQuoteResponse
	status, err := y.getJSON(ctx, "quote", y.baseURL+"/v7/finance/quote?"+q.Encode(), &resp)
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		y.resetCrumb()
	}
	if resp.QuoteResponse.Error != nil {
		return nil, resp.QuoteResponse.Error
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching quote: %w", err)
	}

	for _, r := range resp.QuoteResponse.Result {
		if !strings.EqualFold(r.Symbol, symbol) {
			continue
		}
		return toQuote(r), nil
	}

	return nil, fmt.Errorf("no quote found for symbol %s", symbol)
}

// History fetches OHLCV bars for a symbol over a period
func (y *YahooLoader) History(ctx context.Context, symbol, period, interval string) ([]Bar, error) {
	symbol = NormalizeSymbol(symbol)

	ctx, cancel := y.withTimeout(ctx)
	defer cancel()

	q := url.Values{}
	q.Set("range", period)
	q.Set("interval", interval)
	q.Set("includePrePost", "false")

	var resp yahooChartResponse
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.baseURL, url.PathEscape(symbol), q.Encode())
	_, err := y.getJSON(ctx, "chart", endpoint, &resp)
	if resp.Chart.Error != nil {
		return nil, resp.Chart.Error
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching chart: %w", err)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no data found for symbol %s", symbol)
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no data found for symbol %s", symbol)
	}
	quote := result.Indicators.Quote[0]

	var loc *time.Location
	if result.Meta.ExchangeTimezoneName != "" {
		loc, err = time.LoadLocation(result.Meta.ExchangeTimezoneName)
		if err != nil {
			slog.Debug("Unknown exchange timezone, using UTC", "timezone", result.Meta.ExchangeTimezoneName, "err", err)
			loc = time.UTC
		}
	}

	bars := make([]Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		open, okOpen := valueAt(quote.Open, i)
		high, okHigh := valueAt(quote.High, i)
		low, okLow := valueAt(quote.Low, i)
		closePrice, okClose := valueAt(quote.Close, i)
		// rows without a full set of prices are gaps in the series
		if !okOpen || !okHigh || !okLow || !okClose {
			continue
		}
		volume, _ := valueAt(quote.Volume, i)

		t := time.Unix(ts, 0).UTC()
		bars = append(bars, Bar{
			Time:   t,
			Date:   FormatBarDate(t, loc, interval),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: int64(volume),
		})
	}

	return bars, nil
}

func (e *yahooError) Error() string {
	if e.Description != "" {
		return e.Description
	}
	return e.Code
}

func (y *YahooLoader) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if y.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, y.timeout)
}

// getJSON decodes the response body into out even for error statuses,
// since the provider reports failures inside the JSON envelope.
func (y *YahooLoader) getJSON(ctx context.Context, endpoint, rawURL string, out any) (int, error) {
	body, status, err := y.doRequest(ctx, endpoint, rawURL)
	if err != nil {
		return status, err
	}

	decodeErr := json.Unmarshal(body, out)
	if status < 200 || status >= 300 {
		return status, fmt.Errorf("request failed with status %d: %s", status, truncate(string(body)))
	}
	if decodeErr != nil {
		return status, fmt.Errorf("error decoding response: %w", decodeErr)
	}
	return status, nil
}

func (y *YahooLoader) doRequest(ctx context.Context, endpoint, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := y.httpClient.Do(req)
	if err != nil {
		metrics.ObserveProvider(endpoint, "error", time.Since(start))
		return nil, 0, err
	}
	defer resp.Body.Close()
	metrics.ObserveProvider(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}

	return bodyBytes, resp.StatusCode, nil
}

// getCrumb returns the cached session crumb, fetching it once for all concurrent
// callers. Each caller stops waiting when its own context is done.
func (y *YahooLoader) getCrumb(ctx context.Context) (string, error) {
	y.mu.Lock()
	crumb := y.crumb
	y.mu.Unlock()
	if crumb != "" {
		return crumb, nil
	}

	ch := y.crumbGroup.DoChan("crumb", func() (any, error) {
		// the fetch is shared, so it must outlive the caller that started it
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cmp.Or(y.timeout, DefaultTimeout))
		defer cancel()
		return y.fetchCrumb(fetchCtx)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (y *YahooLoader) fetchCrumb(ctx context.Context) (string, error) {
	// The cookie endpoint answers with an error status but still sets the session cookie
	if _, _, err := y.doRequest(ctx, "cookie", y.cookieURL); err != nil {
		return "", err
	}

	body, status, err := y.doRequest(ctx, "crumb", y.baseURL+"/v1/test/getcrumb")
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("request failed with status %d: %s", status, truncate(string(body)))
	}

	crumb := strings.TrimSpace(string(body))
	if crumb == "" || strings.ContainsAny(crumb, "<{") {
		return "", errors.New("provider returned an invalid crumb")
	}

	slog.Debug("Obtained provider session crumb")
	y.mu.Lock()
	y.crumb = crumb
	y.mu.Unlock()
	return crumb, nil
}

func (y *YahooLoader) resetCrumb() {
	y.mu.Lock()
	defer y.mu.Unlock()
	y.crumb = ""
}

func toQuote(r yahooQuote) *Quote {
	name := r.LongName
	if name == "" {
		name = r.ShortName
	}

	var volume *int64
	if r.RegularMarketVolume != nil {
		v := int64(*r.RegularMarketVolume)
		volume = &v
	}

	return &Quote{
		Symbol:           r.Symbol,
		Name:             name,
		Currency:         r.Currency,
		Exchange:         r.FullExchangeName,
		Price:            r.RegularMarketPrice,
		PreviousClose:    r.RegularMarketPreviousClose,
		Open:             r.RegularMarketOpen,
		DayHigh:          r.RegularMarketDayHigh,
		DayLow:           r.RegularMarketDayLow,
		Volume:           volume,
		MarketCap:        r.MarketCap,
		PERatio:          r.ForwardPE,
		DividendYield:    r.DividendYield,
		FiftyTwoWeekHigh: r.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:  r.FiftyTwoWeekLow,
		Timestamp:        strfmt.DateTime(time.Now().UTC()),
	}
}

func valueAt(values []*float64, i int) (float64, bool) {
	if i >= len(values) || values[i] == nil {
		return 0, false
	}
	return *values[i], true
}

func truncate(s string) string {
	if len(s) > maxErrorBodyLength {
		return s[:maxErrorBodyLength] + "..."
	}
	return s
}
