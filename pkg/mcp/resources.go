package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rhobs/finance-mcp/pkg/finance"
)

const (
	resourceScheme   = "finance"
	resourceMIMEType = "application/json"
)

// StockInfoURI returns the resource URI holding the quote of a symbol
func StockInfoURI(symbol string) string {
	return fmt.Sprintf("%s://%s/info", resourceScheme, symbol)
}

// ParseStockInfoURI extracts the symbol from a finance://<symbol>/info URI.
// The symbol may be percent-encoded, e.g. finance://%5EGSPC/info for ^GSPC.
func ParseStockInfoURI(uri string) (string, bool) {
	rest, ok := strings.CutPrefix(uri, resourceScheme+"://")
	if !ok {
		return "", false
	}
	rest, ok = strings.CutSuffix(rest, "/info")
	if !ok {
		return "", false
	}

	raw, err := url.PathUnescape(rest)
	if err != nil {
		return "", false
	}
	symbol := finance.NormalizeSymbol(raw)
	if symbol == "" || strings.Contains(symbol, "/") {
		return "", false
	}
	return symbol, true
}

func SetupResources(mcpServer *mcp.Server, loader finance.Loader, symbol string) {
	handler := StockInfoResourceHandler(loader)

	mcpServer.AddResource(
		&mcp.Resource{
			URI:         StockInfoURI(symbol),
			Name:        fmt.Sprintf("%s stock info", symbol),
			Description: fmt.Sprintf("Current stock information for %s", symbol),
			MIMEType:    resourceMIMEType,
		},
		handler,
	)

	mcpServer.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: resourceScheme + "://{symbol}/info",
			Name:        "Stock info",
			Description: "Current stock information for any ticker symbol",
			MIMEType:    resourceMIMEType,
		},
		handler,
	)
}

// StockInfoResourceHandler serves quotes for finance://<symbol>/info URIs
func StockInfoResourceHandler(loader finance.Loader) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := req.Params.URI
		symbol, ok := ParseStockInfoURI(uri)
		if !ok {
			return nil, mcp.ResourceNotFoundError(uri)
		}

		slog.Debug("Reading stock info resource", "uri", uri, "symbol", symbol)

		quote, err := loader.StockInfo(ctx, symbol)
		if err != nil {
			slog.Error("failed to read stock info resource", "uri", uri, "error", err)
			return nil, fmt.Errorf("stock API error: %w", err)
		}

		text, err := json.MarshalIndent(quote, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal quote: %w", err)
		}

		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      uri,
				MIMEType: resourceMIMEType,
				Text:     string(text),
			}},
		}, nil
	}
}
