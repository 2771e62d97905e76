package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rhobs/finance-mcp/pkg/finance"
)

func TestParseStockInfoURI(t *testing.T) {
	tests := []struct {
		uri      string
		expected string
		ok       bool
	}{
		{uri: "finance://AAPL/info", expected: "AAPL", ok: true},
		{uri: "finance://msft/info", expected: "MSFT", ok: true},
		{uri: "finance://BRK-B/info", expected: "BRK-B", ok: true},
		{uri: "finance://^GSPC/info", expected: "^GSPC", ok: true},
		{uri: "finance://%5EGSPC/info", expected: "^GSPC", ok: true},
		{uri: "finance://EURUSD=X/info", expected: "EURUSD=X", ok: true},
		{uri: "finance://A/B/info", ok: false},
		{uri: "finance://%2F/info", ok: false},
		{uri: "finance://%zz/info", ok: false},
		{uri: "finance://AAPL/news", ok: false},
		{uri: "finance:///info", ok: false},
		{uri: "stocks://AAPL/info", ok: false},
		{uri: "finance://AAPL/info?x=1", ok: false},
		{uri: "::not a uri", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			symbol, ok := ParseStockInfoURI(tt.uri)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if symbol != tt.expected {
				t.Errorf("expected symbol %q, got %q", tt.expected, symbol)
			}
		})
	}
}

func TestResources(t *testing.T) {
	mock := &finance.MockedLoader{
		StockInfoFunc: func(ctx context.Context, symbol string) (*finance.Quote, error) {
			if symbol == "ZZZZ999" {
				return nil, errors.New("no quote found for symbol ZZZZ999")
			}
			return &finance.Quote{Symbol: symbol, Price: float(100)}, nil
		},
	}
	session := newTestSession(t, mock)
	ctx := context.Background()

	t.Run("Default symbol is listed", func(t *testing.T) {
		result, err := session.ListResources(ctx, &mcp.ListResourcesParams{})
		if err != nil {
			t.Fatalf("ListResources failed: %v", err)
		}
		if len(result.Resources) != 1 || result.Resources[0].URI != "finance://AAPL/info" {
			t.Errorf("unexpected resources: %+v", result.Resources)
		}
	})

	t.Run("Any symbol can be read", func(t *testing.T) {
		result, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: "finance://MSFT/info"})
		if err != nil {
			t.Fatalf("ReadResource failed: %v", err)
		}
		if len(result.Contents) != 1 {
			t.Fatalf("expected one content, got %d", len(result.Contents))
		}

		var quote finance.Quote
		if err := json.Unmarshal([]byte(result.Contents[0].Text), &quote); err != nil {
			t.Fatalf("expected quote JSON: %v", err)
		}
		if quote.Symbol != "MSFT" {
			t.Errorf("expected MSFT, got %q", quote.Symbol)
		}
	})

	t.Run("Index symbols are percent-decoded", func(t *testing.T) {
		result, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: "finance://%5EGSPC/info"})
		if err != nil {
			t.Fatalf("ReadResource failed: %v", err)
		}

		var quote finance.Quote
		if err := json.Unmarshal([]byte(result.Contents[0].Text), &quote); err != nil {
			t.Fatalf("expected quote JSON: %v", err)
		}
		if quote.Symbol != "^GSPC" {
			t.Errorf("expected ^GSPC, got %q", quote.Symbol)
		}
	})

	t.Run("Provider failure", func(t *testing.T) {
		if _, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: "finance://ZZZZ999/info"}); err == nil {
			t.Error("expected error for failed provider call")
		}
	})

	t.Run("Unknown resource", func(t *testing.T) {
		if _, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: "finance://AAPL/news"}); err == nil {
			t.Error("expected error for unknown resource")
		}
	})
}
