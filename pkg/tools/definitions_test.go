package tools

import (
	"encoding/json"
	"reflect"
	"slices"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/rhobs/finance-mcp/pkg/finance"
)

func TestListTools(t *testing.T) {
	first := ListTools()
	second := ListTools()

	if !reflect.DeepEqual(first, second) {
		t.Error("expected ListTools to be idempotent")
	}

	names := make([]ToolName, 0, len(first))
	for _, def := range first {
		names = append(names, def.Name)
	}
	expected := []ToolName{GetStockInfoName, GetHistoricalDataName}
	if !slices.Equal(names, expected) {
		t.Errorf("expected catalog %v, got %v", expected, names)
	}

	// mutating a returned copy must not leak into the catalog
	first[1].Params[1].Enum[0] = "changed"
	first[0].Description = "changed"
	if !reflect.DeepEqual(second, ListTools()) {
		t.Error("expected catalog to be unaffected by caller mutation")
	}
}

func TestLookup(t *testing.T) {
	def, ok := Lookup("get_historical_data")
	if !ok {
		t.Fatal("expected get_historical_data to be found")
	}
	if def.Name != GetHistoricalDataName {
		t.Errorf("unexpected tool %s", def.Name)
	}

	if _, ok := Lookup("get_news"); ok {
		t.Error("expected get_news not to be found")
	}
}

func TestToolDefinitions(t *testing.T) {
	for _, def := range AllTools() {
		t.Run(string(def.Name), func(t *testing.T) {
			if def.Description == "" || def.Title == "" {
				t.Error("expected description and title")
			}
			if !def.ReadOnly || def.Destructive {
				t.Error("expected tool to be read-only and non-destructive")
			}
			ticker, ok := def.Param("ticker")
			if !ok || !ticker.Required {
				t.Error("expected a required ticker parameter")
			}
			for _, p := range def.Params {
				if p.Default != "" && len(p.Enum) > 0 && !slices.Contains(p.Enum, p.Default) {
					t.Errorf("default %q of %s is not in its enum", p.Default, p.Name)
				}
			}
		})
	}
}

func TestToMCPTool(t *testing.T) {
	tool := GetHistoricalData.ToMCPTool()

	if tool.Name != "get_historical_data" {
		t.Errorf("unexpected name %q", tool.Name)
	}
	if tool.Annotations == nil || !tool.Annotations.ReadOnlyHint {
		t.Error("expected read-only annotation")
	}

	raw, err := json.Marshal(tool.InputSchema)
	if err != nil {
		t.Fatalf("failed to marshal schema: %v", err)
	}

	var schema struct {
		Type       string   `json:"type"`
		Required   []string `json:"required"`
		Properties map[string]struct {
			Type    string   `json:"type"`
			Default string   `json:"default"`
			Enum    []string `json:"enum"`
		} `json:"properties"`
	}
	if err := json.Unmarshal(raw, &schema); err != nil {
		t.Fatalf("failed to unmarshal schema: %v", err)
	}

	if schema.Type != "object" {
		t.Errorf("expected object schema, got %q", schema.Type)
	}
	if !slices.Equal(schema.Required, []string{"ticker"}) {
		t.Errorf("expected only ticker to be required, got %v", schema.Required)
	}
	period := schema.Properties["period"]
	if period.Default != finance.DefaultPeriod {
		t.Errorf("expected period default %q, got %q", finance.DefaultPeriod, period.Default)
	}
	if !slices.Equal(period.Enum, finance.Periods) {
		t.Errorf("expected period enum %v, got %v", finance.Periods, period.Enum)
	}
	if schema.Properties["interval"].Default != finance.DefaultInterval {
		t.Errorf("expected interval default %q", finance.DefaultInterval)
	}
}

func TestOutputSchemas(t *testing.T) {
	tests := []struct {
		def        ToolDef
		properties []string
	}{
		{def: GetStockInfo, properties: []string{"symbol", "price", "market_cap", "pe_ratio", "dividend_yield", "timestamp"}},
		{def: GetHistoricalData, properties: []string{"ticker", "period", "interval", "data"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.def.Name), func(t *testing.T) {
			schema, ok := tt.def.ToMCPTool().OutputSchema.(*jsonschema.Schema)
			if !ok || schema == nil {
				t.Fatalf("expected output schema, got %T", tt.def.ToMCPTool().OutputSchema)
			}
			if schema.Type != "object" {
				t.Errorf("expected object schema, got %q", schema.Type)
			}
			for _, name := range tt.properties {
				if _, ok := schema.Properties[name]; !ok {
					t.Errorf("expected property %q", name)
				}
			}
		})
	}

	t.Run("field descriptions", func(t *testing.T) {
		data := GetHistoricalData.OutputSchema.Properties["data"]
		if data == nil || data.Description != "OHLCV bars in chronological order" {
			t.Fatalf("expected data description, got %+v", data)
		}
		if data.Items == nil || data.Items.Properties["close"] == nil {
			t.Error("expected bar items to describe close")
		}
	})

	t.Run("timestamps are date-time strings", func(t *testing.T) {
		ts := GetStockInfo.OutputSchema.Properties["timestamp"]
		if ts == nil || ts.Type != "string" || ts.Format != "date-time" {
			t.Errorf("expected date-time string, got %+v", ts)
		}
	})

	t.Run("tools without a schema omit it", func(t *testing.T) {
		def := GetStockInfo
		def.OutputSchema = nil
		if tool := def.ToMCPTool(); tool.OutputSchema != nil {
			t.Errorf("expected no output schema, got %v", tool.OutputSchema)
		}
	})
}
