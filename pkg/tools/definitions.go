package tools

import (
	"slices"

	"github.com/rhobs/finance-mcp/pkg/finance"
)

// ToolName identifies a tool in the catalog
type ToolName string

const (
	GetStockInfoName      ToolName = "get_stock_info"
	GetHistoricalDataName ToolName = "get_historical_data"
)

// All tool definitions as a single source of truth
var (
	GetStockInfo = ToolDef{
		Name:        GetStockInfoName,
		Description: GetStockInfoPrompt,
		Title:       "Get Stock Info",
		Params: []ParamDef{
			{
				Name:        "ticker",
				Type:        ParamTypeString,
				Description: "Stock ticker symbol (e.g., 'AAPL', 'MSFT', 'BRK-B')",
				Required:    true,
			},
		},
		OutputSchema: outputSchemaFor[finance.Quote](),
		ReadOnly:     true,
		Destructive:  false,
		Idempotent:   true,
		OpenWorld:    true,
	}

	GetHistoricalData = ToolDef{
		Name:         GetHistoricalDataName,
		Description:  GetHistoricalDataPrompt,
		Title:        "Get Historical Data",
		OutputSchema: outputSchemaFor[HistoricalDataOutput](),
		ReadOnly:     true,
		Destructive:  false,
		Idempotent:   true,
		OpenWorld:    true,
		Params: []ParamDef{
			{
				Name:        "ticker",
				Type:        ParamTypeString,
				Description: "Stock ticker symbol (e.g., 'AAPL', 'MSFT', 'BRK-B')",
				Required:    true,
			},
			{
				Name:        "period",
				Type:        ParamTypeString,
				Description: "Time range to fetch, counted back from now. 'ytd' is year to date and 'max' is the full history.",
				Default:     finance.DefaultPeriod,
				Enum:        finance.Periods,
			},
			{
				Name:        "interval",
				Type:        ParamTypeString,
				Description: "Bar size. Intraday intervals (1m to 1h) are only available for recent periods.",
				Default:     finance.DefaultInterval,
				Enum:        finance.Intervals,
			},
		},
	}
)

// AllTools returns all tool definitions
func AllTools() []ToolDef {
	return []ToolDef{
		GetStockInfo,
		GetHistoricalData,
	}
}

// ListTools returns a copy of the catalog that callers may modify freely
func ListTools() []ToolDef {
	defs := AllTools()
	for i := range defs {
		defs[i].Params = slices.Clone(defs[i].Params)
		for j := range defs[i].Params {
			defs[i].Params[j].Enum = slices.Clone(defs[i].Params[j].Enum)
		}
		defs[i].OutputSchema = defs[i].OutputSchema.CloneSchemas()
	}
	return defs
}

// Lookup finds a tool definition by exact name
func Lookup(name string) (ToolDef, bool) {
	for _, def := range AllTools() {
		if string(def.Name) == name {
			return def, true
		}
	}
	return ToolDef{}, false
}
