package tools

import (
	"fmt"
	"reflect"

	"github.com/go-openapi/strfmt"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/rhobs/finance-mcp/pkg/finance"
)

// StockInfoInput holds the arguments of the get_stock_info tool.
type StockInfoInput struct {
	Ticker string `json:"ticker"`
}

// HistoricalDataInput holds the arguments of the get_historical_data tool.
type HistoricalDataInput struct {
	Ticker   string `json:"ticker"`
	Period   string `json:"period"`
	Interval string `json:"interval"`
}

// HistoricalDataOutput is the structured content of the get_historical_data tool.
// The text content carries Data alone.
type HistoricalDataOutput struct {
	Ticker   string        `json:"ticker" jsonschema:"Normalized ticker symbol"`
	Period   string        `json:"period" jsonschema:"Requested time range"`
	Interval string        `json:"interval" jsonschema:"Requested bar size"`
	Data     []finance.Bar `json:"data" jsonschema:"OHLCV bars in chronological order"`
}

// strfmt.DateTime marshals as an RFC 3339 string but is a struct to reflection
var outputTypeSchemas = map[reflect.Type]*jsonschema.Schema{
	reflect.TypeFor[strfmt.DateTime](): {Type: "string", Format: "date-time"},
}

// outputSchemaFor infers the output schema of a tool from its result type.
// It panics on types that cannot be represented, which only happens on a programming error.
func outputSchemaFor[T any]() *jsonschema.Schema {
	schema, err := jsonschema.For[T](&jsonschema.ForOptions{TypeSchemas: outputTypeSchemas})
	if err != nil {
		panic(fmt.Sprintf("output schema: %v", err))
	}
	return schema
}
