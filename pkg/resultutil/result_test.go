package resultutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type exampleOutput struct {
	Ticker string    `json:"ticker"`
	Closes []float64 `json:"closes"`
}

type kindedError struct {
	kind  string
	param string
}

func (e *kindedError) Error() string { return e.kind + ": " + e.param }

func (e *kindedError) Details() ErrorDetails {
	return ErrorDetails{Kind: e.kind, Error: e.Error(), Param: e.param}
}

func TestNewSuccessResult(t *testing.T) {
	output := exampleOutput{
		Ticker: "AAPL",
		Closes: []float64{185.64, 181.91},
	}

	result := NewSuccessResult(output)

	if result.IsError() {
		t.Fatalf("expected success result, got error: %v", result.Error)
	}
	if result.Data == nil {
		t.Error("expected Data to be set")
	}

	var decoded exampleOutput
	if err := json.Unmarshal([]byte(result.JSONText), &decoded); err != nil {
		t.Fatalf("failed to unmarshal JSONText: %v", err)
	}
	if decoded.Ticker != output.Ticker {
		t.Errorf("expected ticker %q, got %q", output.Ticker, decoded.Ticker)
	}

	// text content is meant to be read, so it is indented
	if !strings.Contains(result.JSONText, "\n  \"ticker\"") {
		t.Errorf("expected indented JSON, got %s", result.JSONText)
	}
}

func TestNewErrorResult(t *testing.T) {
	result := NewErrorResult(errors.New("provider unavailable"))

	if !result.IsError() {
		t.Error("expected error result")
	}
	if result.Data != nil {
		t.Error("expected Data to be nil for error result")
	}
}

func TestErrorDetails(t *testing.T) {
	tests := []struct {
		name     string
		result   *Result
		expected *ErrorDetails
	}{
		{
			name:     "success has no details",
			result:   NewSuccessResult(exampleOutput{}),
			expected: nil,
		},
		{
			name:     "plain error",
			result:   NewErrorResult(errors.New("boom")),
			expected: &ErrorDetails{Error: "boom"},
		},
		{
			name:     "wrapped detailer",
			result:   NewErrorResult(fmt.Errorf("call failed: %w", &kindedError{kind: "invalid_argument", param: "ticker"})),
			expected: &ErrorDetails{Kind: "invalid_argument", Error: "invalid_argument: ticker", Param: "ticker"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.result.ErrorDetails()
			if tt.expected == nil {
				if got != nil {
					t.Errorf("expected nil details, got %+v", got)
				}
				return
			}
			if got == nil || *got != *tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestToMCPResult_Success(t *testing.T) {
	result := NewSuccessResult(exampleOutput{Ticker: "MSFT"})
	mcpResult, err := result.ToMCPResult()

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if mcpResult == nil {
		t.Fatal("expected non-nil MCP result")
	}
	if mcpResult.IsError {
		t.Error("expected IsError=false")
	}
	if len(mcpResult.Content) != 1 {
		t.Fatalf("expected one content item, got %d", len(mcpResult.Content))
	}
	text, ok := mcpResult.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", mcpResult.Content[0])
	}
	if text.Text != result.JSONText {
		t.Errorf("expected text content to be the JSON text")
	}
	if mcpResult.StructuredContent == nil {
		t.Error("expected structured content to be set")
	}
}

func TestToMCPResult_Structured(t *testing.T) {
	closes := []float64{185.64, 181.91}
	result := NewStructuredResult(closes, exampleOutput{Ticker: "AAPL", Closes: closes})
	if result.IsError() {
		t.Fatalf("unexpected error: %v", result.Error)
	}

	mcpResult, err := result.ToMCPResult()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded []float64
	text := mcpResult.Content[0].(*mcp.TextContent).Text
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		t.Fatalf("expected text content to be the bare array: %v", err)
	}
	if len(decoded) != len(closes) {
		t.Errorf("expected %d values, got %d", len(closes), len(decoded))
	}

	output, ok := mcpResult.StructuredContent.(exampleOutput)
	if !ok {
		t.Fatalf("expected exampleOutput structured content, got %T", mcpResult.StructuredContent)
	}
	if output.Ticker != "AAPL" {
		t.Errorf("expected ticker AAPL, got %q", output.Ticker)
	}

	t.Run("marshal failure drops the structured content", func(t *testing.T) {
		result := NewStructuredResult(make(chan int), exampleOutput{})
		if !result.IsError() || result.Structured != nil {
			t.Errorf("expected error result without structured content, got %+v", result)
		}
	})
}

func TestToMCPResult_Error(t *testing.T) {
	result := NewErrorResult(&kindedError{kind: "provider_error", param: ""})
	mcpResult, err := result.ToMCPResult()

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if mcpResult == nil {
		t.Fatal("expected non-nil MCP result")
	}
	if !mcpResult.IsError {
		t.Error("expected MCP result to have IsError=true")
	}

	details, ok := mcpResult.StructuredContent.(*ErrorDetails)
	if !ok {
		t.Fatalf("expected *ErrorDetails structured content, got %T", mcpResult.StructuredContent)
	}
	if details.Kind != "provider_error" {
		t.Errorf("expected kind provider_error, got %q", details.Kind)
	}
}

func TestMarshalError(t *testing.T) {
	type unmarshalable struct {
		Channel chan int
	}

	result := NewSuccessResult(unmarshalable{Channel: make(chan int)})

	if !result.IsError() {
		t.Error("expected error result when marshaling fails")
	}
}
