package resultutil

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Result represents a common tool execution result that can be converted
// to an MCP result or inspected directly by callers of the dispatcher.
type Result struct {
	// Data holds the structured result data (only set for successful results)
	Data any
	// JSONText holds the indented JSON representation of Data
	JSONText string
	// Structured overrides Data as the MCP structured content when set.
	// MCP requires structured content to be a JSON object.
	Structured any
	// Error holds any error that occurred (nil for successful results)
	Error error
}

// ErrorDetails is the structured payload attached to error results.
type ErrorDetails struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
	Param string `json:"param,omitempty"`
}

// Detailer is implemented by errors that carry a kind and the offending parameter.
type Detailer interface {
	error
	Details() ErrorDetails
}

// NewSuccessResult creates a successful result with structured data.
// If marshaling fails, an error result is returned instead.
func NewSuccessResult(data any) *Result {
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return &Result{
			Error: fmt.Errorf("failed to marshal result: %w", err),
		}
	}

	return &Result{
		Data:     data,
		JSONText: string(jsonBytes),
	}
}

// NewStructuredResult creates a successful result whose text is the JSON of data
// and whose MCP structured content is the structured object.
func NewStructuredResult(data, structured any) *Result {
	r := NewSuccessResult(data)
	if r.Error == nil {
		r.Structured = structured
	}
	return r
}

// NewErrorResult creates an error result with the given error.
func NewErrorResult(err error) *Result {
	return &Result{
		Error: err,
	}
}

// IsError returns true if the result represents an error.
func (r *Result) IsError() bool {
	return r.Error != nil
}

// ErrorDetails returns the structured form of the error, or nil for successful results.
// Errors that do not implement Detailer are reported without a kind.
func (r *Result) ErrorDetails() *ErrorDetails {
	if r.Error == nil {
		return nil
	}

	var d Detailer
	if errors.As(r.Error, &d) {
		details := d.Details()
		return &details
	}
	return &ErrorDetails{Error: r.Error.Error()}
}

// ToMCPResult converts the Result to an MCP CallToolResult.
// Returns (result, nil) following the MCP pattern where errors
// are encoded in the result, not the error return value.
func (r *Result) ToMCPResult() (*mcp.CallToolResult, error) {
	if r.Error != nil {
		//nolint:nilerr // MCP pattern encodes errors in result, not error return
		return &mcp.CallToolResult{
			Content:           []mcp.Content{&mcp.TextContent{Text: r.Error.Error()}},
			StructuredContent: r.ErrorDetails(),
			IsError:           true,
		}, nil
	}
	structured := r.Data
	if r.Structured != nil {
		structured = r.Structured
	}
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: r.JSONText}},
		StructuredContent: structured,
	}, nil
}
