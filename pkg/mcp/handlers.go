package mcp

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rhobs/finance-mcp/pkg/resultutil"
	"github.com/rhobs/finance-mcp/pkg/tools"
)

// ToolHandler adapts the dispatcher to an MCP tool handler for one catalog entry
func ToolHandler(dispatcher *tools.Dispatcher, name tools.ToolName) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var raw json.RawMessage
		if req.Params != nil {
			raw = req.Params.Arguments
		}

		args, err := decodeArguments(raw)
		if err != nil {
			return resultutil.NewErrorResult(
				tools.InvalidArgumentError("arguments", "must be a JSON object: %v", err),
			).ToMCPResult()
		}

		result := dispatcher.Invoke(ctx, tools.ToolRequest{Name: string(name), Arguments: args})
		return result.ToMCPResult()
	}
}

func decodeArguments(raw json.RawMessage) (map[string]any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return map[string]any{}, nil
	}

	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, err
	}
	return args, nil
}
