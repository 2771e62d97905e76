package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rhobs/finance-mcp/pkg/tools"
)

const methodCallTool = "tools/call"

// toolCallMiddleware answers calls to tools outside the catalog with an
// unknown_tool result instead of a protocol error, and logs every call.
func toolCallMiddleware(dispatcher *tools.Dispatcher) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			if method != methodCallTool {
				return next(ctx, method, req)
			}

			call, ok := req.(*mcp.CallToolRequest)
			if !ok || call.Params == nil {
				return next(ctx, method, req)
			}
			name := call.Params.Name

			if _, known := tools.Lookup(name); !known {
				slog.Warn("Call to unknown tool", "tool", name)
				return dispatcher.Invoke(ctx, tools.ToolRequest{Name: name}).ToMCPResult()
			}

			start := time.Now()
			result, err := next(ctx, method, req)
			if err != nil {
				slog.Error("Tool call failed", "tool", name, "duration", time.Since(start), "error", err)
				return result, err
			}
			slog.Info("Tool call completed", "tool", name, "duration", time.Since(start))
			return result, nil
		}
	}
}
