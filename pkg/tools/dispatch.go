package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rhobs/finance-mcp/pkg/finance"
	"github.com/rhobs/finance-mcp/pkg/metrics"
	"github.com/rhobs/finance-mcp/pkg/resultutil"
)

// ToolRequest is a single tool invocation
type ToolRequest struct {
	Name      string
	Arguments map[string]any
}

// Dispatcher routes tool requests to their handlers.
// It holds no per-request state and is safe for concurrent use.
type Dispatcher struct {
	loader finance.Loader
}

func NewDispatcher(loader finance.Loader) *Dispatcher {
	return &Dispatcher{loader: loader}
}

// Invoke validates and executes a request. Failures are always reported
// through the returned result, never by panicking.
func (d *Dispatcher) Invoke(ctx context.Context, req ToolRequest) (result *resultutil.Result) {
	id := uuid.NewString()
	start := time.Now()

	def, known := Lookup(req.Name)
	toolLabel := req.Name
	if !known {
		// keep metric cardinality bounded
		toolLabel = "unknown"
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Tool handler panicked", "invocation", id, "tool", req.Name, "panic", r)
			result = resultutil.NewErrorResult(ProviderError(fmt.Errorf("%v", r), "tool %s failed", req.Name))
		}

		outcome := outcomeOf(result)
		metrics.ObserveTool(toolLabel, outcome, time.Since(start))
		slog.Debug("Tool invocation finished", "invocation", id, "tool", req.Name, "outcome", outcome, "duration", time.Since(start))
	}()

	slog.Debug("Tool invocation started", "invocation", id, "tool", req.Name)

	if !known {
		return resultutil.NewErrorResult(UnknownToolError(req.Name))
	}

	args, err := ValidateArguments(def, req.Arguments)
	if err != nil {
		return resultutil.NewErrorResult(err)
	}

	switch def.Name {
	case GetStockInfoName:
		return GetStockInfoHandler(ctx, d.loader, BuildStockInfoInput(args))
	case GetHistoricalDataName:
		return GetHistoricalDataHandler(ctx, d.loader, BuildHistoricalDataInput(args))
	default:
		return resultutil.NewErrorResult(UnknownToolError(req.Name))
	}
}

func outcomeOf(result *resultutil.Result) string {
	if result == nil || !result.IsError() {
		return metrics.OutcomeSuccess
	}
	switch KindOf(result.Error) {
	case KindUnknownTool:
		return metrics.OutcomeUnknownTool
	case KindInvalidArgument:
		return metrics.OutcomeInvalidArgument
	default:
		return metrics.OutcomeProviderError
	}
}
