package tools

import (
	"errors"
	"fmt"

	"github.com/rhobs/finance-mcp/pkg/resultutil"
)

// ErrorKind classifies a failed invocation
type ErrorKind string

const (
	KindUnknownTool     ErrorKind = "unknown_tool"
	KindInvalidArgument ErrorKind = "invalid_argument"
	KindProviderError   ErrorKind = "provider_error"
)

var (
	ErrUnknownTool     = errors.New("unknown tool")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrProviderError   = errors.New("provider error")
)

// ToolError is the error carried by every failed tool result.
type ToolError struct {
	Kind ErrorKind
	// Param names the offending argument for KindInvalidArgument
	Param   string
	Message string
	Err     error
}

var _ resultutil.Detailer = (*ToolError)(nil)

func (e *ToolError) Error() string {
	return e.Message
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind
func (e *ToolError) Is(target error) bool {
	switch e.Kind {
	case KindUnknownTool:
		return target == ErrUnknownTool
	case KindInvalidArgument:
		return target == ErrInvalidArgument
	case KindProviderError:
		return target == ErrProviderError
	}
	return false
}

func (e *ToolError) Details() resultutil.ErrorDetails {
	return resultutil.ErrorDetails{
		Kind:  string(e.Kind),
		Error: e.Message,
		Param: e.Param,
	}
}

func UnknownToolError(name string) *ToolError {
	return &ToolError{
		Kind:    KindUnknownTool,
		Message: fmt.Sprintf("unknown tool: %q", name),
	}
}

func InvalidArgumentError(param, format string, args ...any) *ToolError {
	return &ToolError{
		Kind:    KindInvalidArgument,
		Param:   param,
		Message: fmt.Sprintf("invalid argument %q: %s", param, fmt.Sprintf(format, args...)),
	}
}

// ProviderError wraps a failure reported by the data provider
func ProviderError(err error, format string, args ...any) *ToolError {
	return &ToolError{
		Kind:    KindProviderError,
		Message: fmt.Sprintf("%s: %v", fmt.Sprintf(format, args...), err),
		Err:     err,
	}
}

// KindOf returns the kind of a tool error, or an empty kind for other errors
func KindOf(err error) ErrorKind {
	var te *ToolError
	if errors.As(err, &te) {
		return te.Kind
	}
	return ""
}
