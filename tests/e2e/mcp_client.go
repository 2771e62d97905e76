//go:build e2e

package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	mcpEndpoint = "/mcp"
)

// MCPClient provides methods for interacting with the MCP server
type MCPClient struct {
	session *mcp.ClientSession
}

// NewMCPClient connects to the streamable HTTP endpoint under baseURL
func NewMCPClient(ctx context.Context, baseURL string) (*MCPClient, error) {
	client := mcp.NewClient(&mcp.Implementation{Name: "finance-mcp-e2e", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: baseURL + mcpEndpoint}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	return &MCPClient{session: session}, nil
}

func (c *MCPClient) Close() error {
	return c.session.Close()
}

// ListTools returns the names of the advertised tools
func (c *MCPClient) ListTools(t *testing.T) []string {
	t.Helper()

	result, err := c.session.ListTools(context.Background(), &mcp.ListToolsParams{})
	if err != nil {
		t.Fatalf("tools/list failed: %v", err)
	}

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}
	return names
}

// CallTool is a convenience method for calling an MCP tool.
// It fails the test on protocol errors and returns the tool result.
func (c *MCPClient) CallTool(t *testing.T, toolName string, args map[string]any) *mcp.CallToolResult {
	t.Helper()

	result, err := c.session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      toolName,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("tools/call %s failed: %v", toolName, err)
	}
	return result
}

// DecodeText unmarshals the first text content of a result
func DecodeText(t *testing.T, result *mcp.CallToolResult, out any) {
	t.Helper()

	if len(result.Content) == 0 {
		t.Fatal("expected content in result")
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	if err := json.Unmarshal([]byte(text.Text), out); err != nil {
		t.Fatalf("failed to decode result text: %v\n%s", err, text.Text)
	}
}

// ReadResource reads a resource and returns its text
func (c *MCPClient) ReadResource(t *testing.T, uri string) (string, error) {
	t.Helper()

	result, err := c.session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: uri})
	if err != nil {
		return "", err
	}
	if len(result.Contents) == 0 {
		return "", fmt.Errorf("no contents for %s", uri)
	}
	return result.Contents[0].Text, nil
}
