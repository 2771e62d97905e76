//go:build e2e

package e2e

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/rhobs/finance-mcp/pkg/mcp"
)

const (
	defaultTimeout = 30 * time.Second
	serverURLEnv   = "FINANCE_MCP_URL"
)

// TestConfig holds configuration and runtime state for e2e tests
type TestConfig struct {
	// MCPURL is the base URL of the server under test
	MCPURL  string
	Timeout time.Duration

	// local is set when the suite started its own server
	local *httptest.Server
}

// NewTestConfig creates a new TestConfig with defaults or env overrides
func NewTestConfig() *TestConfig {
	return &TestConfig{
		MCPURL:  os.Getenv(serverURLEnv),
		Timeout: defaultTimeout,
	}
}

// Setup starts an in-process server against the live provider unless an
// external server URL was given, then waits for it to report healthy.
func (c *TestConfig) Setup() error {
	if c.MCPURL == "" {
		server, err := mcp.NewMCPServer(mcp.FinanceMCPOptions{Timeout: c.Timeout})
		if err != nil {
			return fmt.Errorf("failed to create MCP server: %w", err)
		}
		c.local = httptest.NewServer(mcp.NewHTTPHandler(server))
		c.MCPURL = c.local.URL
		fmt.Printf("Started local server at %s\n", c.MCPURL)
	}

	return c.waitHealthy()
}

func (c *TestConfig) waitHealthy() error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(c.Timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(c.MCPURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("server at %s did not become healthy within %v", c.MCPURL, c.Timeout)
}

// Cleanup stops the local server if one was started
func (c *TestConfig) Cleanup() {
	if c.local != nil {
		c.local.Close()
		c.local = nil
	}
}
