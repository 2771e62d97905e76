package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveTool(t *testing.T) {
	before := testutil.ToFloat64(ToolInvocations.WithLabelValues("test_tool", OutcomeSuccess))

	ObserveTool("test_tool", OutcomeSuccess, 10*time.Millisecond)

	after := testutil.ToFloat64(ToolInvocations.WithLabelValues("test_tool", OutcomeSuccess))
	if after-before != 1 {
		t.Errorf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestObserveProvider(t *testing.T) {
	before := testutil.ToFloat64(ProviderRequests.WithLabelValues("chart", "200"))

	ObserveProvider("chart", "200", 5*time.Millisecond)
	ObserveProvider("chart", "200", 5*time.Millisecond)

	after := testutil.ToFloat64(ProviderRequests.WithLabelValues("chart", "200"))
	if after-before != 2 {
		t.Errorf("expected counter to increase by 2, got %v", after-before)
	}
}

func TestHandler(t *testing.T) {
	ObserveTool("get_stock_info", OutcomeProviderError, time.Millisecond)

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{
		"finance_mcp_tool_invocations_total",
		"finance_mcp_tool_duration_seconds",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected metrics output to contain %q", want)
		}
	}
}
