package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rhobs/finance-mcp/pkg/finance"
	"github.com/rhobs/finance-mcp/pkg/metrics"
	"github.com/rhobs/finance-mcp/pkg/tools"
	"github.com/rhobs/finance-mcp/pkg/version"
)

// FinanceMCPOptions contains configuration options for the MCP server
type FinanceMCPOptions struct {
	ProviderURL   string
	CookieURL     string
	Timeout       time.Duration
	Insecure      bool
	ProxyURL      string
	UserAgent     string
	DefaultSymbol string

	// Loader overrides the Yahoo Finance client, mainly for tests
	Loader finance.Loader
}

const (
	mcpEndpoint            = "/mcp"
	healthEndpoint         = "/health"
	metricsEndpoint        = "/metrics"
	serverName             = "finance-mcp"
	defaultShutdownTimeout = 10 * time.Second
	defaultSymbol          = "AAPL"
)

func NewMCPServer(opts FinanceMCPOptions) (*mcp.Server, error) {
	loader := opts.Loader
	if loader == nil {
		yahoo, err := finance.NewYahooLoader(finance.ClientConfig{
			BaseURL:   opts.ProviderURL,
			CookieURL: opts.CookieURL,
			Timeout:   opts.Timeout,
			Insecure:  opts.Insecure,
			ProxyURL:  opts.ProxyURL,
			UserAgent: opts.UserAgent,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create finance client: %w", err)
		}
		loader = yahoo
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{Name: serverName, Version: version.String()},
		&mcp.ServerOptions{Instructions: tools.ServerPrompt},
	)

	dispatcher := tools.NewDispatcher(loader)
	mcpServer.AddReceivingMiddleware(toolCallMiddleware(dispatcher))

	if err := SetupTools(mcpServer, dispatcher); err != nil {
		return nil, err
	}

	symbol := finance.NormalizeSymbol(opts.DefaultSymbol)
	if symbol == "" {
		symbol = defaultSymbol
	}
	SetupResources(mcpServer, loader, symbol)

	return mcpServer, nil
}

func SetupTools(mcpServer *mcp.Server, dispatcher *tools.Dispatcher) error {
	for _, def := range tools.AllTools() {
		if def.Name == "" {
			return errors.New("tool definition without a name")
		}
		mcpServer.AddTool(def.ToMCPTool(), ToolHandler(dispatcher, def.Name))
	}
	return nil
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Info("Incoming request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"request_id", middleware.GetReqID(r.Context()),
		)
		slog.Debug("Request headers", "headers", r.Header)
		if r.ContentLength > 0 {
			slog.Info("Request content length", "content_length", r.ContentLength)
		}
		next.ServeHTTP(w, r)
	})
}

// NewHTTPHandler routes the streamable MCP endpoint alongside health and metrics
func NewHTTPHandler(mcpServer *mcp.Server) http.Handler {
	streamableHandler := mcp.NewStreamableHTTPHandler(
		func(*http.Request) *mcp.Server { return mcpServer },
		&mcp.StreamableHTTPOptions{Stateless: true},
	)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(loggingMiddleware)
	router.Use(middleware.Recoverer)

	router.Get(healthEndpoint, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	router.Handle(metricsEndpoint, metrics.Handler())
	router.Handle(mcpEndpoint, streamableHandler)
	router.Handle("/", streamableHandler)

	return router
}

func Serve(ctx context.Context, mcpServer *mcp.Server, listenAddr string) error {
	httpServer := &http.Server{
		Addr:              listenAddr,
		Handler:           NewHTTPHandler(mcpServer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGHUP, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "listen_addr", listenAddr, "mcp_endpoint", mcpEndpoint)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-sigChan:
		slog.Warn("Received signal, initiating graceful shutdown", "signal", sig)
		cancel()
	case <-ctx.Done():
		slog.Warn("Context cancelled, initiating graceful shutdown")
	case err := <-serverErr:
		slog.Error("HTTP server error", "error", err)
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer shutdownCancel()

	slog.Info("Shutting down HTTP server gracefully")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
		return err
	}

	slog.Info("HTTP server shutdown complete")
	return nil
}

// ServeStdio runs the server over stdin/stdout until the client disconnects or a signal arrives
func ServeStdio(ctx context.Context, mcpServer *mcp.Server) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("Stdio server starting")
	if err := mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
