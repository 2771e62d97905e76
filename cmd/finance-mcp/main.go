package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/prometheus/common/promslog"

	"github.com/rhobs/finance-mcp/pkg/config"
	"github.com/rhobs/finance-mcp/pkg/mcp"
	"github.com/rhobs/finance-mcp/pkg/version"
)

const providerURLEnv = "FINANCE_PROVIDER_URL"

func main() {
	// Parse command line flags
	var configFile = flag.String("config", "", "Path to a TOML configuration file")
	var listen = flag.String("listen", "", "Listen address for HTTP mode (e.g., :9100, 127.0.0.1:8080)")
	var logLevel = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	var logFormat = flag.String("log-format", "logfmt", "Log format: logfmt, json")
	var providerURL = flag.String("provider-url", "", "Yahoo Finance query host (default https://query1.finance.yahoo.com)")
	var timeout = flag.String("timeout", "30s", "Provider request timeout (e.g., 30s, 2m); 0s disables it")
	var insecure = flag.Bool("insecure", false, "Skip TLS certificate verification")
	var defaultSymbol = flag.String("default-symbol", "AAPL", "Ticker advertised as the static stock info resource")
	var showVersion = flag.Bool("version", false, "Print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}
		cfg = loaded
	}

	if envURL := os.Getenv(providerURLEnv); envURL != "" {
		cfg.ProviderURL = envURL
	}

	// Flags given explicitly on the command line win over the file and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listen":
			cfg.Listen = *listen
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-format":
			cfg.LogFormat = *logFormat
		case "provider-url":
			cfg.ProviderURL = *providerURL
		case "timeout":
			cfg.Timeout = *timeout
		case "insecure":
			cfg.Insecure = *insecure
		case "default-symbol":
			cfg.DefaultSymbol = *defaultSymbol
		}
	})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Configure slog with specified log level
	configureLogging(cfg.LogLevel, cfg.LogFormat)

	providerTimeout, err := cfg.GetTimeout()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create MCP options
	opts := mcp.FinanceMCPOptions{
		ProviderURL:   cfg.ProviderURL,
		CookieURL:     cfg.CookieURL,
		Timeout:       providerTimeout,
		Insecure:      cfg.Insecure,
		ProxyURL:      cfg.ProxyURL,
		UserAgent:     cfg.UserAgent,
		DefaultSymbol: cfg.DefaultSymbol,
	}

	// Create MCP server
	mcpServer, err := mcp.NewMCPServer(opts)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}

	slog.Info("Starting server", "version", version.String(), "ProviderURL", opts.ProviderURL, "Timeout", opts.Timeout)

	// Choose server mode based on flags
	ctx := context.Background()
	if cfg.Listen != "" {
		// HTTP mode
		if err := mcp.Serve(ctx, mcpServer, cfg.Listen); err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
	} else {
		// Start server on stdio (default mode)
		if err := mcp.ServeStdio(ctx, mcpServer); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}
}

// configureLogging sets up the slog logger on stderr, keeping stdout for the stdio transport
func configureLogging(levelStr, formatStr string) {
	level := promslog.NewLevel()
	err := level.Set(levelStr)
	if err != nil {
		log.Fatal(err.Error())
	}

	format := promslog.NewFormat()
	err = format.Set(formatStr)
	if err != nil {
		log.Fatal(err.Error())
	}

	logger := promslog.New(&promslog.Config{
		Level:  level,
		Format: format,
		Style:  promslog.GoKitStyle,
		Writer: os.Stderr,
	})
	slog.SetDefault(logger)
}
