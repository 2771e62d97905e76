package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rhobs/finance-mcp/pkg/tools"
)

func TestFormatTable(t *testing.T) {
	got := formatTable(
		[]string{"Name", "Req"},
		[]string{"l", "c"},
		[][]string{{"ticker", "yes"}},
	)

	expected := "| Name   | Req |\n" +
		"| :----- | :-: |\n" +
		"| ticker | yes |\n"
	if got != expected {
		t.Errorf("unexpected table:\n%s\nwant:\n%s", got, expected)
	}

	if formatTable(nil, nil, nil) != "" {
		t.Error("expected empty output for empty table")
	}
}

func TestGenerateMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TOOLS.md")
	if err := generateMarkdown(tools.AllTools(), path); err != nil {
		t.Fatalf("generateMarkdown failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	doc := string(content)

	for _, want := range []string{
		"## `get_stock_info`",
		"## `get_historical_data`",
		"`ticker`",
		"`1mo`",
		"`period` must be one of",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("expected document to contain %q", want)
		}
	}
}
