package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rhobs/finance-mcp/pkg/tools"
)

func main() {
	defs := tools.AllTools()

	if err := generateMarkdown(defs, "TOOLS.md"); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating TOOLS.md: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ TOOLS.md generated successfully")
	fmt.Printf("  Documented %d tools:\n", len(defs))
	for i := range defs {
		fmt.Printf("    - %s\n", defs[i].Name)
	}
	fmt.Println("\n💡 Reminder: When adding a new tool, register it in pkg/tools/definitions.go AllTools()")
}

// formatTable generates a formatted markdown table with aligned columns
func formatTable(headers, alignments []string, rows [][]string) string {
	if len(headers) == 0 || len(rows) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder

	sb.WriteString("|")
	for i, h := range headers {
		fmt.Fprintf(&sb, " %-*s |", widths[i], h)
	}
	sb.WriteString("\n")

	sb.WriteString("|")
	for i, w := range widths {
		align := "l"
		if i < len(alignments) {
			align = alignments[i]
		}
		switch align {
		case "c":
			fmt.Fprintf(&sb, " :%s: |", strings.Repeat("-", max(w-2, 1)))
		case "r":
			fmt.Fprintf(&sb, " %s: |", strings.Repeat("-", max(w-1, 1)))
		default:
			fmt.Fprintf(&sb, " :%s |", strings.Repeat("-", max(w-1, 1)))
		}
	}
	sb.WriteString("\n")

	for _, row := range rows {
		sb.WriteString("|")
		for i, cell := range row {
			if i < len(widths) {
				fmt.Fprintf(&sb, " %-*s |", widths[i], cell)
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// sortedParams lists required parameters first, then by name
func sortedParams(def tools.ToolDef) []tools.ParamDef {
	params := append([]tools.ParamDef(nil), def.Params...)
	sort.SliceStable(params, func(i, j int) bool {
		if params[i].Required != params[j].Required {
			return params[i].Required
		}
		return params[i].Name < params[j].Name
	})
	return params
}

func writeTool(sb *strings.Builder, def tools.ToolDef) {
	fmt.Fprintf(sb, "## `%s`\n\n", def.Name)

	// first paragraph is the summary, the rest become usage tips
	paragraphs := strings.Split(strings.TrimSpace(def.Description), "\n\n")
	fmt.Fprintf(sb, "> %s\n\n", strings.TrimSpace(paragraphs[0]))

	if len(paragraphs) > 1 {
		sb.WriteString("**Usage Tips:**\n\n")
		for _, para := range paragraphs[1:] {
			var joined []string
			for _, line := range strings.Split(para, "\n") {
				if line = strings.TrimSpace(line); line != "" {
					joined = append(joined, line)
				}
			}
			if len(joined) > 0 {
				fmt.Fprintf(sb, "- %s\n", strings.Join(joined, " "))
			}
		}
		sb.WriteString("\n")
	}

	params := sortedParams(def)
	if len(params) == 0 {
		sb.WriteString(formatTable(
			[]string{"", ""},
			[]string{"l", "l"},
			[][]string{{"**Parameters**", "None"}},
		))
		sb.WriteString("\n")
		return
	}

	sb.WriteString("**Parameters:**\n\n")
	var rows [][]string
	for _, p := range params {
		req := ""
		if p.Required {
			req = "✅"
		}
		defaultValue := ""
		if p.Default != "" {
			defaultValue = fmt.Sprintf("`%s`", p.Default)
		}
		rows = append(rows, []string{
			fmt.Sprintf("`%s`", p.Name),
			fmt.Sprintf("`%s`", p.Type),
			req,
			defaultValue,
			p.Description,
		})
	}
	sb.WriteString(formatTable(
		[]string{"Parameter", "Type", "Required", "Default", "Description"},
		[]string{"l", "l", "c", "l", "l"},
		rows,
	))
	sb.WriteString("\n")

	for _, p := range params {
		if len(p.Enum) > 0 {
			fmt.Fprintf(sb, "> [!NOTE]\n> `%s` must be one of: `%s`\n\n", p.Name, strings.Join(p.Enum, "`, `"))
		}
	}
}

func renderMarkdown(defs []tools.ToolDef) string {
	var sb strings.Builder

	sb.WriteString("<!-- This file is auto-generated. Do not edit manually. -->\n")
	sb.WriteString("<!-- Run 'make generate-tools-doc' to regenerate. -->\n\n")

	sb.WriteString("# Available Tools\n\n")
	sb.WriteString("This MCP server exposes the following tools for querying stock market data:\n\n")

	for i, def := range defs {
		writeTool(&sb, def)
		if i < len(defs)-1 {
			sb.WriteString("---\n\n")
		}
	}
	return sb.String()
}

func generateMarkdown(defs []tools.ToolDef, filename string) error {
	return os.WriteFile(filename, []byte(renderMarkdown(defs)), 0o644)
}
