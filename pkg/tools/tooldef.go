package tools

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"k8s.io/utils/ptr"
)

// ParamDef defines a tool parameter
type ParamDef struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
	// Default is applied when an optional parameter is absent
	Default string
	// Enum restricts the accepted values when non-empty
	Enum []string
}

// ParamType represents the type of a parameter
type ParamType string

const (
	ParamTypeString ParamType = "string"
)

// ToolDef defines a tool that can be converted to different formats (MCP, docs, etc.)
type ToolDef struct {
	Name        ToolName
	Description string
	Title       string
	Params      []ParamDef
	// OutputSchema describes the structured content of a successful call
	OutputSchema *jsonschema.Schema
	ReadOnly     bool
	Destructive  bool
	Idempotent   bool
	OpenWorld    bool
}

// Param returns the parameter with the given name
func (d ToolDef) Param(name string) (ParamDef, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p, true
		}
	}
	return ParamDef{}, false
}

// InputSchema builds the JSON schema describing the tool arguments
func (d ToolDef) InputSchema() *jsonschema.Schema {
	properties := make(map[string]*jsonschema.Schema, len(d.Params))
	var required []string

	for _, param := range d.Params {
		schema := &jsonschema.Schema{
			Type:        string(param.Type),
			Description: param.Description,
		}
		if param.Default != "" {
			// marshaling a string cannot fail
			raw, _ := json.Marshal(param.Default)
			schema.Default = raw
		}
		for _, v := range param.Enum {
			schema.Enum = append(schema.Enum, v)
		}

		properties[param.Name] = schema

		if param.Required {
			required = append(required, param.Name)
		}
	}

	inputSchema := &jsonschema.Schema{
		Type:       "object",
		Properties: properties,
	}
	if len(required) > 0 {
		inputSchema.Required = required
	}
	return inputSchema
}

// ToMCPTool converts a ToolDef to an mcp.Tool
func (d ToolDef) ToMCPTool() *mcp.Tool {
	tool := &mcp.Tool{
		Name:        string(d.Name),
		Title:       d.Title,
		Description: d.Description,
		InputSchema: d.InputSchema(),
		Annotations: &mcp.ToolAnnotations{
			Title:           d.Title,
			ReadOnlyHint:    d.ReadOnly,
			DestructiveHint: ptr.To(d.Destructive),
			IdempotentHint:  d.Idempotent,
			OpenWorldHint:   ptr.To(d.OpenWorld),
		},
	}
	// a typed nil would be sent as "outputSchema": null
	if d.OutputSchema != nil {
		tool.OutputSchema = d.OutputSchema
	}
	return tool
}
