package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/plato/internal/core/domain"
)

// ListParametersInput is the input schema for the list_parameters tool.
type ListParametersInput struct{}

// ParameterOutput describes one steerable parameter.
type ParameterOutput struct {
	Name  string  `json:"name"`
	Kind  string  `json:"kind"`
	Value float64 `json:"value"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// ListParametersOutput is the output schema for the list_parameters tool.
type ListParametersOutput struct {
	Parameters []ParameterOutput `json:"parameters"`
	Count      int               `json:"count"`
}

// SetParameterInput is the input schema for the set_parameter tool.
type SetParameterInput struct {
	Name  string  `json:"name" jsonschema:"the parameter label, e.g. Iso 0 value"`
	Value float64 `json:"value" jsonschema:"the new value; toggles take 0 or 1"`
}

// SetParameterOutput is the output schema for the set_parameter tool.
type SetParameterOutput struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Queued bool    `json:"queued"`
}

// StopViewerInput is the input schema for the stop_viewer tool.
type StopViewerInput struct{}

// StopViewerOutput is the output schema for the stop_viewer tool.
type StopViewerOutput struct {
	Queued bool `json:"queued"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_parameters",
		Description: "List the viewer's steerable parameters with their bounds",
	}, s.handleListParameters)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_parameter",
		Description: "Set a steerable parameter; the viewer applies it on its next poll",
	}, s.handleSetParameter)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "stop_viewer",
		Description: "Close the viewer window",
	}, s.handleStopViewer)
}

func (s *Server) handleListParameters(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListParametersInput,
) (*mcp.CallToolResult, ListParametersOutput, error) {
	params := s.ports.Steering.Parameters()

	output := ListParametersOutput{
		Parameters: make([]ParameterOutput, len(params)),
		Count:      len(params),
	}
	for i, p := range params {
		output.Parameters[i] = ParameterOutput{
			Name:  p.Name,
			Kind:  string(p.Kind),
			Value: p.Value,
			Min:   p.Min,
			Max:   p.Max,
		}
	}
	return nil, output, nil
}

func (s *Server) handleSetParameter(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SetParameterInput,
) (*mcp.CallToolResult, SetParameterOutput, error) {
	if input.Name == "" {
		return nil, SetParameterOutput{}, fmt.Errorf("name: %w", domain.ErrInvalidInput)
	}
	if err := s.ports.Steering.Push(input.Name, input.Value); err != nil {
		return nil, SetParameterOutput{}, err
	}
	return nil, SetParameterOutput{Name: input.Name, Value: input.Value, Queued: true}, nil
}

func (s *Server) handleStopViewer(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ StopViewerInput,
) (*mcp.CallToolResult, StopViewerOutput, error) {
	if err := s.ports.Steering.PushCommand(domain.CommandStop); err != nil {
		return nil, StopViewerOutput{}, err
	}
	return nil, StopViewerOutput{Queued: true}, nil
}
