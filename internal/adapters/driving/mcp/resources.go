package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for pvs resources.
	uriScheme = "pvs://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "parameters",
		Name:        "parameters",
		Description: "Steerable parameters and their current values",
		MIMEType:    "application/json",
	}, s.handleParametersResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "scene",
		Name:        "scene",
		Description: "What the viewer is currently drawing",
		MIMEType:    "application/json",
	}, s.handleSceneResource)
}

func (s *Server) handleParametersResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	_, output, err := s.handleListParameters(ctx, nil, ListParametersInput{})
	if err != nil {
		return nil, err
	}
	return jsonResult(req.Params.URI, output.Parameters)
}

func (s *Server) handleSceneResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type renderableInfo struct {
		Pipeline string `json:"pipeline"`
		Name     string `json:"name"`
		Visible  bool   `json:"visible"`
		Summary  string `json:"summary"`
	}

	infos := []renderableInfo{}
	if s.ports.Scene != nil {
		for _, r := range s.ports.Scene.Renderables() {
			infos = append(infos, renderableInfo{
				Pipeline: string(r.Pipeline),
				Name:     r.Name,
				Visible:  r.Visible,
				Summary:  r.Summary,
			})
		}
	}
	return jsonResult(req.Params.URI, infos)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
