// Package mcp provides an MCP (Model Context Protocol) server adapter for pvs.
// It lets an MCP client steer a running viewer: list the steerable
// parameters, set one, or close the viewer.
package mcp

import "errors"

// ErrMissingSteering is returned when no steering inbox is provided.
var ErrMissingSteering = errors.New("mcp: steering inbox is required")
