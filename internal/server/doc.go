// Package server implements the MCP (Model Context Protocol) server for border normalization.
//
// This package provides a JSON-RPC 2.0 server that exposes the border pipeline
// through the MCP protocol, so that an assistant can inspect and fix image
// margins without shelling out to the rpad CLI.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_sample_color: Get color at pixel
//
// Border Operations:
//   - image_detect_border: Measure the border on each edge
//   - image_strip_border: Crop the border off
//   - image_normalize_border: Replace the border with uniform padding
//
// # Image Caching
//
// Images are cached by path and reused across tool calls. When
// image_normalize_border writes a file, that path is evicted so a later load
// sees the new content.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
package server
