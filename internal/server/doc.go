// Package server implements an MCP (Model Context Protocol) server that
// exposes licence plate detection as tools.
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
//   - plate_detect: Find the plate bounding box, optionally writing an
//     annotated image and returning the plate crop
//   - plate_stage_image: Render one intermediate pipeline grid
//   - image_dimensions: Get width and height
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the process, so
// calling plate_detect and then plate_stage_image on the same file decodes
// it once.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32602 (malformed tools/call
//     params) or -32601 (unknown method)
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv, err := server.New(cfg, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
