// Package server implements the MCP (Model Context Protocol) server for the
// site-plan annotation engine.
//
// This package provides a JSON-RPC 2.0 server that exposes polygon capture,
// magic-wand segmentation, color sampling, numeric-area OCR, and batch grid
// planning to MCP-compatible clients.
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
// Image Repository:
//   - image_load: Load a plan image from disk
//   - image_store: Store a base64-encoded upload under a key
//   - image_dimensions: Get width and height
//
// Region Operations:
//   - region_trace: Magic-wand segmentation from a seed point
//   - region_sample_color: Average color over a polygon region
//   - region_extract_area: OCR the printed plot-area value
//   - region_crop: Extract a rectangular region as base64 PNG
//
// Polygon Operations:
//   - polygon_simplify: Douglas-Peucker simplification
//   - polygon_measure: Area, centroid, and bounding box
//
// Label Operations:
//   - batch_generate: Plan a grid of numbered plot labels
//   - document_export: Export the accumulated label document
//
// # Image Repository
//
// The server maintains an in-memory repository of decoded images, keyed by
// file path (image_load) or caller-chosen key (image_store). Images are
// reused across tool calls for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
