// Package server implements the MCP (Model Context Protocol) server for screen translation.
//
// The server speaks JSON-RPC 2.0 over stdio:
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
//   - capture_preview: OCR a selected region of a screenshot and return the raw text
//   - capture_translate: OCR, translate and transcribe a selected region
//   - ocr_info: Report the Tesseract version and installed language data
//
// The capture tools take the path of a screenshot standing in for the screen and either a
// committed rect or a recorded pointer gesture. A gesture is replayed through the selection
// state machine; one that does not commit, or a rect with no area, cancels the capture and
// the screenshot is never read.
//
// # Sessions
//
// All tool calls share one capture session. A call that arrives while a run is in flight
// fails with BUSY instead of queueing.
//
// # Error Handling
//
// Bad arguments and busy sessions are JSON-RPC error responses with code -32000. A run that
// fails during OCR or translation is a normal tool result with status "failed", the error
// details and the report text the user would see.
package server
