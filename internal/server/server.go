package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ironsheep/screen-translator/internal/config"
	"github.com/ironsheep/screen-translator/internal/logging"
	"github.com/ironsheep/screen-translator/internal/ocr"
	"github.com/ironsheep/screen-translator/internal/pipeline"
)

// ServerName is reported in the initialize handshake.
const ServerName = "screen-translator"

// EngineInfo reports the OCR engine installation for the ocr_info tool.
type EngineInfo interface {
	Info() ocr.Info
}

// Server handles MCP protocol communication
type Server struct {
	session *pipeline.Session
	engine  EngineInfo
	version string
	logger  *logging.Logger

	in  io.Reader
	out io.Writer
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Option configures a Server.
type Option func(*Server)

// WithEngineInfo sets the source for the ocr_info tool.
func WithEngineInfo(e EngineInfo) Option {
	return func(s *Server) { s.engine = e }
}

// WithVersion sets the version reported in the initialize handshake.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithIO replaces stdin and stdout, mainly for tests.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(s *Server) {
		s.in = in
		s.out = out
	}
}

// New creates a new MCP server instance.
//
// All capture tools share one pipeline session, so a capture arriving while another is
// still running is rejected as busy.
func New(p *pipeline.Pipeline, creds config.Credentials, opts ...Option) *Server {
	s := &Server{
		session: pipeline.NewSession(p, creds),
		version: "dev",
		logger:  logging.Nop(),
		in:      os.Stdin,
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run reads requests from the input until EOF, writing one response per line.
func (s *Server) Run() error {
	scanner := bufio.NewScanner(s.in)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(s.out)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warn("Failed to parse request", "error", err)
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				s.logger.Error("Failed to encode response", "error", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    ServerName,
				"version": s.version,
			},
		},
	}
}
