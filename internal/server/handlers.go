package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "github.com/ironsheep/screen-translator/internal/errors"
	"github.com/ironsheep/screen-translator/internal/imaging"
	"github.com/ironsheep/screen-translator/internal/pipeline"
	"github.com/ironsheep/screen-translator/internal/selection"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "capture_translate").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000. A pipeline
// run that fails in OCR or translation is not a tool error: it is a result with status
// "failed" and a report for the user.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(context.Background(), params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("Tool failed", "tool", params.Name, "code", apperrors.CodeOf(err), "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "capture_preview":
		return s.handleCapturePreview(ctx, args)
	case "capture_translate":
		return s.handleCaptureTranslate(ctx, args)
	case "ocr_info":
		return s.handleOCRInfo()
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Capture Handlers ===

type captureArgs struct {
	Path    string            `json:"path"`
	Rect    *selection.Rect   `json:"rect"`
	Gesture []selection.Event `json:"gesture"`
}

// cancelledResult is returned when the selection did not commit.
type cancelledResult struct {
	Cancelled bool `json:"cancelled"`
}

type previewResult struct {
	Rect selection.Rect `json:"rect"`
	Text string         `json:"text"`
}

type translateResult struct {
	*pipeline.Result
	Rect   selection.Rect         `json:"rect"`
	Report string                 `json:"report"`
	Error  map[string]interface{} `json:"error,omitempty"`
}

// resolveSelection turns the capture arguments into a committed rectangle.
// ok is false when the selection was cancelled or has no area.
func resolveSelection(a *captureArgs) (r selection.Rect, ok bool, err error) {
	if a.Path == "" {
		return r, false, apperrors.NewInvalidArgumentError(apperrors.StageCapture, "path is required")
	}

	switch {
	case a.Rect != nil && a.Gesture != nil:
		return r, false, apperrors.NewInvalidArgumentError(apperrors.StageSelection, "rect and gesture are mutually exclusive")
	case a.Gesture != nil:
		r, err = selection.Replay(a.Gesture)
		if apperrors.Is(err, apperrors.ErrorSelectionCancelled) {
			return r, false, nil
		}
		if err != nil {
			return r, false, err
		}
		return r, true, nil
	case a.Rect != nil:
		if a.Rect.Empty() {
			return *a.Rect, false, nil
		}
		return *a.Rect, true, nil
	default:
		return r, false, apperrors.NewInvalidArgumentError(apperrors.StageSelection, "either rect or gesture is required")
	}
}

// capture resolves the selection and, if it committed, loads the screenshot and makes the
// region the session's current capture. Nothing is loaded for a cancelled selection.
func (s *Server) capture(args json.RawMessage) (selection.Rect, bool, error) {
	var a captureArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return selection.Rect{}, false, err
	}

	r, ok, err := resolveSelection(&a)
	if err != nil || !ok {
		if err == nil {
			s.logger.Debug("Selection cancelled", "path", a.Path)
		}
		return r, false, err
	}

	screen, err := imaging.LoadScreen(a.Path)
	if err != nil {
		return r, false, apperrors.NewInvalidArgumentError(apperrors.StageCapture, err.Error())
	}

	if err := s.session.Capture(screen, r); err != nil {
		return r, false, err
	}
	return r, true, nil
}

func (s *Server) handleCapturePreview(ctx context.Context, args json.RawMessage) (interface{}, error) {
	r, ok, err := s.capture(args)
	if err != nil {
		return nil, err
	}
	if !ok {
		return cancelledResult{Cancelled: true}, nil
	}

	text, err := s.session.Preview(ctx)
	if err != nil {
		return nil, err
	}
	return previewResult{Rect: r, Text: text}, nil
}

func (s *Server) handleCaptureTranslate(ctx context.Context, args json.RawMessage) (interface{}, error) {
	r, ok, err := s.capture(args)
	if err != nil {
		return nil, err
	}
	if !ok {
		return cancelledResult{Cancelled: true}, nil
	}

	res, err := s.session.Confirm(ctx)
	if err != nil {
		return nil, err
	}

	out := translateResult{
		Result: res,
		Rect:   r,
		Report: res.Report(),
	}
	if res.Status == pipeline.StatusFailed && res.Err != nil {
		out.Error = errorMap(res.Err)
	}
	return out, nil
}

// errorMap renders err for the tool result.
func errorMap(err error) map[string]interface{} {
	var e *apperrors.Error
	if errors.As(err, &e) {
		return e.ToMap()
	}
	return map[string]interface{}{"message": err.Error()}
}

func (s *Server) handleOCRInfo() (interface{}, error) {
	if s.engine == nil {
		return nil, fmt.Errorf("OCR engine info not available")
	}
	return s.engine.Info(), nil
}
