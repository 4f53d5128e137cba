package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// captureProperties are the arguments shared by the capture tools.
func captureProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to a screenshot used as the screen",
		},
		"rect": map[string]interface{}{
			"type":        "object",
			"description": "Committed selection in screen coordinates. A zero width or height cancels the capture.",
			"properties": map[string]interface{}{
				"x":      map[string]interface{}{"type": "integer"},
				"y":      map[string]interface{}{"type": "integer"},
				"width":  map[string]interface{}{"type": "integer"},
				"height": map[string]interface{}{"type": "integer"},
			},
			"required": []string{"x", "y", "width", "height"},
		},
		"gesture": map[string]interface{}{
			"type":        "array",
			"description": "Recorded pointer events replayed through the selection state machine instead of rect. A gesture that does not commit cancels the capture.",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"kind": map[string]interface{}{
						"type": "string",
						"enum": []string{"down", "move", "up", "cancel"},
					},
					"x": map[string]interface{}{"type": "integer"},
					"y": map[string]interface{}{"type": "integer"},
					"button": map[string]interface{}{
						"type":        "integer",
						"description": "0 primary, 1 secondary, 2 middle. Default 0",
						"default":     0,
					},
				},
				"required": []string{"kind"},
			},
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "capture_preview",
			Description: "Run OCR on a selected screen region and return the recognized text without translating it. Supply either rect or gesture.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": captureProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "capture_translate",
			Description: "Run OCR on a selected screen region, translate the English text it contains, and look up a phonetic transcription for every word. Returns the structured result and the report shown to the user.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": captureProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "ocr_info",
			Description: "Report the Tesseract version, configured language and installed language data.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
