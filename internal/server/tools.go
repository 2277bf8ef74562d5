package server

import "github.com/ironsheep/plate-locator/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name: "plate_detect",
			Description: "Locate the licence plate in a photo of a vehicle. Returns whether a plate-shaped " +
				"region was found and its bounding box in pixel coordinates (inclusive corners). Optionally " +
				"writes an annotated copy of the image and returns the plate region as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path for an annotated copy with the box outlined. The format follows the extension.",
					},
					"box_color": map[string]interface{}{
						"type":        "string",
						"description": "Outline colour as #RRGGBB. Defaults to the configured colour.",
					},
					"include_crop": map[string]interface{}{
						"type":        "boolean",
						"description": "Return the plate region as base64-encoded PNG when a plate is found",
						"default":     false,
					},
					"crop_scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor for the returned crop. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name: "plate_stage_image",
			Description: "Render one intermediate stage of the plate detection pipeline as base64-encoded PNG. " +
				"Useful to see why a plate was or was not found.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"stage": map[string]interface{}{
						"type":        "string",
						"enum":        imaging.StageNames,
						"description": "Pipeline stage to render. Default morphology",
						"default":     imaging.StageMorphology,
					},
				},
				"required": []string{"path", "stage"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
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
