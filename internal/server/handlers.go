package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/plate-locator/internal/imaging"
	"github.com/ironsheep/plate-locator/internal/plate"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "plate_detect").
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
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}
	if params.Name == "" {
		return s.errorResponse(req.ID, codeInvalidParams, "Invalid params", "tool name is required")
	}

	log := s.log.WithField("tool", params.Name)
	started := time.Now()

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		log.WithError(err).Warn("tool failed")
		return s.errorResponse(req.ID, codeToolFailure, "Tool execution failed", err.Error())
	}
	log.WithField("elapsed", time.Since(started).String()).Debug("tool finished")

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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "plate_detect":
		return s.handlePlateDetect(args)
	case "plate_stage_image":
		return s.handlePlateStageImage(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
// An empty data string is omitted.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	mcpErr := &MCPError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		mcpErr.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   mcpErr,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments into v. Missing arguments decode
// as an empty object so required-field checks report the real problem.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

var errPathRequired = errors.New("path is required")

// detect loads path and runs the detector over it.
func (s *Server) detect(path string) (image.Image, *plate.DetectionResult, *plate.Stages, error) {
	if path == "" {
		return nil, nil, nil, errPathRequired
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}
	r, g, b := imaging.SplitChannels(img)
	result, stages, err := s.detector.DetectWithStages(r, g, b)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("detection failed for %s: %w", filepath.Base(path), err)
	}
	return img, result, stages, nil
}

// === Detection Handlers ===

type plateDetectArgs struct {
	Path        string  `json:"path"`
	OutputPath  string  `json:"output_path"`
	BoxColor    string  `json:"box_color"`
	IncludeCrop bool    `json:"include_crop"`
	CropScale   float64 `json:"crop_scale"`
}

// PlateDetectResult is returned by the plate_detect tool.
type PlateDetectResult struct {
	Found       bool                `json:"found"`
	Box         *plate.BoundingBox  `json:"box,omitempty"`
	AspectRatio float64             `json:"aspect_ratio,omitempty"`
	Components  int                 `json:"components"`
	Width       int                 `json:"width"`
	Height      int                 `json:"height"`
	OutputPath  string              `json:"output_path,omitempty"`
	Crop        *imaging.CropResult `json:"crop,omitempty"`
}

func (s *Server) handlePlateDetect(args json.RawMessage) (interface{}, error) {
	var a plateDetectArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.BoxColor == "" {
		a.BoxColor = s.cfg.Output.BoxColor
	}
	if a.CropScale == 0 {
		a.CropScale = 1.0
	}

	img, result, _, err := s.detect(a.Path)
	if err != nil {
		return nil, err
	}

	out := &PlateDetectResult{
		Found:      result.Found,
		Components: result.Components,
		Width:      img.Bounds().Dx(),
		Height:     img.Bounds().Dy(),
	}
	if result.Found {
		box := result.Box
		out.Box = &box
		out.AspectRatio = box.AspectRatio()
	}

	if a.OutputPath != "" {
		annotated, err := imaging.Annotate(img, result, a.BoxColor, s.cfg.Output.LineWidth)
		if err != nil {
			return nil, err
		}
		if err := imaging.SaveImage(annotated, a.OutputPath); err != nil {
			return nil, err
		}
		out.OutputPath = a.OutputPath
	}

	if a.IncludeCrop && result.Found {
		crop, err := imaging.CropRegion(img, result.Box.Rect(), a.CropScale)
		if err != nil {
			return nil, err
		}
		out.Crop = crop
	}

	s.log.WithFields(logrus.Fields{
		"path":  a.Path,
		"found": out.Found,
	}).Info("plate_detect")
	return out, nil
}

type plateStageImageArgs struct {
	Path  string `json:"path"`
	Stage string `json:"stage"`
}

// StageImageResult is returned by the plate_stage_image tool.
type StageImageResult struct {
	Stage       string `json:"stage"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

func (s *Server) handlePlateStageImage(args json.RawMessage) (interface{}, error) {
	var a plateStageImageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Stage == "" {
		a.Stage = imaging.StageMorphology
	}

	_, _, stages, err := s.detect(a.Path)
	if err != nil {
		return nil, err
	}

	rendered, err := imaging.StageImage(stages, a.Stage)
	if err != nil {
		return nil, err
	}
	encoded, err := imaging.EncodePNGBase64(rendered)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stage image: %w", err)
	}

	return &StageImageResult{
		Stage:       a.Stage,
		Width:       rendered.Bounds().Dx(),
		Height:      rendered.Bounds().Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

// === Basic Image Information Handlers ===

type imageDimensionsArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageDimensionsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errPathRequired
	}
	return imaging.GetDimensions(s.cache, a.Path)
}
