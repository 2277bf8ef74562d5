package server

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/plate-locator/internal/imaging"
)

// createPlateImageFile writes a 50x50 black image with a white 20x8 bar,
// which the detector reports as a plate.
func createPlateImageFile(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			c := color.RGBA{0, 0, 0, 255}
			if x >= 15 && x < 35 && y >= 21 && y < 29 {
				c = color.RGBA{255, 255, 255, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return writeTestPNG(t, img)
}

// createTestImageFile creates a test image file filled with c.
func createTestImageFile(t *testing.T, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return writeTestPNG(t, img)
}

func writeTestPNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

// callTool issues a tools/call request and returns the raw response.
func callTool(t *testing.T, s *Server, name string, args map[string]interface{}) *MCPResponse {
	t.Helper()

	params := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	paramsJSON, _ := json.Marshal(params)

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params:  paramsJSON,
	})
	if resp == nil {
		t.Fatal("handleRequest returned nil")
	}
	return resp
}

// decodeToolResult unpacks the JSON text content of a successful response
// into v.
func decodeToolResult(t *testing.T, resp *MCPResponse, v interface{}) {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	content, ok := result["content"].([]map[string]interface{})
	if !ok || len(content) != 1 {
		t.Fatalf("content should hold one entry, got %v", result["content"])
	}
	if content[0]["type"] != "text" {
		t.Errorf("content type: got %v, want text", content[0]["type"])
	}
	text, _ := content[0]["text"].(string)
	if err := json.Unmarshal([]byte(text), v); err != nil {
		t.Fatalf("failed to decode tool result %q: %v", text, err)
	}
}

func TestHandleToolsCall_PlateDetect(t *testing.T) {
	s := newTestServer(t)
	imgPath := createPlateImageFile(t)

	var result PlateDetectResult
	decodeToolResult(t, callTool(t, s, "plate_detect", map[string]interface{}{
		"path": imgPath,
	}), &result)

	if !result.Found {
		t.Fatal("plate should be found")
	}
	if result.Box == nil {
		t.Fatal("box should be set when found")
	}
	if result.Width != 50 || result.Height != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", result.Width, result.Height)
	}

	// The box covers the bar grown by the net dilation.
	b := result.Box
	if b.MinX > 15 || b.MinY > 21 || b.MaxX < 34 || b.MaxY < 28 {
		t.Errorf("box %+v should contain the bar (15,21)-(34,28)", *b)
	}
	if result.AspectRatio <= 1.5 || result.AspectRatio >= 6.0 {
		t.Errorf("aspect ratio %g outside accepted range", result.AspectRatio)
	}
	if result.OutputPath != "" || result.Crop != nil {
		t.Error("no output or crop was requested")
	}
}

func TestHandleToolsCall_PlateDetect_OutputAndCrop(t *testing.T) {
	s := newTestServer(t)
	imgPath := createPlateImageFile(t)
	outPath := filepath.Join(t.TempDir(), "out", "annotated.png")

	var result PlateDetectResult
	decodeToolResult(t, callTool(t, s, "plate_detect", map[string]interface{}{
		"path":         imgPath,
		"output_path":  outPath,
		"box_color":    "#FF0000",
		"include_crop": true,
	}), &result)

	if result.OutputPath != outPath {
		t.Errorf("output_path: got %q, want %q", result.OutputPath, outPath)
	}

	annotated, err := imaging.NewImageCache().Load(outPath)
	if err != nil {
		t.Fatalf("annotated image not readable: %v", err)
	}
	r, g, b, _ := annotated.At(result.Box.MinX, result.Box.MinY).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("box corner should be red, got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}

	if result.Crop == nil {
		t.Fatal("crop should be returned")
	}
	if result.Crop.Width != result.Box.Width()+1 || result.Crop.Height != result.Box.Height()+1 {
		t.Errorf("crop: got %dx%d for box %+v", result.Crop.Width, result.Crop.Height, *result.Box)
	}
	if result.Crop.ImageBase64 == "" {
		t.Error("crop image is empty")
	}
}

func TestHandleToolsCall_PlateDetect_NotFound(t *testing.T) {
	s := newTestServer(t)
	imgPath := createTestImageFile(t, 40, 30, color.RGBA{128, 128, 128, 255})
	outPath := filepath.Join(t.TempDir(), "plain.png")

	var result PlateDetectResult
	decodeToolResult(t, callTool(t, s, "plate_detect", map[string]interface{}{
		"path":         imgPath,
		"output_path":  outPath,
		"include_crop": true,
	}), &result)

	if result.Found {
		t.Error("uniform image should not contain a plate")
	}
	if result.Box != nil || result.Crop != nil {
		t.Error("box and crop should be omitted when nothing was found")
	}
	if result.Components != 0 {
		t.Errorf("components: got %d, want 0", result.Components)
	}
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("output image should still be written: %v", err)
	}
}

func TestHandleToolsCall_PlateDetect_Errors(t *testing.T) {
	s := newTestServer(t)
	imgPath := createPlateImageFile(t)

	tests := []struct {
		name    string
		args    map[string]interface{}
		wantErr string
	}{
		{"missing path", map[string]interface{}{}, "path is required"},
		{"missing file", map[string]interface{}{"path": filepath.Join(t.TempDir(), "absent.png")}, "failed to load"},
		{"bad color", map[string]interface{}{
			"path":        imgPath,
			"output_path": filepath.Join(t.TempDir(), "x.png"),
			"box_color":   "green",
		}, "invalid box color"},
		{"wrong type", map[string]interface{}{"path": 12}, "invalid arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callTool(t, s, "plate_detect", tt.args)
			if resp.Error == nil {
				t.Fatal("Expected error")
			}
			if resp.Error.Code != -32000 {
				t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
			}
			data, _ := resp.Error.Data.(string)
			if !strings.Contains(data, tt.wantErr) {
				t.Errorf("error data %q should mention %q", data, tt.wantErr)
			}
		})
	}
}

func TestHandleToolsCall_PlateDetect_TooSmall(t *testing.T) {
	s := newTestServer(t)
	imgPath := createTestImageFile(t, 4, 40, color.White)

	resp := callTool(t, s, "plate_detect", map[string]interface{}{"path": imgPath})
	if resp.Error == nil {
		t.Fatal("Expected error for a 4px wide image")
	}
	data, _ := resp.Error.Data.(string)
	if !strings.Contains(data, "invalid dimensions") {
		t.Errorf("error data: got %q", data)
	}
}

func TestHandleToolsCall_PlateStageImage(t *testing.T) {
	s := newTestServer(t)
	imgPath := createPlateImageFile(t)

	for _, stage := range imaging.StageNames {
		t.Run(stage, func(t *testing.T) {
			var result StageImageResult
			decodeToolResult(t, callTool(t, s, "plate_stage_image", map[string]interface{}{
				"path":  imgPath,
				"stage": stage,
			}), &result)

			if result.Stage != stage {
				t.Errorf("stage: got %s, want %s", result.Stage, stage)
			}
			if result.Width != 50 || result.Height != 50 {
				t.Errorf("dimensions: got %dx%d", result.Width, result.Height)
			}
			if result.MimeType != "image/png" || result.ImageBase64 == "" {
				t.Errorf("image payload missing: %+v", result)
			}
		})
	}

	resp := callTool(t, s, "plate_stage_image", map[string]interface{}{
		"path":  imgPath,
		"stage": "histogram",
	})
	if resp.Error == nil {
		t.Error("unknown stage should fail")
	}
}

func TestHandleToolsCall_ImageDimensions(t *testing.T) {
	s := newTestServer(t)
	imgPath := createTestImageFile(t, 200, 150, color.RGBA{0, 255, 0, 255})

	var result imaging.DimensionsResult
	decodeToolResult(t, callTool(t, s, "image_dimensions", map[string]interface{}{
		"path": imgPath,
	}), &result)

	if result.Width != 200 || result.Height != 150 {
		t.Errorf("dimensions: got %dx%d, want 200x150", result.Width, result.Height)
	}

	resp := callTool(t, s, "image_dimensions", map[string]interface{}{})
	if resp.Error == nil {
		t.Error("missing path should fail")
	}
}

func TestHandleToolsCall_UnknownTool(t *testing.T) {
	s := newTestServer(t)

	resp := callTool(t, s, "image_ocr_full", map[string]interface{}{"path": "/x.png"})
	if resp.Error == nil {
		t.Fatal("Expected error for unknown tool")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		params string
	}{
		{"not an object", `"plate_detect"`},
		{"missing name", `{"arguments":{"path":"/x.png"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.handleRequest(&MCPRequest{
				JSONRPC: "2.0",
				ID:      1,
				Method:  "tools/call",
				Params:  json.RawMessage(tt.params),
			})
			if resp == nil || resp.Error == nil {
				t.Fatal("Expected error response")
			}
			if resp.Error.Code != -32602 {
				t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
			}
		})
	}
}
