package server

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/rpad/internal/border"
	"github.com/ironsheep/rpad/internal/imaging"
	"github.com/ironsheep/rpad/internal/logger"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_normalize_border").
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
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		logger.WithFields(logrus.Fields{"tool": params.Name}).WithError(err).Warn("tool failed")
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	case "image_detect_border":
		return s.handleImageDetectBorder(args)
	case "image_strip_border":
		return s.handleImageStripBorder(args)
	case "image_normalize_border":
		return s.handleImageNormalizeBorder(args)

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
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) loadArgs(args json.RawMessage) (image.Image, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.cache.Load(a.Path)
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

// === Border Handlers ===

// BorderResult reports a detected frame.
type BorderResult struct {
	// Width and Height are the source image dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	border.Frame

	// Color is the padding color: the border color, or white without a border.
	Color imaging.ColorResult `json:"color"`
}

func newBorderResult(img image.Image, f border.Frame) *BorderResult {
	return &BorderResult{
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
		Frame:  f,
		Color:  imaging.NewColorResult(f.Color),
	}
}

func (s *Server) handleImageDetectBorder(args json.RawMessage) (interface{}, error) {
	img, err := s.loadArgs(args)
	if err != nil {
		return nil, err
	}
	return newBorderResult(img, border.DetectFrame(img)), nil
}

// StripResult is the outcome of image_strip_border.
type StripResult struct {
	Border   *BorderResult         `json:"border"`
	Interior *imaging.EncodedImage `json:"interior"`
}

func (s *Server) handleImageStripBorder(args json.RawMessage) (interface{}, error) {
	img, err := s.loadArgs(args)
	if err != nil {
		return nil, err
	}

	interior, f := border.Strip(img)

	encoded, err := imaging.EncodePNGBase64(interior)
	if err != nil {
		return nil, err
	}
	return &StripResult{
		Border:   newBorderResult(img, f),
		Interior: encoded,
	}, nil
}

type imageNormalizeBorderArgs struct {
	Path      string `json:"path"`
	Padding   *int   `json:"padding"`
	OutputDir string `json:"output_dir"`
}

// NormalizeResult is the outcome of image_normalize_border. Exactly one of
// OutputPath and Image is set.
type NormalizeResult struct {
	Border     *BorderResult         `json:"border"`
	Padding    int                   `json:"padding"`
	Width      int                   `json:"width"`
	Height     int                   `json:"height"`
	OutputPath string                `json:"output_path,omitempty"`
	Image      *imaging.EncodedImage `json:"image,omitempty"`
}

func (s *Server) handleImageNormalizeBorder(args json.RawMessage) (interface{}, error) {
	var a imageNormalizeBorderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	padding := s.cfg.Padding
	if a.Padding != nil {
		padding = *a.Padding
	}
	if err := s.cfg.CheckPadding(padding); err != nil {
		return nil, err
	}

	// Reject an unusable destination before doing any pixel work.
	var outPath string
	if a.OutputDir != "" {
		if err := imaging.CheckOutputDir(a.OutputDir); err != nil {
			return nil, err
		}
		outPath = imaging.OutputPath(a.Path, a.OutputDir)
		if err := imaging.CheckOutputFormat(outPath); err != nil {
			return nil, err
		}
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if err := border.CheckSize(img.Bounds(), padding); err != nil {
		return nil, err
	}

	padded, f := border.Normalize(img, padding)
	result := &NormalizeResult{
		Border:  newBorderResult(img, f),
		Padding: padding,
		Width:   padded.Bounds().Dx(),
		Height:  padded.Bounds().Dy(),
	}

	if outPath == "" {
		if result.Image, err = imaging.EncodePNGBase64(padded); err != nil {
			return nil, err
		}
		return result, nil
	}

	if err := imaging.Save(padded, outPath); err != nil {
		return nil, err
	}
	s.cache.Evict(outPath)
	result.OutputPath = outPath

	logger.WithField("path", outPath).Info("saved normalized image")
	return result, nil
}
