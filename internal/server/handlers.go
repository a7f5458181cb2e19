package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"math"

	"github.com/planmark/siteplan-mcp/internal/batch"
	"github.com/planmark/siteplan-mcp/internal/geometry"
	"github.com/planmark/siteplan-mcp/internal/imaging"
	"github.com/planmark/siteplan-mcp/internal/segment"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "region_trace").
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from the repository as needed
//  4. Calls into the engine packages
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Image Repository
	case "image_load":
		return s.handleImageLoad(args)
	case "image_store":
		return s.handleImageStore(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Region Operations
	case "region_trace":
		return s.handleRegionTrace(args)
	case "region_sample_color":
		return s.handleRegionSampleColor(args)
	case "region_extract_area":
		return s.handleRegionExtractArea(args)
	case "region_crop":
		return s.handleRegionCrop(args)

	// Polygon Operations
	case "polygon_simplify":
		return s.handlePolygonSimplify(args)
	case "polygon_measure":
		return s.handlePolygonMeasure(args)

	// Label Operations
	case "batch_generate":
		return s.handleBatchGenerate(args)
	case "document_export":
		return s.handleDocumentExport(args)

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

// === Image Repository Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.repo.Load(a.Path)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	return map[string]interface{}{
		"key":    a.Path,
		"width":  bounds.Dx(),
		"height": bounds.Dy(),
	}, nil
}

type imageStoreArgs struct {
	Key  string `json:"key"`
	Data string `json:"data"`
}

func (s *Server) handleImageStore(args json.RawMessage) (interface{}, error) {
	var a imageStoreArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Key == "" {
		return nil, fmt.Errorf("key is required")
	}
	raw, err := base64.StdEncoding.DecodeString(a.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 data: %w", err)
	}
	width, height, err := s.repo.PutEncoded(a.Key, raw)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"key":    a.Key,
		"width":  width,
		"height": height,
	}, nil
}

type imageDimensionsArgs struct {
	Key string `json:"key"`
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageDimensionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	width, height, err := s.repo.Dimensions(a.Key)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"width":  width,
		"height": height,
	}, nil
}

// === Region Operation Handlers ===

type regionTraceArgs struct {
	Key           string  `json:"key"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Tolerance     float64 `json:"tolerance"`
	EdgeThreshold float64 `json:"edge_threshold"`
	MaxPoints     int     `json:"max_points"`
}

func (s *Server) handleRegionTrace(args json.RawMessage) (interface{}, error) {
	var a regionTraceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.repo.Get(a.Key)
	if err != nil {
		return nil, err
	}

	opts := segment.DefaultOptions()
	if a.Tolerance != 0 {
		opts.Tolerance = a.Tolerance
	}
	if a.EdgeThreshold != 0 {
		opts.EdgeThreshold = a.EdgeThreshold
	}
	if a.MaxPoints != 0 {
		opts.MaxBoundaryPoints = a.MaxPoints
	}

	points, err := segment.Trace(img, geometry.Point{X: a.X, Y: a.Y}, opts)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"points":      points,
		"point_count": len(points),
	}, nil
}

type regionSampleColorArgs struct {
	Key    string           `json:"key"`
	Points []geometry.Point `json:"points"`
}

func (s *Server) handleRegionSampleColor(args json.RawMessage) (interface{}, error) {
	var a regionSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.repo.Get(a.Key)
	if err != nil {
		return nil, err
	}
	hex, err := imaging.AverageColor(img, geometry.OpenRing(a.Points))
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"color": hex,
	}, nil
}

type regionExtractAreaArgs struct {
	Key                 string           `json:"key"`
	Points              []geometry.Point `json:"points"`
	ExpectedHouseNumber int              `json:"expected_house_number"`
}

func (s *Server) handleRegionExtractArea(args json.RawMessage) (interface{}, error) {
	var a regionExtractAreaArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.repo.Get(a.Key)
	if err != nil {
		return nil, err
	}

	value, found, err := s.extractor.Area(context.Background(), img, geometry.OpenRing(a.Points), a.ExpectedHouseNumber)
	if err != nil {
		return nil, err
	}
	result := map[string]interface{}{
		"found": found,
	}
	if found {
		result["area"] = value
	}
	return result, nil
}

type regionCropArgs struct {
	Key   string  `json:"key"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Scale float64 `json:"scale"`
}

func (s *Server) handleRegionCrop(args json.RawMessage) (interface{}, error) {
	var a regionCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.repo.Get(a.Key)
	if err != nil {
		return nil, err
	}

	cropped, err := imaging.CropRegion(img, geometry.Rect{MinX: a.X1, MinY: a.Y1, MaxX: a.X2, MaxY: a.Y2}, a.Scale)
	if err != nil {
		return nil, err
	}
	encoded, err := imaging.EncodePNGBase64(cropped)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"image_data": encoded,
		"width":      cropped.Bounds().Dx(),
		"height":     cropped.Bounds().Dy(),
		"scale":      a.Scale,
	}, nil
}

// === Polygon Operation Handlers ===

type polygonSimplifyArgs struct {
	Points  []geometry.Point `json:"points"`
	Epsilon float64          `json:"epsilon"`
}

func (s *Server) handlePolygonSimplify(args json.RawMessage) (interface{}, error) {
	var a polygonSimplifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	points := geometry.OpenRing(a.Points)
	if len(points) < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 points, got %d", len(points))
	}

	epsilon := a.Epsilon
	if epsilon == 0 {
		// Without an explicit tolerance, scale it to the shape: 2% of the
		// larger bounding-box dimension.
		bbox := geometry.BoundingBox(points)
		epsilon = 0.02 * math.Max(bbox.Width(), bbox.Height())
	}

	simplified := geometry.Simplify(points, epsilon)
	return map[string]interface{}{
		"points":         simplified,
		"original_count": len(points),
		"point_count":    len(simplified),
	}, nil
}

type polygonMeasureArgs struct {
	Points []geometry.Point `json:"points"`
}

func (s *Server) handlePolygonMeasure(args json.RawMessage) (interface{}, error) {
	var a polygonMeasureArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	points := geometry.OpenRing(a.Points)
	if len(points) < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 points, got %d", len(points))
	}

	bbox := geometry.BoundingBox(points)
	return map[string]interface{}{
		"area":     geometry.Area(points),
		"centroid": geometry.Centroid(points),
		"bounding_box": map[string]float64{
			"min_x": bbox.MinX,
			"min_y": bbox.MinY,
			"max_x": bbox.MaxX,
			"max_y": bbox.MaxY,
		},
	}, nil
}

// === Label Operation Handlers ===

type batchGenerateArgs struct {
	Key       string         `json:"key,omitempty"`
	ImageName string         `json:"image_name,omitempty"`
	Config    batch.Config   `json:"config"`
	Start     geometry.Point `json:"start"`
	End       geometry.Point `json:"end"`
}

func (s *Server) handleBatchGenerate(args json.RawMessage) (interface{}, error) {
	var a batchGenerateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	// The image is optional: without one the grid is still planned, only
	// auto-detection is skipped.
	var img image.Image
	if a.Key != "" {
		var err error
		img, err = s.repo.Get(a.Key)
		if err != nil {
			return nil, err
		}
	}

	labels, err := s.planner.Plan(context.Background(), img, a.Config, a.Start, a.End)
	if err != nil {
		return nil, err
	}

	name := a.ImageName
	if name == "" {
		name = a.Key
	}
	if name != "" {
		width, height := 0, 0
		if img != nil {
			width = img.Bounds().Dx()
			height = img.Bounds().Dy()
		}
		s.document.EnsureImage(name, width, height)
		if err := s.document.AddLabels(name, labels...); err != nil {
			return nil, err
		}
	}

	return map[string]interface{}{
		"labels": labels,
		"count":  len(labels),
	}, nil
}

type documentExportArgs struct {
	Path string `json:"path,omitempty"`
}

func (s *Server) handleDocumentExport(args json.RawMessage) (interface{}, error) {
	var a documentExportArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}
	if a.Path != "" {
		if err := s.document.Save(a.Path); err != nil {
			return nil, err
		}
	}
	return s.document, nil
}
