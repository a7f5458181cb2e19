package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pointArraySchema describes a polygon as an array of {x, y} objects.
// Shared by every tool that accepts a point list.
func pointArraySchema(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": description,
		"items": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"x": map[string]interface{}{"type": "number"},
				"y": map[string]interface{}{"type": "number"},
			},
			"required": []string{"x", "y"},
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Repository
		{
			Name:        "image_load",
			Description: "Load a plan image from disk into the repository. Returns its key and dimensions; the key identifies the image in all subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file (PNG, JPEG, or GIF)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_store",
			Description: "Store a base64-encoded image (PNG, JPEG, or GIF) in the repository under a chosen key. Use this for images that do not exist on disk, e.g. uploads from the client.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"key": map[string]interface{}{
						"type":        "string",
						"description": "Repository key to store the image under",
					},
					"data": map[string]interface{}{
						"type":        "string",
						"description": "Base64-encoded image bytes",
					},
				},
				"required": []string{"key", "data"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of a stored image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"key": map[string]interface{}{
						"type":        "string",
						"description": "Repository key of the image",
					},
				},
				"required": []string{"key"},
			},
		},

		// Region Operations
		{
			Name:        "region_trace",
			Description: "Magic-wand segmentation: grow a region from a seed pixel, bounded by color tolerance and edge strength, and return its outline as a simplified closed polygon.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"key": map[string]interface{}{
						"type":        "string",
						"description": "Repository key of the image",
					},
					"x": map[string]interface{}{
						"type":        "number",
						"description": "Seed X coordinate in image pixels",
					},
					"y": map[string]interface{}{
						"type":        "number",
						"description": "Seed Y coordinate in image pixels",
					},
					"tolerance": map[string]interface{}{
						"type":        "number",
						"description": "Maximum color distance from the seed (sum of per-channel differences). Default 30",
						"default":     30,
					},
					"edge_threshold": map[string]interface{}{
						"type":        "number",
						"description": "Gradient magnitude above which a pixel counts as a boundary. Default 50",
						"default":     50,
					},
					"max_points": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum boundary points before simplification. Default 50",
						"default":     50,
					},
				},
				"required": []string{"key", "x", "y"},
			},
		},
		{
			Name:        "region_sample_color",
			Description: "Compute the average color over a polygon's bounding region as a hex string, skipping near-transparent pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"key": map[string]interface{}{
						"type":        "string",
						"description": "Repository key of the image",
					},
					"points": pointArraySchema("Polygon vertices in image pixels"),
				},
				"required": []string{"key", "points"},
			},
		},
		{
			Name:        "region_extract_area",
			Description: "OCR the polygon's bounding region and extract the printed plot-area value (e.g. '240 m²') as a number. Returns found=false when no plausible reading exists; never guesses zero.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"key": map[string]interface{}{
						"type":        "string",
						"description": "Repository key of the image",
					},
					"points": pointArraySchema("Polygon vertices in image pixels"),
					"expected_house_number": map[string]interface{}{
						"type":        "integer",
						"description": "House number printed in the same cell, filtered out of candidates. 0 disables the filter",
					},
				},
				"required": []string{"key", "points"},
			},
		},
		{
			Name:        "region_crop",
			Description: "Crop a rectangular region from a stored image and return it as base64-encoded PNG, optionally rescaled.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"key": map[string]interface{}{
						"type":        "string",
						"description": "Repository key of the image",
					},
					"x1": map[string]interface{}{
						"type":        "number",
						"description": "Left edge X coordinate",
					},
					"y1": map[string]interface{}{
						"type":        "number",
						"description": "Top edge Y coordinate",
					},
					"x2": map[string]interface{}{
						"type":        "number",
						"description": "Right edge X coordinate",
					},
					"y2": map[string]interface{}{
						"type":        "number",
						"description": "Bottom edge Y coordinate",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"key", "x1", "y1", "x2", "y2"},
			},
		},

		// Polygon Operations
		{
			Name:        "polygon_simplify",
			Description: "Simplify a polygon with Douglas-Peucker, removing points within epsilon of the chord between their neighbors.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"points": pointArraySchema("Polygon vertices in image pixels"),
					"epsilon": map[string]interface{}{
						"type":        "number",
						"description": "Distance tolerance in pixels. Default: 2% of the larger bounding-box dimension",
					},
				},
				"required": []string{"points"},
			},
		},
		{
			Name:        "polygon_measure",
			Description: "Measure a polygon: shoelace area in square pixels, vertex-average centroid, and bounding box.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"points": pointArraySchema("Polygon vertices in image pixels"),
				},
				"required": []string{"points"},
			},
		},

		// Label Operations
		{
			Name:        "batch_generate",
			Description: "Subdivide a selection rectangle into a grid of plot labels with house numbers assigned per the numbering order. Optionally auto-detects each cell's fill color and printed area from the image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"key": map[string]interface{}{
						"type":        "string",
						"description": "Repository key of the image; omit to plan geometry only (no auto-detection)",
					},
					"image_name": map[string]interface{}{
						"type":        "string",
						"description": "Document image name to record the labels under. Defaults to the key",
					},
					"config": map[string]interface{}{
						"type":        "object",
						"description": "Grid configuration: rows, cols, startBlockNumber, startHouseNumber, houseNumberIncrement, customSequence, useCustomSequence, columnDividers, rowDividers, type (plot|block|amenity), color, numberingOrder (ltr|rtl|boustrophedon|evens-odds|odds-evens|col-ltr|col-rtl), autoDetectColor, autoDetectArea",
					},
					"start": map[string]interface{}{
						"type":        "object",
						"description": "One corner of the selection rectangle, {x, y}",
					},
					"end": map[string]interface{}{
						"type":        "object",
						"description": "Opposite corner of the selection rectangle, {x, y}",
					},
				},
				"required": []string{"config", "start", "end"},
			},
		},
		{
			Name:        "document_export",
			Description: "Export the accumulated label document as JSON, optionally also writing it to a file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Optional absolute path to write the document to",
					},
				},
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
