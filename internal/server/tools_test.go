package server

import (
	"encoding/json"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) != 11 {
		t.Errorf("Expected 11 tools, got %d", len(tools))
	}

	seen := make(map[string]bool)
	for _, tool := range tools {
		if tool.Name == "" {
			t.Error("Tool with empty name")
		}
		if seen[tool.Name] {
			t.Errorf("Duplicate tool name: %s", tool.Name)
		}
		seen[tool.Name] = true

		if tool.Description == "" {
			t.Errorf("Tool %s has no description", tool.Name)
		}
		if tool.InputSchema == nil {
			t.Errorf("Tool %s has no input schema", tool.Name)
		}
		if tool.InputSchema["type"] != "object" {
			t.Errorf("Tool %s schema type: got %v, want object", tool.Name, tool.InputSchema["type"])
		}
	}
}

func TestGetToolDefinitions_ExpectedTools(t *testing.T) {
	expected := []string{
		"image_load",
		"image_store",
		"image_dimensions",
		"region_trace",
		"region_sample_color",
		"region_extract_area",
		"region_crop",
		"polygon_simplify",
		"polygon_measure",
		"batch_generate",
		"document_export",
	}

	tools := GetToolDefinitions()
	names := make(map[string]bool)
	for _, tool := range tools {
		names[tool.Name] = true
	}

	for _, name := range expected {
		if !names[name] {
			t.Errorf("Missing tool: %s", name)
		}
	}
}

func TestToolDefinitions_MarshalToJSON(t *testing.T) {
	tools := GetToolDefinitions()

	data, err := json.Marshal(tools)
	if err != nil {
		t.Fatalf("Failed to marshal tool definitions: %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal tool definitions: %v", err)
	}
	if len(decoded) != len(tools) {
		t.Errorf("Round trip changed tool count: %d -> %d", len(tools), len(decoded))
	}

	// MCP clients expect the camelCase inputSchema key
	if _, ok := decoded[0]["inputSchema"]; !ok {
		t.Error("Tool definition missing inputSchema key in JSON")
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/list",
	}

	resp := s.handleToolsList(req)

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(toolsList) != 11 {
		t.Errorf("Expected 11 tools, got %d", len(toolsList))
	}
}
