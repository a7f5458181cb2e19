package label

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImageData is one annotated plan image: its pixel dimensions, which
// define the coordinate space all label points live in, and the labels it
// owns.
type ImageData struct {
	Name     string  `json:"name"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Labels   []Label `json:"labels"`
	ImageURI string  `json:"imageUri,omitempty"`
}

// Document is the persisted label document exchanged with the surrounding
// application: every annotated image keyed by name.
type Document struct {
	Images map[string]ImageData `json:"images"`
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{Images: make(map[string]ImageData)}
}

// EnsureImage registers an image entry, creating it if absent. Dimensions
// of an existing entry are left untouched.
func (d *Document) EnsureImage(name string, width, height int) {
	if _, ok := d.Images[name]; ok {
		return
	}
	d.Images[name] = ImageData{
		Name:   name,
		Width:  width,
		Height: height,
		Labels: []Label{},
	}
}

// AddLabels appends labels to the named image's collection. The image must
// already be registered. All labels are added or none: the document is not
// modified on error.
func (d *Document) AddLabels(imageName string, labels ...Label) error {
	img, ok := d.Images[imageName]
	if !ok {
		return fmt.Errorf("image %q not in document", imageName)
	}
	img.Labels = append(img.Labels, labels...)
	d.Images[imageName] = img
	return nil
}

// RemoveLabel deletes the label with the given id from the named image.
func (d *Document) RemoveLabel(imageName, id string) error {
	img, ok := d.Images[imageName]
	if !ok {
		return fmt.Errorf("image %q not in document", imageName)
	}
	for i, l := range img.Labels {
		if l.ID == id {
			img.Labels = append(img.Labels[:i], img.Labels[i+1:]...)
			d.Images[imageName] = img
			return nil
		}
	}
	return fmt.Errorf("label %q not in image %q", id, imageName)
}

// Save writes the document as JSON to path.
func (d *Document) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// Load reads a document from a JSON file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if d.Images == nil {
		d.Images = make(map[string]ImageData)
	}
	return &d, nil
}
