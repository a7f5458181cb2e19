package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"
)

// Repository provides thread-safe access to decoded site-plan bitmaps.
//
// Plan images reach the engine two ways: loaded from disk by path, or
// uploaded by the surrounding application as raw encoded bytes. Both end up
// here, keyed by a caller-chosen string, so that every component needing
// pixel access receives the repository explicitly instead of reading
// ambient shared state.
//
// Repository is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// Decoded bitmaps remain in memory until explicitly removed via Evict() or
// Clear(). Long-running processes handling many plans should evict images
// they are done annotating.
type Repository struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewRepository creates an empty image repository ready for use.
func NewRepository() *Repository {
	return &Repository{
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the repository or decodes it from disk if
// not present, caching it under its path.
//
// Supported formats are PNG, JPEG, and GIF. The image is keyed by the exact
// path string provided; relative and absolute paths to the same file result
// in separate entries.
func (r *Repository) Load(path string) (image.Image, error) {
	r.mu.RLock()
	if img, ok := r.images[path]; ok {
		r.mu.RUnlock()
		return img, nil
	}
	r.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	r.mu.Lock()
	r.images[path] = img
	r.mu.Unlock()

	return img, nil
}

// Put stores an already-decoded bitmap under the given key, replacing any
// previous entry. Used for images uploaded by the surrounding application.
func (r *Repository) Put(key string, img image.Image) {
	r.mu.Lock()
	r.images[key] = img
	r.mu.Unlock()
}

// PutEncoded decodes raw image bytes (PNG, JPEG, or GIF) and stores the
// result under the given key. Returns the decoded image's dimensions.
func (r *Repository) PutEncoded(key string, data []byte) (width, height int, err error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}
	r.Put(key, img)
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}

// Get returns the bitmap stored under key, or an error if no image with
// that key exists.
func (r *Repository) Get(key string) (image.Image, error) {
	r.mu.RLock()
	img, ok := r.images[key]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no image stored under key %q", key)
	}
	return img, nil
}

// Evict removes a specific image by key. Removing an absent key is a no-op.
func (r *Repository) Evict(key string) {
	r.mu.Lock()
	delete(r.images, key)
	r.mu.Unlock()
}

// Clear removes all images, freeing the associated memory.
func (r *Repository) Clear() {
	r.mu.Lock()
	r.images = make(map[string]image.Image)
	r.mu.Unlock()
}

// Dimensions returns the width and height of the image stored under key.
func (r *Repository) Dimensions(key string) (width, height int, err error) {
	img, err := r.Get(key)
	if err != nil {
		return 0, 0, err
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}
