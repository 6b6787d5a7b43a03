// Package registry provides a global registry for artifact codecs.
// Codecs register themselves in init() functions, allowing the exporter
// to discover formats without hardcoded dependencies.
package registry

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// Codec encodes and decodes level artifacts in one file format.
type Codec interface {
	// ID returns a unique identifier for this format (e.g., "json", "yaml").
	// Used for CLI flags and config values.
	ID() string

	// Extensions returns the file extensions of the format, preferred first.
	Extensions() []string

	// Encode writes v to w.
	Encode(w io.Writer, v any) error

	// Decode parses data into v.
	Decode(data []byte, v any) error
}

// FormatInfo contains metadata about a registered codec.
type FormatInfo struct {
	ID        string
	Extension string
}

// Factory is a function that creates a new instance of a codec.
type Factory func() Codec

var (
	factories  = make(map[string]Factory)
	extensions = make(map[string]string) // extension -> codec ID
	mu         sync.RWMutex
)

// Register adds a codec factory to the registry.
// Typically called from a codec's init() function.
// Panics if a codec with the same ID or extension is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: format %q already registered", id))
	}

	c := f()
	for _, ext := range c.Extensions() {
		ext = strings.ToLower(ext)
		if owner, taken := extensions[ext]; taken {
			panic(fmt.Sprintf("registry: extension %q already registered by %q", ext, owner))
		}
		extensions[ext] = id
	}

	factories[id] = f
}

// List returns information about all registered codecs, sorted by ID.
func List() []FormatInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]FormatInfo, 0, len(factories))
	for id, f := range factories {
		info := FormatInfo{ID: id}
		if exts := f().Extensions(); len(exts) > 0 {
			info.Extension = exts[0]
		}
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a codec by its ID.
// Returns an error if the format is not registered.
func Create(id string) (Codec, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown format %q", id)
	}

	return f(), nil
}

// ForExtension returns the codec registered for a file extension
// (including the leading dot).
func ForExtension(ext string) (Codec, error) {
	mu.RLock()
	id, ok := extensions[strings.ToLower(ext)]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unsupported extension %q", ext)
	}
	return Create(id)
}

// Exists checks if a codec with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
