// Package registry provides a global registry for report formatters.
// Formatters register themselves in init() functions, allowing the CLI and
// the SSH server to discover output formats without hardcoded dependencies.
package registry

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-ladder/internal/ladder"
)

// Formatter writes a draw in one output format.
// Formatters only describe results; they never draw the ladder itself.
type Formatter interface {
	// ID returns a unique identifier used on the command line (e.g., "table").
	ID() string

	// Title returns a human-readable description.
	Title() string

	// Write renders the draw to w. id is the journal ID, empty if unsaved.
	Write(w io.Writer, d *ladder.Draw, id string) error
}

// FormatInfo contains metadata about a registered formatter.
type FormatInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new formatter.
type Factory func() Formatter

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a formatter factory to the registry.
// Typically called from a formatter's init() function.
// Panics if a formatter with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: format %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	titles[id] = f().Title()
}

// List returns information about all registered formatters, sorted by ID.
func List() []FormatInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]FormatInfo, 0, len(factories))
	for id := range factories {
		result = append(result, FormatInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a formatter by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (Formatter, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown format %q", id)
	}

	return f(), nil
}

// Exists checks if a formatter with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
