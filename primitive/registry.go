package primitive

import (
	"sort"
	"sync"

	"github.com/gogpu/charts"
)

// Factory creates a primitive from anchor points and a stroke color.
type Factory func(points []Point, color string) Primitive

// Metadata describes a registered primitive type.
type Metadata struct {
	// TypeID is the unique registry key, e.g. "trend_line".
	TypeID string
	// DisplayName is the human-readable tool name.
	DisplayName string
	// Kind is the toolbar category.
	Kind Kind
	// New creates an instance.
	New Factory
	// SupportsText enables the text tab in tool settings.
	SupportsText bool
	// HasLevels enables the levels tab (Fibonacci, Gann).
	HasLevels bool
	// HasPointsConfig enables the points tab (patterns, Elliott).
	HasPointsConfig bool
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Metadata)
	byKind     = make(map[Kind][]string)
)

// Register makes a primitive type available by its TypeID. It panics
// if the metadata has no factory or a type with the same ID is already
// registered: both are programmer errors caught at init time.
func Register(meta Metadata) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if meta.New == nil {
		panic("primitive: Register factory is nil")
	}
	if _, dup := registry[meta.TypeID]; dup {
		panic("primitive: Register called twice for type " + meta.TypeID)
	}
	registry[meta.TypeID] = meta
	byKind[meta.Kind] = append(byKind[meta.Kind], meta.TypeID)
}

// Lookup returns the metadata for a type ID.
func Lookup(typeID string) (Metadata, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	meta, ok := registry[typeID]
	return meta, ok
}

// Create builds a primitive by type ID. An empty color means
// DefaultColor. Unknown type IDs return nil with a warning log, never
// a panic: type IDs arrive from persisted documents.
func Create(typeID string, points []Point, color string) Primitive {
	meta, ok := Lookup(typeID)
	if !ok {
		charts.Logger().Warn("unknown primitive type", "type_id", typeID)
		return nil
	}
	if color == "" {
		color = DefaultColor
	}
	return meta.New(points, color)
}

// ByKind returns the registered type IDs in a category, sorted.
func ByKind(kind Kind) []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ids := make([]string, len(byKind[kind]))
	copy(ids, byKind[kind])
	sort.Strings(ids)
	return ids
}

// Types returns all registered type IDs, sorted.
func Types() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SupportsText reports whether a type supports text labels.
func SupportsText(typeID string) bool {
	meta, ok := Lookup(typeID)
	return ok && meta.SupportsText
}

// HasLevels reports whether a type has configurable levels.
func HasLevels(typeID string) bool {
	meta, ok := Lookup(typeID)
	return ok && meta.HasLevels
}

// HasPointsConfig reports whether a type has configurable control
// points.
func HasPointsConfig(typeID string) bool {
	meta, ok := Lookup(typeID)
	return ok && meta.HasPointsConfig
}
