// Package codec centralizes value encoding for persisted formats.
//
// Codec selection is a breaking-change boundary: snapshots record the codec
// name in their header and are opened by selecting the codec by name, so bytes
// written by one codec are never fed to another.
package codec

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Default is the codec used when none is configured explicitly.
//
// This affects newly-written snapshots only; existing files are
// self-describing and select their codec by name on load.
var Default Codec = GoJSON{}
