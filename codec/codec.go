// Package codec centralizes snapshot encoding.
//
// Byte-oriented storage chains persist whatever the selected codec
// produced; persisted formats should record the codec name so they can be
// decoded by name later regardless of the configured default.
package codec

import "fmt"

// Codec encodes/decodes snapshot values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name. Use it to decode
// self-describing persisted data that recorded the codec it was written
// with.
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

// MustMarshal is a helper for internal tests.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
