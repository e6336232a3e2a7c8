package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// JSON is stable and portable for map-shaped documents; numbers decode to
// float64, matching the comparison semantics of the query package. Use it
// when you want zero extra dependencies in the decode path.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used when none is configured.
//
// This affects newly written snapshots only; decode by name when reading
// data that recorded its codec.
var Default Codec = GoJSON{}
