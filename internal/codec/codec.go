// Package codec encodes keys and values into stable byte representations.
package codec

import "encoding/json"

type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSONCodec produces compact JSON. Map keys are sorted by encoding/json, which
// keeps the output stable for equal values.
type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error)   { return json.Marshal(v) }
func (JSONCodec) Unmarshal(b []byte, v any) error { return json.Unmarshal(b, v) }

var _ Codec = JSONCodec{}
