package router

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Decoder turns a successful response body into a value.
type Decoder interface {
	Decode(data []byte, v any) error
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(data []byte, v any) error

// Decode calls f.
func (f DecoderFunc) Decode(data []byte, v any) error {
	return f(data, v)
}

// JSONDecoder is the default Decoder. An empty body is an error.
type JSONDecoder struct {
	DisallowUnknownFields bool
	UseNumber             bool
}

// Decode implements Decoder.
func (d JSONDecoder) Decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if d.DisallowUnknownFields {
		dec.DisallowUnknownFields()
	}
	if d.UseNumber {
		dec.UseNumber()
	}

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding %T: %w", v, err)
	}
	return nil
}
