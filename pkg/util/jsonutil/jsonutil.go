package jsonutil

import (
	"bytes"
	"encoding/json"
)

// ToString encodes the input as a single line of JSON (without HTML escaping)
func ToString(input interface{}) string {
	return string(bytes.TrimSpace(encode(input, false)))
}

// ToPretty encodes the input as indented JSON
func ToPretty(input interface{}) string {
	return string(encode(input, true))
}

func encode(input interface{}, pretty bool) []byte {
	var out bytes.Buffer
	encoder := json.NewEncoder(&out)
	encoder.SetEscapeHTML(false)
	if pretty {
		encoder.SetIndent("", "  ")
	}

	_ = encoder.Encode(input)
	return out.Bytes()
}
