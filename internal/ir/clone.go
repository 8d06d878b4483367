package ir

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// Clone returns a deep copy of v. Build steps clone the section they extend so
// that callers never observe a partially updated list they still hold.
func Clone[T any](v T) T {
	var out T
	if err := deepcopy.Copy(&out, &v); err != nil {
		panic(fmt.Sprintf("ir: cannot clone %T: %v", v, err))
	}
	return out
}

// DataIndex returns the position of the named data node, or -1.
func DataIndex(data []Data, name string) int {
	for i := range data {
		if data[i].Name == name {
			return i
		}
	}
	return -1
}

// ScaleIndex returns the position of the named scale, or -1.
func ScaleIndex(scales []Scale, name string) int {
	for i := range scales {
		if scales[i].Name == name {
			return i
		}
	}
	return -1
}

// SignalIndex returns the position of the named signal, or -1.
func SignalIndex(signals []Signal, name string) int {
	for i := range signals {
		if signals[i].Name == name {
			return i
		}
	}
	return -1
}

// MarkIndex returns the position of the named top-level mark, or -1.
func MarkIndex(marks []Mark, name string) int {
	for i := range marks {
		if marks[i].Name == name {
			return i
		}
	}
	return -1
}

// Marshal encodes v as JSON without HTML escaping; expression strings contain
// '<', '>' and '&&' that the engine must receive verbatim.
func Marshal(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
