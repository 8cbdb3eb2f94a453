package emitter

import (
	"bytes"
	"encoding/json"

	"github.com/goccy/go-yaml"
)

// Record is one key of an ordered document node.
type Record struct {
	Key   string
	Value any
}

// Records is an ordered mapping. Templates are diffed and reviewed by people, so keys keep
// the order they were built in instead of the sorted order of a Go map.
type Records []Record

func (r Records) With(key string, value any) Records {
	return append(r, Record{Key: key, Value: value})
}

func (r Records) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, record := range r {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(record.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(record.Value)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// toYAML converts a document tree into values go-yaml encodes in order.
func toYAML(v any) any {
	switch value := v.(type) {
	case Records:
		slice := make(yaml.MapSlice, 0, len(value))
		for _, record := range value {
			slice = append(slice, yaml.MapItem{Key: record.Key, Value: toYAML(record.Value)})
		}
		return slice
	case []any:
		items := make([]any, 0, len(value))
		for _, item := range value {
			items = append(items, toYAML(item))
		}
		return items
	default:
		return v
	}
}
