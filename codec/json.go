package codec

import "encoding/json"

type jsonCodec[V any] struct{}

// JSON returns a Codec that stores values as their JSON encoding. This is the
// default codec: textual, schema-free, and readable in the store itself.
func JSON[V any]() Codec[V] {
	return jsonCodec[V]{}
}

func (jsonCodec[V]) Encode(v V) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec[V]) Decode(data []byte) (V, error) {
	var v V
	err := json.Unmarshal(data, &v)
	return v, err
}
