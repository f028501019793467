package codec

import "slices"

type rawCodec struct{}

// Raw returns a pass-through Codec for callers that manage their own byte
// payloads. Encode and Decode copy the slice so neither side can mutate the
// other's buffer.
func Raw() Codec[[]byte] {
	return rawCodec{}
}

func (rawCodec) Encode(v []byte) ([]byte, error) {
	return slices.Clone(v), nil
}

func (rawCodec) Decode(data []byte) ([]byte, error) {
	return slices.Clone(data), nil
}

type stringCodec struct{}

// String returns a Codec that stores string values verbatim.
func String() Codec[string] {
	return stringCodec{}
}

func (stringCodec) Encode(v string) ([]byte, error) {
	return []byte(v), nil
}

func (stringCodec) Decode(data []byte) (string, error) {
	return string(data), nil
}
