// Package codec translates values to and from the byte payloads held by the
// remote store. The coalescing engine treats values as opaque; a Codec is the
// only component that inspects them.
package codec

// Codec serializes values of type V for transmission and deserializes store
// payloads back into V. Implementations must be safe for concurrent use.
type Codec[V any] interface {
	// Encode renders v as the byte payload written to the store.
	Encode(v V) ([]byte, error)
	// Decode reconstructs a value from a payload read back from the store.
	Decode(data []byte) (V, error)
}
