package coalesce

// SetFunc receives the outcome of a registered set.
type SetFunc func(err error)

// DelFunc receives the outcome of a registered delete.
type DelFunc func(err error)

// GetFunc receives the outcome of a registered get. A nil value with a nil
// error means the key was absent from the store; a missing key is not an
// error. Decode failures arrive without a value and satisfy
// errors.Is(err, ErrDecode).
type GetFunc[V any] func(value *V, err error)

type setOp[V any] struct {
	value V
	done  SetFunc
}

type getOp[V any] struct {
	done GetFunc[V]
}

type delOp struct {
	done DelFunc
}
