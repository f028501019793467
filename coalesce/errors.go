package coalesce

import "errors"

// Sentinel errors for coalescer operations.
var (
	ErrNilConn  = errors.New("nil store connection")
	ErrNilCodec = errors.New("nil codec")
	ErrEncode   = errors.New("encode failed")
	ErrDecode   = errors.New("decode failed")
)
