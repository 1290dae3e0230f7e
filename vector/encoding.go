package vector

import (
	"encoding/binary"
	"fmt"
)

// EncodeBlob encodes v as a little-endian sequence of int32 values without a
// length prefix; the length is derived from the BLOB size on decode.
func EncodeBlob(v Vector) []byte {
	if len(v) == 0 {
		return nil
	}
	b := make([]byte, len(v)*4)
	for i, x := range v {
		binary.LittleEndian.PutUint32(b[i*4:], uint32(x))
	}
	return b
}

// DecodeBlob decodes a BLOB produced by EncodeBlob.
func DecodeBlob(b []byte) (Vector, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("vector: invalid blob length %d (not multiple of 4)", len(b))
	}
	n := len(b) / 4
	v := make(Vector, n)
	for i := 0; i < n; i++ {
		v[i] = int32(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v, nil
}
