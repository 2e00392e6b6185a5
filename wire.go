package fprint

import (
	"encoding/binary"
	"fmt"
)

// Serialized xyt columns are packed little-endian int32 whatever the
// host byte order, so containers written on one machine load on any
// other.

func colToWire(col []int32) []byte {
	buf := make([]byte, 4*len(col))
	for i, v := range col {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	return buf
}

func colFromWire(b []byte) ([]int32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("%w: xyt column of %d bytes is not whole rows", ErrBadEnvelope, len(b))
	}
	col := make([]int32, len(b)/4)
	for i := range col {
		col[i] = int32(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return col, nil
}
