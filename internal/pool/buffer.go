package pool

import (
	"math/bits"
	"sync"
)

type (
	buffer struct {
		bytes []byte
	}
)

var (
	buffers [shard]sync.Pool
)

const (
	shard = 16
	shift = 10
	// Min is the smallest capacity handed out.
	Min = 1 << shift
)

// class maps a capacity to its pool, -1 when it is too large to keep.
func class(size int) int {
	div, rem := size>>shift, size&(Min-1)
	idx := bits.Len(uint(div))
	if div != 0 && rem == 0 {
		idx--
	}
	if idx >= shard {
		return -1
	}
	return idx
}

// Get returns an empty slice with room for at least size bytes.
func Get(size int) []byte {
	if size < Min {
		size = Min
	}
	if idx := class(size); idx >= 0 {
		if in := buffers[idx].Get(); in != nil {
			bytes := in.(*buffer).bytes
			if cap(bytes) >= size {
				return bytes[:0]
			}
		}
	}
	return make([]byte, 0, size)
}

// Put hands bytes back for reuse. The caller must not touch it afterwards.
func Put(bytes []byte) {
	idx := class(cap(bytes))
	if idx < 0 || cap(bytes) < Min {
		return
	}
	// a slice that grew past its class goes one class down so that
	// Get never sees a buffer smaller than it asked for.
	if cap(bytes) < 1<<(idx+shift) && idx > 0 {
		idx--
	}
	buffers[idx].Put(&buffer{bytes: bytes[:0]})
}
