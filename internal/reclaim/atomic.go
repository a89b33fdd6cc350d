package reclaim

import (
	"sync/atomic"
	"unsafe"
)

func loadPointer(src *unsafe.Pointer) unsafe.Pointer {
	return atomic.LoadPointer(src)
}
