package core

import "unsafe"

// TagPointer and friends implement the "tag bits in pointers" technique
// named in spec.md section 9's design note as one of the two valid
// encodings for a reservation/mark bit. Go's allocator word-aligns every
// heap object, so the low bit of any *T is always free for a caller-chosen
// flag; UntagPointer strips it back off before dereferencing.
const TagMask = uintptr(1)

func TagPointer(p unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(uintptr(p) | TagMask)
}

func UntagPointer(p unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(uintptr(p) &^ TagMask)
}

func PointerTagged(p unsafe.Pointer) bool {
	return uintptr(p)&TagMask != 0
}
