package memmap

import "unsafe"

// The boot stage hands the Map to the kernel as raw bytes, so the byte layout of
// Region and Map is a contract shared by two separately compiled programs. These
// declarations have no runtime behavior; they exist only to fail the build if a
// change to either type breaks the handoff layout.
const (
	regionByteSize = 24
	mapByteSize    = EntryCount*regionByteSize + 8
)

var (
	_ [unsafe.Sizeof(Region{}) - regionByteSize]struct{}
	_ [regionByteSize - unsafe.Sizeof(Region{})]struct{}
	_ [unsafe.Sizeof(Map{}) - mapByteSize]struct{}
	_ [mapByteSize - unsafe.Sizeof(Map{})]struct{}
	_ [unsafe.Offsetof(Map{}.nextEntryIndex) - EntryCount*regionByteSize]struct{}
	_ [unsafe.Offsetof(Region{}.Len) - 8]struct{}
	_ [unsafe.Offsetof(Region{}.Type) - 16]struct{}
)
