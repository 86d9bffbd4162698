package e820

import "unsafe"

// Region mirrors a structure the firmware lays out in memory, so its size and
// field offsets are fixed by the firmware interface. Fail the build if they drift.
var (
	_ [unsafe.Sizeof(Region{}) - RecordSize]struct{}
	_ [RecordSize - unsafe.Sizeof(Region{})]struct{}
	_ [unsafe.Offsetof(Region{}.Len) - 8]struct{}
	_ [unsafe.Offsetof(Region{}.RegionType) - 16]struct{}
	_ [unsafe.Offsetof(Region{}.ACPIExtendedAttributes) - 20]struct{}
)
