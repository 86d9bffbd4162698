package memmap

import (
	"fmt"

	"github.com/osdevkit/bootmap/physical"
)

// RegionType classifies what a span of physical memory is used for. The set is
// closed: consumers switch over it exhaustively when deciding whether memory may
// be handed out.
type RegionType uint32

const (
	// RegionTypeUsable is free RAM
	RegionTypeUsable RegionType = iota
	// RegionTypeInUse is RAM that is already in use
	RegionTypeInUse
	// RegionTypeReserved is memory the firmware has marked unusable
	RegionTypeReserved
	// RegionTypeAcpiReclaimable is memory holding ACPI tables, reclaimable once they have been parsed
	RegionTypeAcpiReclaimable
	// RegionTypeAcpiNvs is ACPI non-volatile storage
	RegionTypeAcpiNvs
	// RegionTypeBadMemory is an area containing bad memory
	RegionTypeBadMemory
	// RegionTypeKernel is memory holding the kernel image
	RegionTypeKernel
	// RegionTypePageTable is memory used by page tables
	RegionTypePageTable
	// RegionTypeBootloader is memory used by the bootloader
	RegionTypeBootloader
	// RegionTypeFrameZero is the frame at physical address zero, kept out of use
	// because null-pointer mistakes are too easy to make with it
	RegionTypeFrameZero
)

var regionTypeMapping = map[RegionType]string{
	RegionTypeUsable:          "RegionTypeUsable",
	RegionTypeInUse:           "RegionTypeInUse",
	RegionTypeReserved:        "RegionTypeReserved",
	RegionTypeAcpiReclaimable: "RegionTypeAcpiReclaimable",
	RegionTypeAcpiNvs:         "RegionTypeAcpiNvs",
	RegionTypeBadMemory:       "RegionTypeBadMemory",
	RegionTypeKernel:          "RegionTypeKernel",
	RegionTypePageTable:       "RegionTypePageTable",
	RegionTypeBootloader:      "RegionTypeBootloader",
	RegionTypeFrameZero:       "RegionTypeFrameZero",
}

func (t RegionType) String() string {
	return regionTypeMapping[t]
}

// Region describes one contiguous span of physical memory and its classification.
// It is an immutable value with structural equality. A Region whose Len is 0 is
// the empty sentinel marking unused catalog capacity, regardless of what its Type
// field holds.
type Region struct {
	Start physical.Addr
	Len   uint64
	Type  RegionType
	_     uint32
}

// EmptyRegion returns the sentinel value for an unused catalog slot.
func EmptyRegion() Region {
	return Region{
		Start: physical.NewAddr(0),
		Len:   0,
		Type:  RegionTypeReserved,
	}
}

// EndAddr returns the first address past the end of the region.
func (r Region) EndAddr() physical.Addr {
	return r.Start.Add(r.Len)
}

func (r Region) String() string {
	return fmt.Sprintf("%s+%d bytes (%s)", r.Start, r.Len, r.Type)
}
