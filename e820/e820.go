// Package e820 consumes the raw address range descriptors reported by the
// firmware's memory discovery interface and converts them into catalog regions.
// The record format is dictated by the firmware interface; this package only
// reads it.
package e820

import (
	"fmt"

	"github.com/osdevkit/bootmap/memmap"
	"github.com/osdevkit/bootmap/physical"
)

// Architectural type codes for address range descriptors. Values outside this
// set are not defined by the firmware interface revision this package supports.
const (
	RegionTypeUsable          uint32 = 1
	RegionTypeReserved        uint32 = 2
	RegionTypeAcpiReclaimable uint32 = 3
	RegionTypeAcpiNvs         uint32 = 4
	RegionTypeBadMemory       uint32 = 5
)

// Region is one raw address range descriptor exactly as the firmware reports it:
// an 8-byte start, an 8-byte length, a 4-byte type code, and a 4-byte extended
// attributes field.
type Region struct {
	StartAddr              uint64
	Len                    uint64
	RegionType             uint32
	ACPIExtendedAttributes uint32
}

// MemoryRegion converts the raw descriptor into a catalog region. The start and
// length are carried over verbatim, with the start validated as a physical
// address.
//
// Firmware data is otherwise trusted, so a type code outside the architectural
// 1..5 range can only mean corruption or an unsupported firmware table revision.
// Guessing a classification could either lose usable RAM or permit writes into
// hardware-reserved memory, so conversion panics instead of defaulting.
func (r Region) MemoryRegion() memmap.Region {
	var regionType memmap.RegionType
	switch r.RegionType {
	case RegionTypeUsable:
		regionType = memmap.RegionTypeUsable
	case RegionTypeReserved:
		regionType = memmap.RegionTypeReserved
	case RegionTypeAcpiReclaimable:
		regionType = memmap.RegionTypeAcpiReclaimable
	case RegionTypeAcpiNvs:
		regionType = memmap.RegionTypeAcpiNvs
	case RegionTypeBadMemory:
		regionType = memmap.RegionTypeBadMemory
	default:
		panic(fmt.Sprintf("invalid firmware region type %d for region starting at %#x", r.RegionType, r.StartAddr))
	}

	return memmap.Region{
		Start: physical.NewAddr(r.StartAddr),
		Len:   r.Len,
		Type:  regionType,
	}
}
