// Package memmap holds the fixed-capacity catalog of physical memory regions
// that the boot stage builds and hands to the kernel. Everything in this package
// works without a heap: the catalog is a flat preallocated value, because it is
// populated before any allocator exists.
package memmap

import (
	"fmt"

	cerrors "github.com/cockroachdb/errors"
	"golang.org/x/exp/slices"

	"github.com/osdevkit/bootmap/physical"
)

// EntryCount is the fixed capacity of a Map.
const EntryCount = 32

// Map is a bounded catalog of the physical memory regions discovered at boot. It
// is built before any allocator exists, so it is a flat preallocated value with
// no internal pointers: exactly EntryCount region slots followed by an 8-byte
// count of the slots in use. The count is a fixed 64-bit field rather than a
// platform-sized integer because the structure crosses the boot-to-kernel
// boundary as raw bytes and its layout must not vary across build targets.
//
// The boot stage populates the map with AddRegion in whatever order the firmware
// reports regions, calls Sort once, then hands the map to the kernel by value.
// The kernel may reclassify entries in place through Regions but must not grow
// the map further.
type Map struct {
	entries        [EntryCount]Region
	nextEntryIndex uint64
}

// NewMap returns an empty Map with every slot set to the empty sentinel.
func NewMap() Map {
	var m Map
	for i := range m.entries {
		m.entries[i] = EmptyRegion()
	}

	return m
}

// AddRegion writes region into the next free slot. Exceeding the fixed capacity
// is a programming error, not a recoverable condition: a silently dropped region
// could hide memory the kernel must treat as off-limits, so this panics rather
// than truncate or overwrite.
func (m *Map) AddRegion(region Region) {
	if m.nextEntryIndex >= EntryCount {
		panic(fmt.Sprintf("memory map is full: cannot add region %s to %d existing entries", region, EntryCount))
	}

	m.entries[m.nextEntryIndex] = region
	m.nextEntryIndex++
}

// Sort reorders the entire backing array so that every empty slot sorts after
// every real region and real regions are in ascending start order, then
// recomputes the logical entry count as the index of the first empty slot. The
// sort is unstable: relative order among regions with equal start addresses, and
// among distinct empty slots, is unspecified.
//
// Sorting is idempotent. Adding regions after a sort is legal while capacity
// remains, but reintroduces unsorted data: sort again before relying on
// ascending order.
func (m *Map) Sort() {
	slices.SortFunc(m.entries[:], func(r1, r2 Region) bool {
		if r1.Len == 0 {
			return false
		} else if r2.Len == 0 {
			return true
		}

		return r1.Start < r2.Start
	})

	m.nextEntryIndex = EntryCount
	for i, region := range m.entries {
		if region.Len == 0 {
			m.nextEntryIndex = uint64(i)
			break
		}
	}
}

// Regions returns the logical content of the map: the prefix of slots holding
// real entries. The slice aliases the map's backing array, so callers may
// reclassify entries in place (for example, marking a freed bootstrap region
// usable again), but insertion and removal are only possible through AddRegion
// and Sort.
func (m *Map) Regions() []Region {
	return m.entries[:m.nextEntryIndex]
}

// Validate performs internal consistency checks on the map. When the map has
// only been manipulated through its methods it should not be possible for this
// to return an error, but it may assist in diagnosing corruption after the map
// has crossed the boot-to-kernel boundary.
func (m *Map) Validate() error {
	if m.nextEntryIndex > EntryCount {
		return cerrors.Newf("next entry index %d is out of bounds for %d slots", m.nextEntryIndex, EntryCount)
	}

	for i, region := range m.Regions() {
		if region.Len > uint64(physical.MaxAddr)-uint64(region.Start) {
			return cerrors.Newf("region %d (%s) extends past the addressable range", i, region)
		}
	}

	return nil
}
