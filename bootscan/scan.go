// Package bootscan builds the boot memory map: it drives firmware record
// conversion, carves out the spans the boot stage itself occupies, and produces
// the normalized catalog that is handed to the kernel by value.
package bootscan

import (
	"context"

	cerrors "github.com/cockroachdb/errors"
	"golang.org/x/exp/slog"

	"github.com/osdevkit/bootmap/e820"
	"github.com/osdevkit/bootmap/memmap"
	"github.com/osdevkit/bootmap/physical"
)

// FrameSize is the size in bytes of the page frame that ReserveFrameZero carves
// out at physical address zero.
const FrameSize = 4096

// AddrRange is one contiguous span of physical memory described by its start
// address and byte length.
type AddrRange struct {
	Start physical.Addr
	Len   uint64
}

// Layout names the spans the boot stage occupies at the time the memory map is
// built. Spans with a zero length are skipped.
type Layout struct {
	Kernel     AddrRange
	PageTables AddrRange
	Bootloader AddrRange
}

// BuildMemoryMap converts a firmware record buffer into a normalized memory map.
// Records are converted and appended in firmware order, the map is sorted, the
// first page frame is reserved, and the layout's spans are carved out of usable
// RAM under their respective classifications. The finished map is returned by
// value; the caller owns the only copy.
func BuildMemoryMap(logger *slog.Logger, firmwareData []byte, layout Layout) (memmap.Map, error) {
	records, err := e820.ReadRegions(firmwareData)
	if err != nil {
		return memmap.Map{}, err
	}

	m := memmap.NewMap()
	for _, record := range records {
		m.AddRegion(record.MemoryRegion())
	}
	m.Sort()

	if err := m.Validate(); err != nil {
		return memmap.Map{}, err
	}

	if err := ReserveFrameZero(&m); err != nil {
		return memmap.Map{}, err
	}

	carves := []struct {
		rng        AddrRange
		regionType memmap.RegionType
	}{
		{layout.Kernel, memmap.RegionTypeKernel},
		{layout.PageTables, memmap.RegionTypePageTable},
		{layout.Bootloader, memmap.RegionTypeBootloader},
	}
	for _, carve := range carves {
		if carve.rng.Len == 0 {
			continue
		}

		if err := CarveRegion(&m, carve.rng, carve.regionType); err != nil {
			return memmap.Map{}, err
		}
	}

	memmap.DebugValidate(&m)

	for _, region := range m.Regions() {
		logger.LogAttrs(context.Background(), slog.LevelDebug, "memory region",
			slog.String("start", region.Start.String()),
			slog.Uint64("len", region.Len),
			slog.String("type", region.Type.String()),
		)
	}
	logger.LogAttrs(context.Background(), slog.LevelInfo, "built boot memory map",
		slog.Int("entries", len(m.Regions())),
	)

	return m, nil
}

// CarveRegion reclassifies the span rng as regionType. The span must lie
// entirely inside a single usable region; that region is split into up to three
// pieces with the carved span in the middle, and the map is re-sorted. It
// returns an error wrapping NoUsableRegionError if no usable region contains
// the span.
func CarveRegion(m *memmap.Map, rng AddrRange, regionType memmap.RegionType) error {
	if rng.Len == 0 {
		return cerrors.New("cannot carve an empty range")
	}
	if rng.Len > uint64(physical.MaxAddr)-uint64(rng.Start) {
		return cerrors.Newf("range %s+%d bytes extends past the addressable range", rng.Start, rng.Len)
	}

	rangeEnd := rng.Start.Add(rng.Len)

	regions := m.Regions()
	for i := range regions {
		region := &regions[i]
		if region.Type != memmap.RegionTypeUsable {
			continue
		}
		if rng.Start < region.Start || rangeEnd > region.EndAddr() {
			continue
		}

		prefix := memmap.Region{
			Start: region.Start,
			Len:   uint64(rng.Start - region.Start),
			Type:  memmap.RegionTypeUsable,
		}
		suffix := memmap.Region{
			Start: rangeEnd,
			Len:   uint64(region.EndAddr() - rangeEnd),
			Type:  memmap.RegionTypeUsable,
		}

		*region = memmap.Region{Start: rng.Start, Len: rng.Len, Type: regionType}
		if prefix.Len != 0 {
			m.AddRegion(prefix)
		}
		if suffix.Len != 0 {
			m.AddRegion(suffix)
		}
		m.Sort()

		return nil
	}

	return cerrors.Wrapf(NoUsableRegionError, "range %s+%d bytes (%s)", rng.Start, rng.Len, regionType)
}

// ReserveFrameZero carves the page frame at physical address zero out of usable
// RAM so that no allocator ever hands out address zero. If no usable region
// contains the whole frame there is nothing to reserve and the call is a no-op.
func ReserveFrameZero(m *memmap.Map) error {
	err := CarveRegion(m, AddrRange{Start: physical.NewAddr(0), Len: FrameSize}, memmap.RegionTypeFrameZero)
	if cerrors.Is(err, NoUsableRegionError) {
		return nil
	}

	return err
}
