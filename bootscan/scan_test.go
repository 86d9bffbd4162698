package bootscan_test

import (
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"github.com/osdevkit/bootmap/bootscan"
	"github.com/osdevkit/bootmap/e820"
	"github.com/osdevkit/bootmap/memmap"
	"github.com/osdevkit/bootmap/physical"
)

func encodeRecords(records []e820.Region) []byte {
	data := make([]byte, 0, len(records)*e820.RecordSize)
	for _, record := range records {
		data = binary.LittleEndian.AppendUint64(data, record.StartAddr)
		data = binary.LittleEndian.AppendUint64(data, record.Len)
		data = binary.LittleEndian.AppendUint32(data, record.RegionType)
		data = binary.LittleEndian.AppendUint32(data, record.ACPIExtendedAttributes)
	}

	return data
}

func region(start uint64, length uint64, regionType memmap.RegionType) memmap.Region {
	return memmap.Region{
		Start: physical.NewAddr(start),
		Len:   length,
		Type:  regionType,
	}
}

func addrRange(start uint64, length uint64) bootscan.AddrRange {
	return bootscan.AddrRange{
		Start: physical.NewAddr(start),
		Len:   length,
	}
}

func TestBuildMemoryMap(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// A classic PC memory map, reported out of order.
	firmwareData := encodeRecords([]e820.Region{
		{StartAddr: 0x100000, Len: 0x7ee0000, RegionType: e820.RegionTypeUsable},
		{StartAddr: 0, Len: 0x9fc00, RegionType: e820.RegionTypeUsable},
		{StartAddr: 0x9fc00, Len: 0x400, RegionType: e820.RegionTypeReserved},
	})

	m, err := bootscan.BuildMemoryMap(logger, firmwareData, bootscan.Layout{
		Kernel:     addrRange(0x100000, 0x400000),
		PageTables: addrRange(0x500000, 0x100000),
		Bootloader: addrRange(0x9000, 0x1000),
	})
	require.NoError(t, err)

	require.Equal(t, []memmap.Region{
		region(0, 0x1000, memmap.RegionTypeFrameZero),
		region(0x1000, 0x8000, memmap.RegionTypeUsable),
		region(0x9000, 0x1000, memmap.RegionTypeBootloader),
		region(0xa000, 0x95c00, memmap.RegionTypeUsable),
		region(0x9fc00, 0x400, memmap.RegionTypeReserved),
		region(0x100000, 0x400000, memmap.RegionTypeKernel),
		region(0x500000, 0x100000, memmap.RegionTypePageTable),
		region(0x600000, 0x79e0000, memmap.RegionTypeUsable),
	}, m.Regions())

	require.NoError(t, m.Validate())
}

func TestBuildMemoryMapBadFirmwareBuffer(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := bootscan.BuildMemoryMap(logger, make([]byte, e820.RecordSize+1), bootscan.Layout{})
	require.ErrorIs(t, err, e820.TruncatedBufferError)
}

func TestBuildMemoryMapLayoutOutsideUsableMemory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	firmwareData := encodeRecords([]e820.Region{
		{StartAddr: 0x100000, Len: 0x100000, RegionType: e820.RegionTypeUsable},
	})

	_, err := bootscan.BuildMemoryMap(logger, firmwareData, bootscan.Layout{
		Kernel: addrRange(0x300000, 0x100000),
	})
	require.ErrorIs(t, err, bootscan.NoUsableRegionError)
}

func TestCarveRegionSplitsContainingRegion(t *testing.T) {
	m := memmap.NewMap()
	m.AddRegion(region(0x100000, 0x300000, memmap.RegionTypeUsable))
	m.Sort()

	err := bootscan.CarveRegion(&m, addrRange(0x200000, 0x100000), memmap.RegionTypeKernel)
	require.NoError(t, err)

	require.Equal(t, []memmap.Region{
		region(0x100000, 0x100000, memmap.RegionTypeUsable),
		region(0x200000, 0x100000, memmap.RegionTypeKernel),
		region(0x300000, 0x100000, memmap.RegionTypeUsable),
	}, m.Regions())
}

func TestCarveRegionExactFit(t *testing.T) {
	m := memmap.NewMap()
	m.AddRegion(region(0x100000, 0x100000, memmap.RegionTypeUsable))
	m.Sort()

	err := bootscan.CarveRegion(&m, addrRange(0x100000, 0x100000), memmap.RegionTypePageTable)
	require.NoError(t, err)

	require.Equal(t, []memmap.Region{
		region(0x100000, 0x100000, memmap.RegionTypePageTable),
	}, m.Regions())
}

func TestCarveRegionRequiresSingleUsableRegion(t *testing.T) {
	m := memmap.NewMap()
	m.AddRegion(region(0x100000, 0x100000, memmap.RegionTypeUsable))
	m.AddRegion(region(0x200000, 0x100000, memmap.RegionTypeUsable))
	m.AddRegion(region(0x400000, 0x100000, memmap.RegionTypeReserved))
	m.Sort()

	// Straddles two usable regions.
	err := bootscan.CarveRegion(&m, addrRange(0x180000, 0x100000), memmap.RegionTypeKernel)
	require.ErrorIs(t, err, bootscan.NoUsableRegionError)

	// Inside a region that is not usable.
	err = bootscan.CarveRegion(&m, addrRange(0x400000, 0x1000), memmap.RegionTypeKernel)
	require.ErrorIs(t, err, bootscan.NoUsableRegionError)

	// Entirely outside the map.
	err = bootscan.CarveRegion(&m, addrRange(0x800000, 0x1000), memmap.RegionTypeKernel)
	require.ErrorIs(t, err, bootscan.NoUsableRegionError)

	err = bootscan.CarveRegion(&m, addrRange(0x100000, 0), memmap.RegionTypeKernel)
	require.Error(t, err)
}

func TestReserveFrameZero(t *testing.T) {
	m := memmap.NewMap()
	m.AddRegion(region(0, 0x9fc00, memmap.RegionTypeUsable))
	m.Sort()

	require.NoError(t, bootscan.ReserveFrameZero(&m))
	require.Equal(t, []memmap.Region{
		region(0, bootscan.FrameSize, memmap.RegionTypeFrameZero),
		region(bootscan.FrameSize, 0x9fc00-bootscan.FrameSize, memmap.RegionTypeUsable),
	}, m.Regions())
}

func TestReserveFrameZeroWithoutUsableFrame(t *testing.T) {
	m := memmap.NewMap()
	m.AddRegion(region(0x100000, 0x100000, memmap.RegionTypeUsable))
	m.Sort()

	require.NoError(t, bootscan.ReserveFrameZero(&m))
	require.Equal(t, []memmap.Region{
		region(0x100000, 0x100000, memmap.RegionTypeUsable),
	}, m.Regions())
}
