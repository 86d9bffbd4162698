package memmap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osdevkit/bootmap/memmap"
	"github.com/osdevkit/bootmap/physical"
)

func TestEmptyRegion(t *testing.T) {
	empty := memmap.EmptyRegion()
	require.Equal(t, physical.Addr(0), empty.Start)
	require.Equal(t, uint64(0), empty.Len)
	require.Equal(t, memmap.RegionTypeReserved, empty.Type)
}

func TestEndAddr(t *testing.T) {
	r := region(0x100000, 0x200000, memmap.RegionTypeUsable)
	require.Equal(t, physical.Addr(0x300000), r.EndAddr())

	require.Equal(t, physical.Addr(0), memmap.EmptyRegion().EndAddr())
}

func TestRegionEquality(t *testing.T) {
	require.Equal(t, region(0x1000, 0x1000, memmap.RegionTypeUsable), region(0x1000, 0x1000, memmap.RegionTypeUsable))
	require.NotEqual(t, region(0x1000, 0x1000, memmap.RegionTypeUsable), region(0x1000, 0x1000, memmap.RegionTypeInUse))
	require.NotEqual(t, region(0x1000, 0x1000, memmap.RegionTypeUsable), region(0x1000, 0x2000, memmap.RegionTypeUsable))
}

func TestRegionTypeString(t *testing.T) {
	require.Equal(t, "RegionTypeUsable", memmap.RegionTypeUsable.String())
	require.Equal(t, "RegionTypeFrameZero", memmap.RegionTypeFrameZero.String())
}
