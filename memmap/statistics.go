package memmap

import (
	"math"

	"github.com/dolthub/swiss"
)

// Statistics is a basic accounting of a memory map's content.
type Statistics struct {
	RegionCount int
	TotalBytes  int
	UsableBytes int
}

func (s *Statistics) Clear() {
	s.RegionCount = 0
	s.TotalBytes = 0
	s.UsableBytes = 0
}

func (s *Statistics) AddRegion(region Region) {
	s.RegionCount++
	s.TotalBytes += int(region.Len)

	if region.Type == RegionTypeUsable {
		s.UsableBytes += int(region.Len)
	}
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.RegionCount += other.RegionCount
	s.TotalBytes += other.TotalBytes
	s.UsableBytes += other.UsableBytes
}

// DetailedStatistics extends Statistics with region size extremes and a byte
// total per classification. Call Clear before accumulating into it.
type DetailedStatistics struct {
	Statistics
	RegionSizeMin int
	RegionSizeMax int

	typeBytes *swiss.Map[RegionType, int]
}

func (s *DetailedStatistics) Clear() {
	s.Statistics.Clear()
	s.RegionSizeMin = math.MaxInt
	s.RegionSizeMax = 0
	s.typeBytes = swiss.NewMap[RegionType, int](uint32(len(regionTypeMapping)))
}

func (s *DetailedStatistics) AddRegion(region Region) {
	s.Statistics.AddRegion(region)

	size := int(region.Len)
	if size < s.RegionSizeMin {
		s.RegionSizeMin = size
	}
	if size > s.RegionSizeMax {
		s.RegionSizeMax = size
	}

	if s.typeBytes == nil {
		s.typeBytes = swiss.NewMap[RegionType, int](uint32(len(regionTypeMapping)))
	}
	bytes, _ := s.typeBytes.Get(region.Type)
	s.typeBytes.Put(region.Type, bytes+size)
}

// BytesForType returns the byte total accumulated for one classification.
func (s *DetailedStatistics) BytesForType(regionType RegionType) int {
	if s.typeBytes == nil {
		return 0
	}

	bytes, _ := s.typeBytes.Get(regionType)
	return bytes
}

// VisitTypeBytes calls the provided callback once for each classification that
// has accumulated a nonzero byte total. Iteration order is unspecified.
func (s *DetailedStatistics) VisitTypeBytes(visit func(regionType RegionType, bytes int)) {
	if s.typeBytes == nil {
		return
	}

	s.typeBytes.Iter(func(regionType RegionType, bytes int) bool {
		visit(regionType, bytes)
		return false
	})
}

// AddStatistics sums this map's regions into the statistics currently present in
// the provided Statistics object.
func (m *Map) AddStatistics(stats *Statistics) {
	for _, region := range m.Regions() {
		stats.AddRegion(region)
	}
}

// AddDetailedStatistics sums this map's regions into the statistics currently
// present in the provided DetailedStatistics object.
func (m *Map) AddDetailedStatistics(stats *DetailedStatistics) {
	for _, region := range m.Regions() {
		stats.AddRegion(region)
	}
}
