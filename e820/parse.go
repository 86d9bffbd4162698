package e820

import (
	"encoding/binary"

	cerrors "github.com/cockroachdb/errors"
)

// RecordSize is the width in bytes of one firmware region record.
const RecordSize = 24

// ReadRegions decodes a firmware-provided buffer of little-endian region
// records. The buffer must divide evenly into RecordSize-byte records.
func ReadRegions(data []byte) ([]Region, error) {
	if len(data)%RecordSize != 0 {
		return nil, cerrors.Wrapf(TruncatedBufferError, "buffer is %d bytes", len(data))
	}

	regions := make([]Region, 0, len(data)/RecordSize)
	for offset := 0; offset < len(data); offset += RecordSize {
		record := data[offset : offset+RecordSize]
		regions = append(regions, Region{
			StartAddr:              binary.LittleEndian.Uint64(record),
			Len:                    binary.LittleEndian.Uint64(record[8:]),
			RegionType:             binary.LittleEndian.Uint32(record[16:]),
			ACPIExtendedAttributes: binary.LittleEndian.Uint32(record[20:]),
		})
	}

	return regions, nil
}
