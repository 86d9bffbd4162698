package bootscan

import "github.com/pkg/errors"

// NoUsableRegionError is the error returned from CarveRegion if the requested range does not lie
// entirely inside a single usable region
var NoUsableRegionError error = errors.New("range is not inside a single usable region")
