package e820

import "github.com/pkg/errors"

// TruncatedBufferError is the error returned from ReadRegions if the firmware buffer does not divide
// evenly into fixed-width records
var TruncatedBufferError error = errors.New("firmware buffer must be a whole number of 24-byte records")
