package physical

import "github.com/pkg/errors"

// NonCanonicalError is the error returned from TryAddr or other methods if a raw value has bits
// set above the supported physical address width
var NonCanonicalError error = errors.New("physical address must fit in 52 bits")

// PowerOfTwoError is the error returned from CheckPow2 or other methods if the number being tested is not a power of two
var PowerOfTwoError error = errors.New("number must be a power of two")
