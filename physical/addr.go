// Package physical provides the validated physical address type used throughout
// the boot memory catalog.
package physical

import (
	"fmt"

	cerrors "github.com/cockroachdb/errors"
)

// AddrWidth is the number of meaningful bits in a physical address on the
// architectures this module targets. Bits at and above this width must be zero.
const AddrWidth = 52

// MaxAddr is the highest valid physical address.
const MaxAddr Addr = 1<<AddrWidth - 1

// Addr is a 64-bit physical memory address, validated to lie within the
// architecture's physical address width.
type Addr uint64

// TryAddr builds an Addr from a raw 64-bit value. It returns an error if any bit
// at or above AddrWidth is set.
func TryAddr(raw uint64) (Addr, error) {
	if raw > uint64(MaxAddr) {
		return 0, cerrors.Wrapf(NonCanonicalError, "raw value is %#x", raw)
	}

	return Addr(raw), nil
}

// NewAddr builds an Addr from a raw 64-bit value and panics if any bit at or
// above AddrWidth is set. Boot code runs before any recovery path exists, so an
// out-of-range address can only mean "stop".
func NewAddr(raw uint64) Addr {
	addr, err := TryAddr(raw)
	if err != nil {
		panic(err)
	}

	return addr
}

// Add offsets the address by a byte count. It panics if the result would leave
// the addressable range.
func (a Addr) Add(count uint64) Addr {
	if count > uint64(MaxAddr)-uint64(a) {
		panic(fmt.Sprintf("offsetting address %s by %d bytes leaves the addressable range", a, count))
	}

	return a + Addr(count)
}

func (a Addr) String() string {
	return fmt.Sprintf("%#x", uint64(a))
}

// CheckPow2 returns an error if the number being tested is not a power of two. The
// name parameter is included in the error to identify the offending value.
func CheckPow2(number uint64, name string) error {
	if number == 0 || number&(number-1) != 0 {
		return cerrors.Wrapf(PowerOfTwoError, "%s is %d", name, number)
	}

	return nil
}

// AlignUp rounds the address up to the nearest multiple of alignment, which must
// be a power of two.
func AlignUp(addr Addr, alignment uint64) Addr {
	return Addr((uint64(addr) + alignment - 1) &^ (alignment - 1))
}

// AlignDown rounds the address down to the nearest multiple of alignment, which
// must be a power of two.
func AlignDown(addr Addr, alignment uint64) Addr {
	return Addr(uint64(addr) &^ (alignment - 1))
}
