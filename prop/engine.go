package prop

import "github.com/icarus-tools/mountsave/endian"

// littleEndian returns the byte order the property stream format always
// uses on disk.
func littleEndian() endian.EndianEngine {
	return endian.GetLittleEndianEngine()
}
