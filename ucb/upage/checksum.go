package upage

import (
	"github.com/samber/lo"
)

// Checksum returns the two's complement of the 8-bit sum of bytes 0x00-0x1D.
func Checksum(page Page) byte {
	sum := lo.Reduce(
		page[:ChecksumCoverage],
		func(result byte, b byte, _ int) byte {
			return result + b
		},
		byte(0),
	)
	return -sum
}

func Valid(page Page) bool {
	return page[ChecksumOffset] == Checksum(page)
}

func ReadState(page Page, offset int) State {
	computed := Checksum(page)
	return State{
		Offset:           offset,
		StoredChecksum:   page[ChecksumOffset],
		ComputedChecksum: computed,
		Valid:            page[ChecksumOffset] == computed,
	}
}
