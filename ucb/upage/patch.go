package upage

var lockBits = []struct {
	name   string
	offset int
}{
	{BitOCDSLock, OCDSLockOffset},
	{BitFProtEn0, FProtEn0Offset},
	{BitFProtEn1, FProtEn1Offset},
}

// PatchLockPage writes password into page 0, sets OCDSLCK, FPROTEN0 and
// FPROTEN1, and refreshes the checksum. Lock bits are only ever set.
func PatchLockPage(page Page, password [PasswordLength]byte) Change {
	change := Change{
		Offset: Page0Offset,
		Kind:   KindLock,
		Password: &BytesChange{
			Before: page.Password(),
		},
		Bits: make([]BitChange, 0, len(lockBits)),
		Checksum: ByteChange{
			Before: page[ChecksumOffset],
		},
	}
	before := make([]byte, 0, len(lockBits))
	for _, bit := range lockBits {
		before = append(before, page.Bit(bit.offset))
	}

	copy(page[PasswordOffset:PasswordOffset+PasswordLength], password[:])
	for _, bit := range lockBits {
		page[bit.offset] |= 0x01
	}
	page[ChecksumOffset] = Checksum(page)

	change.Password.After = page.Password()
	for i, bit := range lockBits {
		change.Bits = append(change.Bits, BitChange{
			Name:   bit.name,
			Before: before[i],
			After:  page.Bit(bit.offset),
		})
	}
	change.Checksum.After = page[ChecksumOffset]
	return change
}

// PatchBlockPage clears the BSL erase/write flag when block is set. The
// checksum is recomputed either way. offset is only copied into the record.
func PatchBlockPage(page Page, block bool, offset int) Change {
	flagBefore := page.Bit(EraseWriteOffset)
	checksumBefore := page[ChecksumOffset]

	if block {
		page[EraseWriteOffset] &= 0xFE
	}
	page[ChecksumOffset] = Checksum(page)

	return Change{
		Offset: offset,
		Kind:   KindBlock,
		Bits: []BitChange{
			{
				Name:   BitEraseWrite,
				Before: flagBefore,
				After:  page.Bit(EraseWriteOffset),
			},
		},
		Checksum: ByteChange{
			Before: checksumBefore,
			After:  page[ChecksumOffset],
		},
	}
}
