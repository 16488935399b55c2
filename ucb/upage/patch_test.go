package upage

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ucb-locker/ds"
)

var testPassword = [PasswordLength]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE}

func TestAt(t *testing.T) {
	image := make([]byte, 0x100)
	page := At(image, Page3Offset)
	require.Len(t, page, Size)
	assert.Equal(t, Size, cap(page))

	page[0] = 0x42
	assert.Equal(t, byte(0x42), image[Page3Offset])

	assert.Panics(t, func() { At(image, 0x10) })
	assert.Panics(t, func() { At(image, 0x100) })
}

func TestPatchLockPage(t *testing.T) {
	page := make(Page, Size)
	page[OCDSLockOffset] = 0xF0
	page[PasswordOffset] = 0x11

	change := PatchLockPage(page, testPassword)

	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE}, []byte(page[0x10:0x15]))
	assert.Equal(t, byte(0xF1), page[OCDSLockOffset])
	assert.Equal(t, byte(0x01), page[FProtEn0Offset])
	assert.Equal(t, byte(0x01), page[FProtEn1Offset])
	assert.Equal(t, Checksum(page), page[ChecksumOffset])

	assert.Equal(t, Page0Offset, change.Offset)
	assert.Equal(t, KindLock, change.Kind)
	require.NotNil(t, change.Password)
	assert.Equal(t, []byte{0x11, 0, 0, 0, 0}, change.Password.Before)
	assert.Equal(t, testPassword[:], change.Password.After)
	assert.Equal(
		t,
		[]BitChange{
			{Name: BitOCDSLock, Before: 0, After: 1},
			{Name: BitFProtEn0, Before: 0, After: 1},
			{Name: BitFProtEn1, Before: 0, After: 1},
		},
		change.Bits,
	)
	assert.Equal(t, byte(0x00), change.Checksum.Before)
	assert.Equal(t, page[ChecksumOffset], change.Checksum.After)
}

func TestPatchLockPage_KeepsSetBits(t *testing.T) {
	page := Page(bytes.Repeat([]byte{0xFF}, Size))

	first := PatchLockPage(page, testPassword)
	snapshot := ds.ShallowCopy(page)
	second := PatchLockPage(page, testPassword)

	assert.Equal(t, snapshot, []byte(page))
	assert.Equal(t, byte(0xFF), page[OCDSLockOffset])
	assert.Equal(t, byte(0xFF), page[FProtEn0Offset])
	assert.Equal(t, byte(0xFF), page[FProtEn1Offset])
	for _, bit := range first.Bits {
		assert.Equal(t, byte(1), bit.Before, bit.Name)
		assert.Equal(t, byte(1), bit.After, bit.Name)
	}
	assert.Equal(t, first.Checksum.After, second.Checksum.Before)
	assert.Equal(t, second.Checksum.Before, second.Checksum.After)
}

func TestPatchLockPage_OverwritesPassword(t *testing.T) {
	page := make(Page, Size)
	PatchLockPage(page, testPassword)
	change := PatchLockPage(page, [PasswordLength]byte{0x01, 0x23, 0x45, 0x67, 0x89})

	assert.Equal(t, testPassword[:], change.Password.Before)
	assert.Equal(t, []byte{0x01, 0x23, 0x45, 0x67, 0x89}, []byte(page[0x10:0x15]))
	assert.True(t, Valid(page))
}

func TestPatchBlockPage(t *testing.T) {
	tests := map[string]struct {
		flag     byte
		block    bool
		expected byte
	}{
		"block clears bit 0":       {flag: 0xFF, block: true, expected: 0xFE},
		"block on clear flag":      {flag: 0xA6, block: true, expected: 0xA6},
		"no block keeps set flag":  {flag: 0x01, block: false, expected: 0x01},
		"no block keeps high bits": {flag: 0x81, block: false, expected: 0x81},
	}
	for name, test := range tests {
		page := make(Page, Size)
		page[EraseWriteOffset] = test.flag
		page[ChecksumOffset] = 0x55

		change := PatchBlockPage(page, test.block, 0xA0)

		assert.Equal(t, test.expected, page[EraseWriteOffset], name)
		assert.True(t, Valid(page), name)
		assert.Equal(t, 0xA0, change.Offset, name)
		assert.Equal(t, KindBlock, change.Kind, name)
		assert.Nil(t, change.Password, name)
		require.Len(t, change.Bits, 1, name)
		assert.Equal(t, test.flag&1, change.Bits[0].Before, name)
		assert.Equal(t, test.expected&1, change.Bits[0].After, name)
		assert.Equal(t, byte(0x55), change.Checksum.Before, name)
		assert.Equal(t, Checksum(page), change.Checksum.After, name)
	}
}
