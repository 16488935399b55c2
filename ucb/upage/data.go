// Package upage reads and patches the fixed-layout 32-byte pages of a UCB image.
package upage

import (
	"ucb-locker/ds"
)

type (
	// Page is a bounded view into an image covering exactly Size bytes.
	Page []byte
	Kind string

	ByteChange struct {
		Before byte `json:"before"`
		After  byte `json:"after"`
	}
	BytesChange struct {
		Before []byte `json:"before"`
		After  []byte `json:"after"`
	}
	BitChange struct {
		Name   string `json:"name"`
		Before byte   `json:"before"`
		After  byte   `json:"after"`
	}
	// Change records what a patcher did to one page.
	Change struct {
		Offset   int          `json:"offset"`
		Kind     Kind         `json:"kind"`
		Password *BytesChange `json:"password,omitempty"`
		Bits     []BitChange  `json:"bits"`
		Checksum ByteChange   `json:"checksum"`
	}
	// State is the decoded checksum status of one page.
	State struct {
		Offset           int  `json:"offset"`
		StoredChecksum   byte `json:"stored_checksum"`
		ComputedChecksum byte `json:"computed_checksum"`
		Valid            bool `json:"valid"`
	}
)

const (
	Size = 0x20

	PasswordOffset = 0x10
	PasswordLength = 5
	OCDSLockOffset = 0x1A
	FProtEn0Offset = 0x1C
	FProtEn1Offset = 0x1D
	// EraseWriteOffset holds the BSL erase/write flag on page 3 and its mirrors.
	EraseWriteOffset = 0x08
	ChecksumOffset   = 0x1E
	// ChecksumCoverage is the number of leading bytes summed into the checksum.
	ChecksumCoverage = 0x1E

	Page0Offset = 0x00
	Page3Offset = 0x60
)

const (
	KindLock  = Kind("page0")
	KindBlock = Kind("block")
)

const (
	BitOCDSLock   = "OCDSLCK"
	BitFProtEn0   = "FPROTEN0"
	BitFProtEn1   = "FPROTEN1"
	BitEraseWrite = "BSLWRITE"
)

// MirrorOffsets lists the copies of page 3 in the order they are patched.
var MirrorOffsets = ds.MakeRange(0x80, 0x100, Size)
