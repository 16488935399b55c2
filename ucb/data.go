// Package ucb locks TC179x User Configuration Block images: it sets the OCDS
// password and protection bits on page 0, optionally blocks BSL erase/write on
// page 3 and its mirrors, and keeps every touched page's checksum consistent.
package ucb

import (
	"fmt"

	"ucb-locker/ds"
	"ucb-locker/ucb/upage"
)

type (
	ErrInvalidImageSize struct {
		Size int
	}
	ErrImageTooShort struct {
		Size     int
		Required int
	}

	FlagState struct {
		Offset int  `json:"offset"`
		Flag   byte `json:"flag"`
	}
	// LockState is what the protection-related fields of an image currently hold.
	LockState struct {
		Password   []byte      `json:"password"`
		OCDSLock   byte        `json:"ocds_lock"`
		FProtEn0   byte        `json:"fprot_en0"`
		FProtEn1   byte        `json:"fprot_en1"`
		EraseWrite []FlagState `json:"erase_write"`
	}
)

func (r ErrInvalidImageSize) Error() string {
	return fmt.Sprintf(
		"file size 0x%X is not a multiple of 0x%X bytes (nearest valid size 0x%X)",
		r.Size, upage.Size, ds.NearestDivisibleByM(r.Size, upage.Size),
	)
}

func (r ErrImageTooShort) Error() string {
	return fmt.Sprintf("file size 0x%X is too short: at least 0x%X bytes needed", r.Size, r.Required)
}

// RequiredSize is the smallest image holding every page a run touches.
func RequiredSize(mirrors bool) int {
	offsets := BlockPageOffsets(mirrors)
	return offsets[len(offsets)-1] + upage.Size
}

// BlockPageOffsets lists page 3 followed, when mirrors is set, by its mirrors.
func BlockPageOffsets(mirrors bool) []int {
	offsets := []int{upage.Page3Offset}
	if mirrors {
		offsets = append(offsets, upage.MirrorOffsets...)
	}
	return offsets
}
