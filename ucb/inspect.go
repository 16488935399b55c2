package ucb

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"ucb-locker/ds"
	"ucb-locker/ucb/upage"
)

// Inspect reports the checksum state of every page in image.
func Inspect(image []byte) ([]upage.State, error) {
	if len(image)%upage.Size != 0 {
		return nil, errors.Wrap(ErrInvalidImageSize{Size: len(image)}, "Inspect error validating image")
	}
	states := lo.Map(
		ds.MakeChunks(image, upage.Size),
		func(chunk []byte, i int) upage.State {
			return upage.ReadState(chunk, i*upage.Size)
		},
	)
	return states, nil
}

// ReadLockState decodes the password, the page 0 lock bits and the
// erase/write flag of page 3 and of whichever mirrors the image is long enough
// to hold.
func ReadLockState(image []byte) (*LockState, error) {
	if err := ValidateImage(image, false); err != nil {
		return nil, errors.Wrap(err, "ReadLockState error validating image")
	}

	page0 := upage.At(image, upage.Page0Offset)
	offsets := lo.Filter(
		BlockPageOffsets(true),
		func(offset int, _ int) bool {
			return offset+upage.Size <= len(image)
		},
	)
	return &LockState{
		Password: page0.Password(),
		OCDSLock: page0.Bit(upage.OCDSLockOffset),
		FProtEn0: page0.Bit(upage.FProtEn0Offset),
		FProtEn1: page0.Bit(upage.FProtEn1Offset),
		EraseWrite: lo.Map(
			offsets,
			func(offset int, _ int) FlagState {
				return FlagState{
					Offset: offset,
					Flag:   upage.At(image, offset).Bit(upage.EraseWriteOffset),
				}
			},
		),
	}, nil
}

// Locked reports whether every protection bit is set and BSL erase/write is
// blocked on every page that carries the flag.
func (r LockState) Locked() bool {
	return r.OCDSLock == 1 && r.FProtEn0 == 1 && r.FProtEn1 == 1 &&
		lo.EveryBy(
			r.EraseWrite,
			func(state FlagState) bool {
				return state.Flag == 0
			},
		)
}
